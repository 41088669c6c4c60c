package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cppla/earlybird/config"
	"github.com/cppla/earlybird/models"
	"github.com/cppla/earlybird/utils"
)

// QRController manages the user's scan code.
type QRController struct {
	db *gorm.DB
}

// NewQRController creates a QRController.
func NewQRController(db *gorm.DB) *QRController {
	return &QRController{db: db}
}

// Get returns the user's QR code, or a null payload when none exists yet.
func (q *QRController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var code models.QRCode
	err := q.db.Where("user_id = ?", userID).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Success(ctx, gin.H{"qr": nil})
		return
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load qr code")
		return
	}

	utils.Success(ctx, qrResponse(code))
}

// Create issues the user's QR code. Each account has exactly one, so
// repeated calls return the existing code rather than rotating it.
func (q *QRController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var code models.QRCode
	err := q.db.Where("user_id = ?", userID).First(&code).Error
	if err == nil {
		utils.Success(ctx, qrResponse(code))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load qr code")
		return
	}

	code = models.QRCode{UserID: userID, Code: uuid.NewString()}
	if err := q.db.Create(&code).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to create qr code")
		return
	}

	utils.Sugar.Infow("qr code issued", "user_id", userID)
	utils.Success(ctx, qrResponse(code))
}

func qrResponse(code models.QRCode) gin.H {
	return gin.H{
		"qr": gin.H{
			"code":       code.Code,
			"scan_url":   config.Get().BaseURL + "/scan/" + code.Code,
			"created_at": code.CreatedAt,
		},
	}
}
