package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/earlybird/models"
	"github.com/cppla/earlybird/utils"
	"github.com/cppla/earlybird/wake"
)

// SettingsController handles the target wake time.
type SettingsController struct {
	db *gorm.DB
}

// NewSettingsController creates a SettingsController.
func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{db: db}
}

// GetWakeTime returns the user's target wake time, empty when unset.
func (s *SettingsController) GetWakeTime(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	target := ""
	var setting models.UserSetting
	err := s.db.Where("user_id = ?", userID).First(&setting).Error
	if err == nil {
		target = setting.TargetWakeTime
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load settings")
		return
	}

	utils.Success(ctx, gin.H{"wake_time": target})
}

// SetWakeTime stores a new HH:MM target. Changing the target does not
// rewrite past scans, each kept its scheduled time when it was judged.
func (s *SettingsController) SetWakeTime(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		WakeTime string `json:"wake_time" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	target := strings.TrimSpace(req.WakeTime)
	if _, _, err := wake.ParseWakeTime(target); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, "wake time must be HH:MM in 24-hour form")
		return
	}

	setting := models.UserSetting{UserID: userID, TargetWakeTime: target}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_wake_time"}),
	}).Create(&setting).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to save wake time")
		return
	}

	utils.Success(ctx, gin.H{"wake_time": target})
}
