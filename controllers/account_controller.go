package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/earlybird/models"
	"github.com/cppla/earlybird/utils"
)

// AccountController handles destructive account operations.
type AccountController struct {
	db *gorm.DB
}

// NewAccountController creates an AccountController.
func NewAccountController(db *gorm.DB) *AccountController {
	return &AccountController{db: db}
}

// DeleteData wipes the user's scans, QR code, and settings, then restarts
// tracking from the current moment. The tracking start only moves forward,
// so purged history cannot resurrect an old streak.
func (a *AccountController) DeleteData(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Scan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.QRCode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSetting{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("tracking_start_at", time.Now()).Error
	})
	if err != nil {
		utils.Sugar.Errorw("failed to purge user data", "user_id", userID, "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to delete data")
		return
	}

	utils.InvalidateByPrefix(streakCachePrefix(userID))
	utils.Sugar.Infow("user data purged", "user_id", userID)
	utils.Success(ctx, gin.H{"message": "all data deleted, tracking restarted"})
}

// DeleteAccount removes the user and everything attached to them.
func (a *AccountController) DeleteAccount(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Scan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.QRCode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSetting{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
	if err != nil {
		utils.Sugar.Errorw("failed to delete account", "user_id", userID, "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to delete account")
		return
	}

	utils.InvalidateByPrefix(streakCachePrefix(userID))
	utils.Sugar.Infow("account deleted", "user_id", userID)
	utils.Success(ctx, gin.H{"message": "account deleted"})
}
