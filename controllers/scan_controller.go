package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/earlybird/models"
	"github.com/cppla/earlybird/utils"
	"github.com/cppla/earlybird/wake"
)

// ScanController handles wake-up scan submissions and per-user scan history.
type ScanController struct {
	db *gorm.DB
}

// NewScanController creates a ScanController.
func NewScanController(db *gorm.DB) *ScanController {
	return &ScanController{db: db}
}

type scanRequest struct {
	Code      string `json:"code" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password" binding:"required"`
	LocalTime string `json:"local_time" binding:"required"`
}

// Scan records a wake-up event for the owner of the submitted QR code.
// The endpoint is public: the scanner proves identity with the code plus
// the account password, re-entered on the phone that scanned it. The
// client's wall-clock timestamp is authoritative because lateness is
// judged in the sleeper's local morning, not server time.
func (s *ScanController) Scan(ctx *gin.Context) {
	var req scanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	scannedAt, err := wake.ParseLocalTime(strings.TrimSpace(req.LocalTime))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid local timestamp")
		return
	}

	var (
		result wake.Evaluation
		userID uint
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var qr models.QRCode
		if err := tx.Where("code = ?", strings.TrimSpace(req.Code)).First(&qr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return wake.ErrInvalidToken
			}
			return err
		}

		var user models.User
		if err := tx.First(&user, qr.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return wake.ErrInvalidToken
			}
			return err
		}

		if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != user.Email {
			return wake.ErrInvalidCredential
		}
		if !utils.CheckPassword(user.PasswordHash, req.Password) {
			return wake.ErrInvalidCredential
		}

		target := ""
		var setting models.UserSetting
		if err := tx.Where("user_id = ?", user.ID).First(&setting).Error; err == nil {
			target = setting.TargetWakeTime
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ev, err := wake.Evaluate(wake.Subject{
			TrackingStart:  user.TrackingStartAt,
			TargetWakeTime: target,
		}, scannedAt)
		if err != nil {
			return err
		}

		record := models.Scan{
			UserID:            user.ID,
			QRCodeID:          qr.ID,
			ScannedAt:         ev.ScannedAt,
			ScheduledWakeTime: ev.ScheduledWakeTime,
			Status:            ev.Status,
			MinutesLate:       ev.MinutesLate,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		result = ev
		userID = user.ID
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, wake.ErrInvalidToken):
			utils.Error(ctx, http.StatusBadRequest, 40021, err.Error())
		case errors.Is(err, wake.ErrInvalidCredential):
			utils.Error(ctx, http.StatusBadRequest, 40022, err.Error())
		case errors.Is(err, wake.ErrTooSoon):
			utils.Error(ctx, http.StatusBadRequest, 40023, err.Error())
		case errors.Is(err, wake.ErrNoTargetSet):
			utils.Error(ctx, http.StatusBadRequest, 40024, err.Error())
		default:
			utils.Sugar.Errorw("failed to record scan", "error", err)
			utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to record scan")
		}
		return
	}

	utils.InvalidateByPrefix(streakCachePrefix(userID))
	utils.Sugar.Infow("scan recorded",
		"user_id", userID,
		"status", result.Status,
		"minutes_late", result.MinutesLate,
	)

	utils.Success(ctx, gin.H{
		"status":              result.Status,
		"minutes_late":        result.MinutesLate,
		"scanned_at":          result.ScannedAt.Format(wake.LocalTimeLayout),
		"scheduled_wake_time": result.ScheduledWakeTime,
	})
}

// List returns the authenticated user's full scan history, oldest first.
func (s *ScanController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	var scans []models.Scan
	if err := s.db.Where("user_id = ?", userID).Order("scanned_at asc").Find(&scans).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load scans")
		return
	}

	items := make([]gin.H, 0, len(scans))
	for _, sc := range scans {
		items = append(items, gin.H{
			"id":                  sc.ID,
			"scanned_at":          sc.ScannedAt.Format(wake.LocalTimeLayout),
			"scheduled_wake_time": sc.ScheduledWakeTime,
			"status":              sc.Status,
			"minutes_late":        sc.MinutesLate,
		})
	}

	utils.Success(ctx, gin.H{
		"scans":             items,
		"tracking_start_at": user.TrackingStartAt,
	})
}

// Streak rebuilds the current-year calendar and the consecutive on-time
// streak from stored scans. The cache key carries today's date so an
// entry never survives past midnight, and recording a scan or purging
// data drops every entry under the user's prefix.
func (s *ScanController) Streak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	now := time.Now()
	cacheKey := fmt.Sprintf("%s%s", streakCachePrefix(userID), wake.DateKey(now))
	if cached, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	var scans []models.Scan
	if err := s.db.Where("user_id = ?", userID).Order("scanned_at asc").Find(&scans).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load scans")
		return
	}

	events := make([]wake.Event, 0, len(scans))
	for _, sc := range scans {
		events = append(events, wake.Event{
			ScannedAt: sc.ScannedAt,
			OnTime:    sc.Status == wake.StatusSuccess,
		})
	}

	days, streak := wake.Reconstruct(events, user.TrackingStartAt, now)

	dayItems := make([]gin.H, 0, len(days))
	for _, d := range days {
		dayItems = append(dayItems, gin.H{
			"date":   wake.DateKey(d.Date),
			"status": d.Status,
		})
	}

	payload := gin.H{
		"year":              now.Year(),
		"days":              dayItems,
		"streak":            streak,
		"tracking_start_at": user.TrackingStartAt,
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

func streakCachePrefix(userID uint) string {
	return fmt.Sprintf("cache:streak:%d:", userID)
}
