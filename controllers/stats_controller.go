package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/earlybird/models"
	"github.com/cppla/earlybird/utils"
	"github.com/cppla/earlybird/wake"
)

// StatsController serves public aggregate counters for the landing page.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a StatsController.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

const statsCacheKey = "cache:stats:public"

// Get returns site-wide totals. Cached for five minutes, the numbers are
// decorative and do not need to be fresh.
func (s *StatsController) Get(ctx *gin.Context) {
	if cached, ok := utils.CacheGetBytes(statsCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	var (
		users       int64
		scans       int64
		onTimeScans int64
	)
	if err := s.db.Model(&models.User{}).Count(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load stats")
		return
	}
	if err := s.db.Model(&models.Scan{}).Count(&scans).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load stats")
		return
	}
	if err := s.db.Model(&models.Scan{}).Where("status = ?", wake.StatusSuccess).Count(&onTimeScans).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load stats")
		return
	}

	onTimeRate := 0.0
	if scans > 0 {
		onTimeRate = float64(onTimeScans) / float64(scans)
	}

	payload := gin.H{
		"users":         users,
		"scans":         scans,
		"on_time_scans": onTimeScans,
		"on_time_rate":  onTimeRate,
	}

	utils.CacheSetJSON(statsCacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, 5*time.Minute)
	utils.Success(ctx, payload)
}
