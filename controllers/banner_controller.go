package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// ListBanners returns active banners whose window covers now, ordered
// by position
func ListBanners(c *gin.Context) {
	now := time.Now()
	var banners []models.Banner
	err := config.DB.Where("active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		Order("position, id").
		Find(&banners).Error
	if err != nil {
		utils.LogError("Failed to fetch banners: %v", err)
		utils.Success(c, "Banners retrieved successfully", gin.H{"banners": []models.Banner{}})
		return
	}

	utils.Success(c, "Banners retrieved successfully", gin.H{"banners": banners})
}
