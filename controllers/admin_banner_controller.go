package controllers

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// AdminListBanners returns all banners in display order
func AdminListBanners(c *gin.Context) {
	utils.LogInfo("AdminListBanners called")

	var banners []models.Banner
	if err := config.DB.Order("position ASC, created_at DESC").Find(&banners).Error; err != nil {
		utils.LogError("Failed to fetch banners: %v", err)
		utils.InternalServerError(c, "Failed to fetch banners", err.Error())
		return
	}

	utils.Success(c, "Banners retrieved successfully", gin.H{"banners": banners})
}

func parseBannerWindow(c *gin.Context) (*time.Time, *time.Time, bool) {
	var startAt, endAt *time.Time
	if s := c.PostForm("start_at"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			utils.BadRequest(c, "start_at must be RFC3339", nil)
			return nil, nil, false
		}
		startAt = &t
	}
	if s := c.PostForm("end_at"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			utils.BadRequest(c, "end_at must be RFC3339", nil)
			return nil, nil, false
		}
		endAt = &t
	}
	if startAt != nil && endAt != nil && !endAt.After(*startAt) {
		utils.BadRequest(c, "Banner end time must be after its start time", nil)
		return nil, nil, false
	}
	return startAt, endAt, true
}

// AdminCreateBanner uploads a banner image with its display settings.
// The body is multipart form data because of the image file.
func AdminCreateBanner(c *gin.Context) {
	utils.LogInfo("AdminCreateBanner called")

	title := c.PostForm("title")
	if title == "" {
		utils.BadRequest(c, "Title is required", nil)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "Banner image is required", err.Error())
		return
	}
	if err := utils.ValidateImageFile(file); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	startAt, endAt, ok := parseBannerWindow(c)
	if !ok {
		return
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	path, err := utils.SaveUploadedFile(file, uploadDir)
	if err != nil {
		utils.LogError("Failed to save banner image: %v", err)
		utils.InternalServerError(c, "Failed to save banner image", err.Error())
		return
	}

	position := 0
	if p, err := strconv.Atoi(c.PostForm("position")); err == nil && p >= 0 {
		position = p
	}

	banner := models.Banner{
		Title:    title,
		ImageURL: path,
		LinkURL:  c.PostForm("link_url"),
		Position: position,
		Active:   c.PostForm("active") != "false",
		StartAt:  startAt,
		EndAt:    endAt,
	}
	if err := config.DB.Create(&banner).Error; err != nil {
		utils.LogError("Failed to create banner: %v", err)
		if err := utils.DeleteFile(path); err != nil {
			utils.LogError("Failed to delete orphaned banner file %s: %v", path, err)
		}
		utils.InternalServerError(c, "Failed to create banner", err.Error())
		return
	}

	utils.LogInfo("Banner created: %s (ID: %d)", banner.Title, banner.ID)
	utils.Created(c, "Banner created successfully", banner)
}

// AdminUpdateBanner updates a banner's settings; the image is replaced
// only when a new file is supplied
func AdminUpdateBanner(c *gin.Context) {
	utils.LogInfo("AdminUpdateBanner called")

	var banner models.Banner
	if err := config.DB.First(&banner, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Banner not found")
		return
	}

	startAt, endAt, ok := parseBannerWindow(c)
	if !ok {
		return
	}

	updates := map[string]interface{}{
		"start_at": startAt,
		"end_at":   endAt,
	}
	if title := c.PostForm("title"); title != "" {
		updates["title"] = title
	}
	if link := c.PostForm("link_url"); link != "" {
		updates["link_url"] = link
	}
	if p, err := strconv.Atoi(c.PostForm("position")); err == nil && p >= 0 {
		updates["position"] = p
	}
	if active := c.PostForm("active"); active != "" {
		updates["active"] = active != "false"
	}

	oldPath := ""
	if file, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateImageFile(file); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "uploads"
		}
		path, err := utils.SaveUploadedFile(file, uploadDir)
		if err != nil {
			utils.InternalServerError(c, "Failed to save banner image", err.Error())
			return
		}
		oldPath = banner.ImageURL
		updates["image_url"] = path
	}

	if err := config.DB.Model(&banner).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update banner ID: %d: %v", banner.ID, err)
		utils.InternalServerError(c, "Failed to update banner", err.Error())
		return
	}
	if oldPath != "" {
		if err := utils.DeleteFile(oldPath); err != nil {
			utils.LogError("Failed to delete replaced banner file %s: %v", oldPath, err)
		}
	}

	utils.Success(c, "Banner updated successfully", banner)
}

// AdminDeleteBanner removes a banner and its image file
func AdminDeleteBanner(c *gin.Context) {
	utils.LogInfo("AdminDeleteBanner called")

	var banner models.Banner
	if err := config.DB.First(&banner, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Banner not found")
		return
	}

	if err := config.DB.Delete(&banner).Error; err != nil {
		utils.LogError("Failed to delete banner ID: %d: %v", banner.ID, err)
		utils.InternalServerError(c, "Failed to delete banner", err.Error())
		return
	}
	if err := utils.DeleteFile(banner.ImageURL); err != nil {
		utils.LogError("Failed to delete banner file %s: %v", banner.ImageURL, err)
	}

	utils.Success(c, "Banner deleted successfully", nil)
}
