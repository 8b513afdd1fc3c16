package controllers

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
)

// AdminUploadProductImage stores an uploaded image file and attaches it
// to the product. The first image of a product becomes primary.
func AdminUploadProductImage(c *gin.Context) {
	utils.LogInfo("AdminUploadProductImage called")

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "Image file is required", err.Error())
		return
	}
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
		utils.LogError("Failed to save uploaded image: %v", err)
		utils.InternalServerError(c, "Failed to save image", err.Error())
		return
	}

	var image models.ProductImage
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).
			Count(&count).Error; err != nil {
			return err
		}

		image = models.ProductImage{
			ProductID: product.ID,
			URL:       path,
			IsPrimary: count == 0,
			SortOrder: int(count),
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}

		if image.IsPrimary {
			return tx.Model(&product).Update("image_url", path).Error
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to attach image to product ID: %d: %v", product.ID, err)
		if err := utils.DeleteFile(path); err != nil {
			utils.LogError("Failed to delete orphaned image file %s: %v", path, err)
		}
		utils.InternalServerError(c, "Failed to save image", err.Error())
		return
	}

	utils.LogInfo("Image uploaded for product ID: %d, path: %s", product.ID, path)
	utils.Created(c, "Image uploaded successfully", image)
}

// AdminSetPrimaryImage marks one image as primary and clears the flag
// on the product's other images in the same transaction
func AdminSetPrimaryImage(c *gin.Context) {
	utils.LogInfo("AdminSetPrimaryImage called")

	var image models.ProductImage
	if err := config.DB.Where("id = ? AND product_id = ?", c.Param("imageId"), c.Param("id")).
		First(&image).Error; err != nil {
		utils.NotFound(c, "Image not found")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ? AND id != ?", image.ProductID, image.ID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&image).Update("is_primary", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", image.ProductID).
			Update("image_url", image.URL).Error
	})
	if err != nil {
		utils.LogError("Failed to set primary image ID: %d: %v", image.ID, err)
		utils.InternalServerError(c, "Failed to set primary image", err.Error())
		return
	}

	utils.Success(c, "Primary image updated successfully", image)
}

// AdminDeleteProductImage removes an image record and its file. The
// primary image cannot be deleted while other images remain.
func AdminDeleteProductImage(c *gin.Context) {
	utils.LogInfo("AdminDeleteProductImage called")

	var image models.ProductImage
	if err := config.DB.Where("id = ? AND product_id = ?", c.Param("imageId"), c.Param("id")).
		First(&image).Error; err != nil {
		utils.NotFound(c, "Image not found")
		return
	}

	if image.IsPrimary {
		var count int64
		if err := config.DB.Model(&models.ProductImage{}).
			Where("product_id = ? AND id != ?", image.ProductID, image.ID).
			Count(&count).Error; err != nil {
			utils.InternalServerError(c, "Failed to check product images", err.Error())
			return
		}
		if count > 0 {
			utils.BadRequest(c, "Set another image as primary before deleting this one", nil)
			return
		}
	}

	if err := config.DB.Delete(&image).Error; err != nil {
		utils.LogError("Failed to delete image ID: %d: %v", image.ID, err)
		utils.InternalServerError(c, "Failed to delete image", err.Error())
		return
	}
	if err := utils.DeleteFile(image.URL); err != nil {
		utils.LogError("Failed to delete image file %s: %v", image.URL, err)
	}

	utils.Success(c, "Image deleted successfully", nil)
}
