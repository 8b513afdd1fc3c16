package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
)

// AddressRequest represents the address create/update body
type AddressRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Line      string `json:"line" binding:"required"`
	Ward      string `json:"ward"`
	District  string `json:"district" binding:"required"`
	Province  string `json:"province" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// ListAddresses returns the user's addresses, default first
func ListAddresses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("is_default desc, id").Find(&addresses).Error; err != nil {
		utils.LogError("Failed to fetch addresses for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch addresses", err.Error())
		return
	}

	utils.Success(c, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}

// CreateAddress adds a shipping address. Setting it default clears the
// previous default inside the same transaction.
func CreateAddress(c *gin.Context) {
	utils.LogInfo("CreateAddress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !utils.ValidatePhone(req.Phone) {
		utils.BadRequest(c, "Invalid phone number", nil)
		return
	}

	address := models.Address{
		UserID:    user.ID,
		Recipient: req.Recipient,
		Phone:     req.Phone,
		Line:      req.Line,
		Ward:      req.Ward,
		District:  req.District,
		Province:  req.Province,
		IsDefault: req.IsDefault,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		// First address always becomes the default
		if count == 0 {
			address.IsDefault = true
		}
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				UpdateColumn("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		utils.LogError("Failed to create address for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create address", err.Error())
		return
	}

	utils.Created(c, "Address created successfully", gin.H{"address": address})
}

// UpdateAddress edits one of the user's addresses
func UpdateAddress(c *gin.Context) {
	utils.LogInfo("UpdateAddress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				UpdateColumn("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]interface{}{
			"recipient":  req.Recipient,
			"phone":      req.Phone,
			"line":       req.Line,
			"ward":       req.Ward,
			"district":   req.District,
			"province":   req.Province,
			"is_default": req.IsDefault || address.IsDefault,
		}).Error
	})
	if err != nil {
		utils.LogError("Failed to update address ID: %d: %v", addressID, err)
		utils.InternalServerError(c, "Failed to update address", err.Error())
		return
	}

	utils.Success(c, "Address updated successfully", nil)
}

// DeleteAddress removes one of the user's addresses
func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).Delete(&models.Address{})
	if result.Error != nil {
		utils.LogError("Failed to delete address ID: %d: %v", addressID, result.Error)
		utils.InternalServerError(c, "Failed to delete address", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Address not found")
		return
	}

	utils.Success(c, "Address deleted successfully", nil)
}

// SetDefaultAddress marks one address default and clears the rest
func SetDefaultAddress(c *gin.Context) {
	utils.LogInfo("SetDefaultAddress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
			UpdateColumn("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&address).UpdateColumn("is_default", true).Error
	})
	if err != nil {
		utils.LogError("Failed to set default address ID: %d: %v", addressID, err)
		utils.InternalServerError(c, "Failed to set default address", err.Error())
		return
	}

	utils.Success(c, "Default address updated successfully", nil)
}
