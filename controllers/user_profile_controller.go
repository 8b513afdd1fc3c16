package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

func currentUser(c *gin.Context) (*models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return nil, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return nil, false
	}
	return &user, true
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addresses []models.Address
	config.DB.Where("user_id = ?", user.ID).Order("is_default desc, id").Find(&addresses)

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"full_name":     user.FullName,
		"phone":         user.Phone,
		"profile_image": user.ProfileImage,
		"addresses":     addresses,
	})
}

// UpdateProfileRequest represents the profile update body
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// UpdateProfile updates name and phone of the authenticated user
func UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Phone != "" {
		if !utils.ValidatePhone(req.Phone) {
			utils.BadRequest(c, "Invalid phone number", nil)
			return
		}
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", nil)
}

// ChangePasswordRequest represents the password change body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword updates the user's password after verifying the
// current one
func ChangePassword(c *gin.Context) {
	utils.LogInfo("ChangePassword called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, user.Password) {
		utils.LogError("Wrong current password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.InternalServerError(c, "Failed to update password", nil)
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("password", hashed).Error; err != nil {
		utils.LogError("Failed to update password for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update password", err.Error())
		return
	}

	utils.Success(c, "Password updated successfully", nil)
}
