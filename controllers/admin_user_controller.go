package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// AdminListUsers returns customers with optional search and block filter
func AdminListUsers(c *gin.Context) {
	utils.LogInfo("AdminListUsers called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.User{}).Where("is_admin = ?", false)

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}
	if blocked := c.Query("blocked"); blocked == "true" {
		query = query.Where("is_blocked = ?", true)
	} else if blocked == "false" {
		query = query.Where("is_blocked = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users", err.Error())
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	response := make([]gin.H, 0, len(users))
	for _, u := range users {
		response = append(response, gin.H{
			"id":            u.ID,
			"email":         u.Email,
			"full_name":     u.FullName,
			"phone":         u.Phone,
			"is_blocked":    u.IsBlocked,
			"last_login_at": u.LastLoginAt,
			"created_at":    u.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully", response, total, pagination.Page, pagination.Limit)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	var user models.User
	if err := config.DB.Where("id = ? AND is_admin = ?", c.Param("id"), false).
		First(&user).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if user.IsBlocked == blocked {
		msg := "User is already unblocked"
		if blocked {
			msg = "User is already blocked"
		}
		utils.Conflict(c, msg, nil)
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		utils.LogError("Failed to update block state for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	utils.LogInfo("User ID: %d %s by admin", user.ID, action)
	utils.Success(c, "User "+action+" successfully", gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"is_blocked": blocked,
	})
}

// AdminBlockUser blocks a customer account. Blocked users fail auth on
// their next request even with a valid token.
func AdminBlockUser(c *gin.Context) {
	utils.LogInfo("AdminBlockUser called")
	setUserBlocked(c, true)
}

// AdminUnblockUser lifts the block on a customer account
func AdminUnblockUser(c *gin.Context) {
	utils.LogInfo("AdminUnblockUser called")
	setUserBlocked(c, false)
}
