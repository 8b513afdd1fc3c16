package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
)

// NewsletterRequest represents the subscribe/unsubscribe body
type NewsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubscribeNewsletter registers an email for the newsletter.
// Re-subscribing a previously unsubscribed email reactivates it.
func SubscribeNewsletter(c *gin.Context) {
	utils.LogInfo("SubscribeNewsletter called")

	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidateEmail(email) {
		utils.BadRequest(c, "Invalid email address", nil)
		return
	}

	var sub models.NewsletterSubscriber
	err := config.DB.Where("email = ?", email).First(&sub).Error
	switch {
	case err == nil && sub.Subscribed:
		utils.Conflict(c, "Email is already subscribed", nil)
		return
	case err == nil:
		if err := config.DB.Model(&sub).Updates(map[string]interface{}{
			"subscribed":    true,
			"subscribed_at": time.Now(),
			"unsub_at":      nil,
		}).Error; err != nil {
			utils.LogError("Failed to resubscribe %s: %v", email, err)
			utils.InternalServerError(c, "Failed to subscribe", err.Error())
			return
		}
	case err == gorm.ErrRecordNotFound:
		sub = models.NewsletterSubscriber{Email: email, Subscribed: true, SubscribedAt: time.Now()}
		if err := config.DB.Create(&sub).Error; err != nil {
			utils.LogError("Failed to subscribe %s: %v", email, err)
			utils.InternalServerError(c, "Failed to subscribe", err.Error())
			return
		}
	default:
		utils.InternalServerError(c, "Failed to subscribe", err.Error())
		return
	}

	utils.LogInfo("Newsletter subscription added: %s", email)
	utils.Success(c, "Subscribed to newsletter successfully", nil)
}

// UnsubscribeNewsletter removes an email from the broadcast list
func UnsubscribeNewsletter(c *gin.Context) {
	utils.LogInfo("UnsubscribeNewsletter called")

	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	now := time.Now()
	result := config.DB.Model(&models.NewsletterSubscriber{}).
		Where("email = ? AND subscribed = ?", email, true).
		Updates(map[string]interface{}{"subscribed": false, "unsub_at": &now})
	if result.Error != nil {
		utils.LogError("Failed to unsubscribe %s: %v", email, result.Error)
		utils.InternalServerError(c, "Failed to unsubscribe", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Email is not subscribed")
		return
	}

	utils.Success(c, "Unsubscribed from newsletter successfully", nil)
}
