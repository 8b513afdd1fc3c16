package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// AdminListSubscribers returns newsletter subscribers
func AdminListSubscribers(c *gin.Context) {
	utils.LogInfo("AdminListSubscribers called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.NewsletterSubscriber{})
	if subscribed := c.Query("subscribed"); subscribed == "true" {
		query = query.Where("subscribed = ?", true)
	} else if subscribed == "false" {
		query = query.Where("subscribed = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count subscribers", err.Error())
		return
	}

	var subscribers []models.NewsletterSubscriber
	if err := query.Order("subscribed_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&subscribers).Error; err != nil {
		utils.LogError("Failed to fetch subscribers: %v", err)
		utils.InternalServerError(c, "Failed to fetch subscribers", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Subscribers retrieved successfully", subscribers, total, pagination.Page, pagination.Limit)
}

// BroadcastRequest represents the newsletter send body
type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// AdminBroadcastNewsletter sends an email to every active subscriber.
// The send runs in the background; the response reports the recipient
// count, not delivery.
func AdminBroadcastNewsletter(c *gin.Context) {
	utils.LogInfo("AdminBroadcastNewsletter called")

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var subscribers []models.NewsletterSubscriber
	if err := config.DB.Where("subscribed = ?", true).Find(&subscribers).Error; err != nil {
		utils.LogError("Failed to fetch subscribers for broadcast: %v", err)
		utils.InternalServerError(c, "Failed to fetch subscribers", err.Error())
		return
	}
	if len(subscribers) == 0 {
		utils.BadRequest(c, "There are no active subscribers", nil)
		return
	}

	recipients := make([]string, 0, len(subscribers))
	for _, sub := range subscribers {
		recipients = append(recipients, sub.Email)
	}

	go func(recipients []string, subject, body string) {
		sent, failed := utils.BroadcastNewsletter(recipients, subject, body)
		utils.LogInfo("Newsletter broadcast finished: %d sent, %d failed", sent, failed)
	}(recipients, req.Subject, req.Body)

	utils.LogInfo("Newsletter broadcast started for %d recipients", len(recipients))
	utils.Success(c, "Newsletter broadcast started", gin.H{
		"recipients": len(recipients),
	})
}
