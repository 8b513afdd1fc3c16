package models

import (
	"time"
)

type NewsletterSubscriber struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Subscribed   bool       `json:"subscribed" gorm:"default:true"`
	SubscribedAt time.Time  `json:"subscribed_at"`
	UnsubAt      *time.Time `json:"unsubscribed_at,omitempty"`
}
