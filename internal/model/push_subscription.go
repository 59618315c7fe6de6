package model

import "time"

// PushSubscription holds a browser push endpoint and the events it follows.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Events []*Event `gorm:"many2many:subscription_event_mapping;constraint:OnDelete:CASCADE"`
}
