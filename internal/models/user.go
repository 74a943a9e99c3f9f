package models

import (
	"time"
)

// User is created on first login and never updated afterwards.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
