package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered member of the platform.
type User struct {
	gorm.Model
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Gender       string `gorm:"size:16;not null"`
	City         string `gorm:"size:128"`
	About        string `gorm:"size:1000"`
	DateOfBirth  *time.Time

	// Premium membership lifts the daily message quota while it is active.
	PremiumUntil *time.Time
}

// IsPremiumAt reports whether the membership is active at the given instant.
func (u *User) IsPremiumAt(now time.Time) bool {
	return u.PremiumUntil != nil && u.PremiumUntil.After(now)
}
