package models

import "time"

// InterestStatus defines the state of an interest sent from one user to another.
type InterestStatus string

const (
	// InterestPending means the interest has been sent but not yet answered.
	InterestPending InterestStatus = "pending"

	// InterestAccepted means the recipient accepted. An accepted interest in
	// either direction unlocks messaging between the two users.
	InterestAccepted InterestStatus = "accepted"

	// InterestDeclined means the recipient declined. Terminal, like accepted.
	InterestDeclined InterestStatus = "declined"
)

// Interest is a directed edge from the sending user to the receiving user.
// The (FromUserID, ToUserID) pair is unique: a user can express interest in
// a given profile at most once, regardless of the outcome.
type Interest struct {
	ID         uint           `gorm:"primaryKey"`
	FromUserID uint           `gorm:"not null;uniqueIndex:uk_interest_pair,priority:1"`
	ToUserID   uint           `gorm:"not null;uniqueIndex:uk_interest_pair,priority:2;index"`
	Status     InterestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
