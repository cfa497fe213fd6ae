package service

import (
	"time"

	"myswamvar/backend/internal/models"
)

// ProfileSummary is the compact profile view embedded in interest and
// conversation listings.
type ProfileSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	City   string `json:"city,omitempty"`
}

func NewProfileSummary(u *models.User) ProfileSummary {
	return ProfileSummary{ID: u.ID, Name: u.Name, Gender: u.Gender, City: u.City}
}

// MessageDTO is the wire representation of a persisted message. It is shared
// by the REST handlers and the realtime push payloads so both channels carry
// the same shape.
type MessageDTO struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewMessageDTO(m *models.Message) MessageDTO {
	return MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

// ConversationSummary is one row of the conversation list: the other
// participant plus the most recent message, if any.
type ConversationSummary struct {
	ConversationID uint           `json:"conversation_id"`
	With           ProfileSummary `json:"with"`
	LastMessage    *MessageDTO    `json:"last_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// QuotaStatus reports a user's standing against the daily message limit.
// Unlimited users are not tracked: SentToday stays 0 and RemainingToday is -1.
type QuotaStatus struct {
	SentToday      int  `json:"sent_today"`
	DailyLimit     int  `json:"daily_limit"`
	Unlimited      bool `json:"unlimited"`
	RemainingToday int  `json:"remaining_today"`
}
