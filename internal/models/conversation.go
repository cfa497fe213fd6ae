package models

import "time"

// Conversation is the single 1:1 channel between two users. The pair is stored
// canonically with User1ID < User2ID so that both directions of first contact
// resolve to the same row; the unique index makes concurrent creation converge.
type Conversation struct {
	ID        uint `gorm:"primaryKey"`
	User1ID   uint `gorm:"not null;uniqueIndex:uk_conversation_pair,priority:1"`
	User2ID   uint `gorm:"not null;uniqueIndex:uk_conversation_pair,priority:2;index"`
	CreatedAt time.Time

	User1 User `gorm:"foreignKey:User1ID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User2 User `gorm:"foreignKey:User2ID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// OtherParticipant returns the participant that is not the given user.
// Callers must have preloaded User1 and User2.
func (c *Conversation) OtherParticipant(userID uint) *User {
	if c.User1ID == userID {
		return &c.User2
	}
	return &c.User1
}

// HasParticipant reports whether the user is one of the two participants.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Message is an immutable entry in a conversation's log. Log order is
// (CreatedAt, ID): timestamps are server-assigned and IDs break ties.
type Message struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uint      `gorm:"not null;index:idx_message_conv_created,priority:1"`
	SenderID       uint      `gorm:"not null;index"`
	Content        string    `gorm:"size:2000;not null"`
	CreatedAt      time.Time `gorm:"index:idx_message_conv_created,priority:2"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Sender       User         `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
