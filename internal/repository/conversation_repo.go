package repository

import (
	"context"

	"myswamvar/backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepository owns the canonical 1:1 conversations.
type ConversationRepository interface {
	// GetOrCreate accepts the participant pair in either order and returns the
	// single conversation row for it, creating it on first contact.
	GetOrCreate(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Conversation, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

// CanonicalPair orders two user IDs so the smaller one always lands in
// user1_id. Every path that creates or looks up a conversation must go through
// this single total order, otherwise the pair-uniqueness invariant breaks.
func CanonicalPair(userA, userB uint) (uint, uint) {
	if userA < userB {
		return userA, userB
	}
	return userB, userA
}

func (r *conversationRepo) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	user1, user2 := CanonicalPair(userA, userB)

	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", user1, user2).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "lookup conversation")
	}

	// Insert-or-skip against the unique pair index. When both sides message
	// each other for the first time concurrently, exactly one insert lands and
	// the other falls through to the refetch below.
	conv = models.Conversation{User1ID: user1, User2ID: user2}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&conv)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create conversation")
	}
	if res.RowsAffected > 0 {
		return &conv, nil
	}

	err = r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", user1, user2).
		First(&conv).Error
	if err != nil {
		return nil, errors.Wrap(err, "refetch conversation")
	}
	return &conv, nil
}

func (r *conversationRepo) ListForUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Preload("User1").
		Preload("User2").
		Order("created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list conversations")
	}
	return convs, nil
}
