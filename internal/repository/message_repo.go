package repository

import (
	"context"
	"time"

	"myswamvar/backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MessageRepository owns the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListBefore returns up to limit messages of a conversation strictly older
	// than the message with ID beforeID (all newest messages when beforeID is
	// zero), newest first. Callers reverse for display.
	ListBefore(ctx context.Context, conversationID, beforeID uint, limit int) ([]models.Message, error)
	LastInConversation(ctx context.Context, conversationID uint) (*models.Message, error)
	CountSentSince(ctx context.Context, senderID uint, since time.Time) (int64, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return errors.Wrap(err, "create message")
	}
	return nil
}

func (r *messageRepo) ListBefore(ctx context.Context, conversationID, beforeID uint, limit int) ([]models.Message, error) {
	q := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}
	var msgs []models.Message
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}
	return msgs, nil
}

func (r *messageRepo) LastInConversation(ctx context.Context, conversationID uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "last message")
	}
	return &msg, nil
}

func (r *messageRepo) CountSentSince(ctx context.Context, senderID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND created_at >= ?", senderID, since).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count sent messages")
	}
	return count, nil
}
