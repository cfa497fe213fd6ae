package repository

import (
	"context"

	"myswamvar/backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// InterestRepository owns the directed interest edges between users.
type InterestRepository interface {
	Create(ctx context.Context, interest *models.Interest) error
	GetByID(ctx context.Context, id uint) (*models.Interest, error)
	// UpdateStatusFromPending transitions the interest out of pending exactly
	// once. Returns false when the row was not pending anymore (or missing),
	// so concurrent accept/decline calls cannot both win.
	UpdateStatusFromPending(ctx context.Context, id uint, status models.InterestStatus) (bool, error)
	ExistsDirected(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	AcceptedBetween(ctx context.Context, userA, userB uint) (bool, error)
	ListSent(ctx context.Context, userID uint) ([]models.Interest, error)
	ListReceived(ctx context.Context, userID uint) ([]models.Interest, error)
}

type interestRepo struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepo{db: db}
}

func (r *interestRepo) Create(ctx context.Context, interest *models.Interest) error {
	err := r.db.WithContext(ctx).Create(interest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "create interest")
	}
	return nil
}

func (r *interestRepo) GetByID(ctx context.Context, id uint) (*models.Interest, error) {
	var interest models.Interest
	err := r.db.WithContext(ctx).First(&interest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get interest")
	}
	return &interest, nil
}

func (r *interestRepo) UpdateStatusFromPending(ctx context.Context, id uint, status models.InterestStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("id = ? AND status = ?", id, models.InterestPending).
		Update("status", status)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "update interest status")
	}
	return res.RowsAffected > 0, nil
}

func (r *interestRepo) ExistsDirected(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count directed interests")
	}
	return count > 0, nil
}

func (r *interestRepo) AcceptedBetween(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("status = ?", models.InterestAccepted).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count accepted interests")
	}
	return count > 0, nil
}

func (r *interestRepo) ListSent(ctx context.Context, userID uint) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ?", userID).
		Preload("ToUser").
		Order("created_at DESC").
		Find(&interests).Error
	if err != nil {
		return nil, errors.Wrap(err, "list sent interests")
	}
	return interests, nil
}

func (r *interestRepo) ListReceived(ctx context.Context, userID uint) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Preload("FromUser").
		Order("created_at DESC").
		Find(&interests).Error
	if err != nil {
		return nil, errors.Wrap(err, "list received interests")
	}
	return interests, nil
}
