package service

import (
	"context"

	"myswamvar/backend/internal/metrics"
	"myswamvar/backend/internal/models"
	"myswamvar/backend/internal/repository"
	"myswamvar/backend/pkg/apperr"

	"github.com/pkg/errors"
)

// InterestService owns the interest lifecycle: a sender creates a pending
// edge, only the recipient can accept or decline it, and each edge settles
// exactly once. An accepted edge in either direction is what unlocks chat.
type InterestService struct {
	interests repository.InterestRepository
	users     repository.UserRepository
}

func NewInterestService(interests repository.InterestRepository, users repository.UserRepository) *InterestService {
	return &InterestService{interests: interests, users: users}
}

// Send creates a pending interest from one user to another.
func (s *InterestService) Send(ctx context.Context, fromUserID, toUserID uint) (*models.Interest, error) {
	if fromUserID == toUserID {
		return nil, apperr.InvalidArg("cannot send interest to your own profile")
	}

	if _, err := s.users.GetByID(ctx, toUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, err
	}

	exists, err := s.interests.ExistsDirected(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExists("interest already sent to this profile")
	}

	interest := &models.Interest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     models.InterestPending,
	}
	if err := s.interests.Create(ctx, interest); err != nil {
		// The unique index catches the race the exists check cannot.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.AlreadyExists("interest already sent to this profile")
		}
		return nil, err
	}

	metrics.InterestsSentTotal.Inc()
	return interest, nil
}

// Accept marks a pending interest as accepted. Only the recipient may act on
// it; everyone else gets the same not-found as a missing interest so the
// edge's existence is never disclosed.
func (s *InterestService) Accept(ctx context.Context, interestID, actingUserID uint) (*models.Interest, error) {
	interest, err := s.respond(ctx, interestID, actingUserID, models.InterestAccepted)
	if err != nil {
		return nil, err
	}
	return interest, nil
}

// Decline marks a pending interest as declined, with the same guards as Accept.
func (s *InterestService) Decline(ctx context.Context, interestID, actingUserID uint) error {
	_, err := s.respond(ctx, interestID, actingUserID, models.InterestDeclined)
	return err
}

func (s *InterestService) respond(ctx context.Context, interestID, actingUserID uint, status models.InterestStatus) (*models.Interest, error) {
	interest, err := s.interests.GetByID(ctx, interestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("interest not found")
		}
		return nil, err
	}
	if interest.ToUserID != actingUserID {
		return nil, apperr.NotFound("interest not found")
	}
	if interest.Status != models.InterestPending {
		return nil, apperr.InvalidState("interest has already been answered")
	}

	ok, err := s.interests.UpdateStatusFromPending(ctx, interestID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a concurrent accept/decline race.
		return nil, apperr.InvalidState("interest has already been answered")
	}

	interest.Status = status
	return interest, nil
}

// HasMutualInterest reports whether an accepted interest exists in either
// direction between the two users. Always false for a user and themselves.
func (s *InterestService) HasMutualInterest(ctx context.Context, userA, userB uint) (bool, error) {
	if userA == userB {
		return false, nil
	}
	return s.interests.AcceptedBetween(ctx, userA, userB)
}

// ListSent returns the interests the user has sent, newest first.
func (s *InterestService) ListSent(ctx context.Context, userID uint) ([]models.Interest, error) {
	return s.interests.ListSent(ctx, userID)
}

// ListReceived returns the interests addressed to the user, newest first.
func (s *InterestService) ListReceived(ctx context.Context, userID uint) ([]models.Interest, error) {
	return s.interests.ListReceived(ctx, userID)
}
