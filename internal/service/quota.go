package service

import (
	"context"
	"time"

	"myswamvar/backend/internal/repository"
)

// DailyMessageLimit is the number of messages a free-tier user may send per
// UTC calendar day.
const DailyMessageLimit = 20

// PremiumChecker is the premium status oracle. repository.UserRepository
// satisfies it in production.
type PremiumChecker interface {
	IsPremium(ctx context.Context, userID uint) (bool, error)
}

// QuotaTracker derives the free-tier allowance from the message log. The count
// is recomputed on demand and never cached across requests. The count-then-
// allow sequence is a soft limit: truly concurrent sends at the boundary can
// slip one message past it.
type QuotaTracker struct {
	messages repository.MessageRepository
	now      func() time.Time
}

func NewQuotaTracker(messages repository.MessageRepository) *QuotaTracker {
	return &QuotaTracker{messages: messages, now: time.Now}
}

// StartOfUTCDay returns 00:00:00 UTC of the day containing t.
func StartOfUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CountSentToday counts the user's messages since UTC midnight.
func (q *QuotaTracker) CountSentToday(ctx context.Context, userID uint) (int, error) {
	count, err := q.messages.CountSentSince(ctx, userID, StartOfUTCDay(q.now()))
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Remaining reports the user's quota standing. Premium users are unlimited and
// not tracked at all.
func (q *QuotaTracker) Remaining(ctx context.Context, userID uint, isPremium bool) (QuotaStatus, error) {
	if isPremium {
		return QuotaStatus{Unlimited: true, RemainingToday: -1}, nil
	}

	sent, err := q.CountSentToday(ctx, userID)
	if err != nil {
		return QuotaStatus{}, err
	}
	remaining := DailyMessageLimit - sent
	if remaining < 0 {
		remaining = 0
	}
	return QuotaStatus{
		SentToday:      sent,
		DailyLimit:     DailyMessageLimit,
		RemainingToday: remaining,
	}, nil
}
