package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"myswamvar/backend/internal/metrics"
	"myswamvar/backend/internal/models"
	"myswamvar/backend/internal/repository"
	"myswamvar/backend/pkg/apperr"
)

const (
	// MaxMessageLength bounds message content after trimming.
	MaxMessageLength = 2000

	defaultPageSize = 50
	maxPageSize     = 100
)

// MutualInterestChecker is the gate that decides whether two users may chat.
// *InterestService satisfies it.
type MutualInterestChecker interface {
	HasMutualInterest(ctx context.Context, userA, userB uint) (bool, error)
}

// ChatService orchestrates messaging: it enforces the mutual-interest gate and
// the daily quota, resolves the canonical conversation, and persists messages.
type ChatService struct {
	gate    MutualInterestChecker
	convs   repository.ConversationRepository
	msgs    repository.MessageRepository
	quota   *QuotaTracker
	premium PremiumChecker
}

func NewChatService(
	gate MutualInterestChecker,
	convs repository.ConversationRepository,
	msgs repository.MessageRepository,
	quota *QuotaTracker,
	premium PremiumChecker,
) *ChatService {
	return &ChatService{gate: gate, convs: convs, msgs: msgs, quota: quota, premium: premium}
}

// SendMessage runs the full send pipeline: self-check, mutual-interest gate,
// conversation resolution, quota, content validation, persist.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID uint, rawContent string) (*MessageDTO, error) {
	if senderID == receiverID {
		return nil, apperr.InvalidArg("cannot message yourself")
	}

	mutual, err := s.gate.HasMutualInterest(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, apperr.Forbidden("messaging requires an accepted interest between you")
	}

	conv, err := s.convs.GetOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	isPremium, err := s.premium.IsPremium(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !isPremium {
		status, err := s.quota.Remaining(ctx, senderID, false)
		if err != nil {
			return nil, err
		}
		if status.RemainingToday <= 0 {
			metrics.QuotaRejectionsTotal.Inc()
			return nil, apperr.QuotaExceeded("daily message limit reached").
				WithMeta("daily_limit", DailyMessageLimit)
		}
	}

	content := strings.TrimSpace(rawContent)
	if content == "" {
		return nil, apperr.InvalidArg("message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, apperr.InvalidArg("message content exceeds maximum length")
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.msgs.Create(ctx, msg); err != nil {
		return nil, err
	}

	metrics.MessagesSentTotal.Inc()
	dto := NewMessageDTO(msg)
	return &dto, nil
}

// GetMessages returns a window of the conversation with the other user in
// chronological order. History is gated exactly like sending: without mutual
// interest no conversation could exist, and none is disclosed.
func (s *ChatService) GetMessages(ctx context.Context, userID, otherUserID, beforeID uint, limit int) ([]MessageDTO, error) {
	if userID == otherUserID {
		return nil, apperr.InvalidArg("cannot read a conversation with yourself")
	}

	mutual, err := s.gate.HasMutualInterest(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, apperr.Forbidden("messaging requires an accepted interest between you")
	}

	conv, err := s.convs.GetOrCreate(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	msgs, err := s.msgs.ListBefore(ctx, conv.ID, beforeID, limit)
	if err != nil {
		return nil, err
	}

	// Fetched newest-first for windowing, returned oldest-first for display.
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[len(msgs)-1-i] = NewMessageDTO(&m)
	}
	return out, nil
}

// ListConversations returns one summary per conversation the user is part of,
// newest conversation first. No gate here: a conversation row only exists if
// the gate held when it was created, and that unlock is never revoked.
func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	convs, err := s.convs.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ConversationSummary, 0, len(convs))
	for i := range convs {
		conv := &convs[i]
		summary := ConversationSummary{
			ConversationID: conv.ID,
			With:           NewProfileSummary(conv.OtherParticipant(userID)),
			CreatedAt:      conv.CreatedAt,
		}
		last, err := s.msgs.LastInConversation(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			dto := NewMessageDTO(last)
			summary.LastMessage = &dto
		}
		out = append(out, summary)
	}
	return out, nil
}

// MessageLimit resolves the user's premium status and reports their quota.
func (s *ChatService) MessageLimit(ctx context.Context, userID uint) (QuotaStatus, error) {
	isPremium, err := s.premium.IsPremium(ctx, userID)
	if err != nil {
		return QuotaStatus{}, err
	}
	return s.quota.Remaining(ctx, userID, isPremium)
}
