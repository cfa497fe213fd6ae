package service

import (
	"context"
	"sync"
	"time"

	"myswamvar/backend/internal/models"
	"myswamvar/backend/internal/repository"

	"gorm.io/gorm"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

// In-memory repository fakes. They mirror the storage-layer contracts closely
// enough to drive the service logic, including the unique constraints.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uint(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) IsPremium(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	return u.IsPremiumAt(time.Now().UTC()), nil
}

type fakeInterestRepo struct {
	mu        sync.Mutex
	nextID    uint
	interests map[uint]*models.Interest
	clock     *fakeClock
}

func newFakeInterestRepo(clock *fakeClock) *fakeInterestRepo {
	return &fakeInterestRepo{interests: make(map[uint]*models.Interest), clock: clock}
}

func (r *fakeInterestRepo) Create(_ context.Context, interest *models.Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.interests {
		if it.FromUserID == interest.FromUserID && it.ToUserID == interest.ToUserID {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	interest.ID = r.nextID
	interest.CreatedAt = r.clock.Now()
	cp := *interest
	r.interests[interest.ID] = &cp
	return nil
}

func (r *fakeInterestRepo) GetByID(_ context.Context, id uint) (*models.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.interests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *fakeInterestRepo) UpdateStatusFromPending(_ context.Context, id uint, status models.InterestStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.interests[id]
	if !ok || it.Status != models.InterestPending {
		return false, nil
	}
	it.Status = status
	return true, nil
}

func (r *fakeInterestRepo) ExistsDirected(_ context.Context, fromUserID, toUserID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.interests {
		if it.FromUserID == fromUserID && it.ToUserID == toUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInterestRepo) AcceptedBetween(_ context.Context, userA, userB uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.interests {
		if it.Status != models.InterestAccepted {
			continue
		}
		if (it.FromUserID == userA && it.ToUserID == userB) ||
			(it.FromUserID == userB && it.ToUserID == userA) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInterestRepo) ListSent(_ context.Context, userID uint) ([]models.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Interest
	for _, it := range r.interests {
		if it.FromUserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeInterestRepo) ListReceived(_ context.Context, userID uint) ([]models.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Interest
	for _, it := range r.interests {
		if it.ToUserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

type fakeConversationRepo struct {
	mu     sync.Mutex
	nextID uint
	convs  map[[2]uint]*models.Conversation
	users  *fakeUserRepo
	clock  *fakeClock
}

func newFakeConversationRepo(users *fakeUserRepo, clock *fakeClock) *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[[2]uint]*models.Conversation), users: users, clock: clock}
}

func (r *fakeConversationRepo) GetOrCreate(_ context.Context, userA, userB uint) (*models.Conversation, error) {
	user1, user2 := repository.CanonicalPair(userA, userB)
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{user1, user2}
	if conv, ok := r.convs[key]; ok {
		cp := *conv
		return &cp, nil
	}
	r.nextID++
	conv := &models.Conversation{ID: r.nextID, User1ID: user1, User2ID: user2, CreatedAt: r.clock.Now()}
	if u, ok := r.users.users[user1]; ok {
		conv.User1 = *u
	}
	if u, ok := r.users.users[user2]; ok {
		conv.User2 = *u
	}
	r.convs[key] = conv
	cp := *conv
	return &cp, nil
}

func (r *fakeConversationRepo) ListForUser(_ context.Context, userID uint) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Conversation
	for _, conv := range r.convs {
		if conv.HasParticipant(userID) {
			out = append(out, *conv)
		}
	}
	// Newest first, like the gorm implementation.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu     sync.Mutex
	nextID uint
	msgs   []models.Message
	clock  *fakeClock
}

func newFakeMessageRepo(clock *fakeClock) *fakeMessageRepo {
	return &fakeMessageRepo{clock: clock}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	msg.CreatedAt = r.clock.Now()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *fakeMessageRepo) ListBefore(_ context.Context, conversationID, beforeID uint, limit int) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	// msgs is in insertion order; walk backwards for newest-first.
	for i := len(r.msgs) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.msgs[i]
		if m.ConversationID != conversationID {
			continue
		}
		if beforeID > 0 && m.ID >= beforeID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMessageRepo) LastInConversation(_ context.Context, conversationID uint) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].ConversationID == conversationID {
			cp := r.msgs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) CountSentSince(_ context.Context, senderID uint, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.msgs {
		if m.SenderID == senderID && !m.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}
