package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"myswamvar/backend/internal/hub"
	"myswamvar/backend/internal/models"
	"myswamvar/backend/internal/repository"
	"myswamvar/backend/internal/service"
	"myswamvar/backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	tokens map[string]uint
}

func (r *stubResolver) Resolve(credential string) (uint, error) {
	if id, ok := r.tokens[credential]; ok {
		return id, nil
	}
	return 0, apperr.Unauthenticated("invalid or expired token")
}

// pairGate unlocks chat for an explicit set of user pairs.
type pairGate struct {
	allowed map[[2]uint]bool
}

func newPairGate(pairs ...[2]uint) *pairGate {
	g := &pairGate{allowed: make(map[[2]uint]bool)}
	for _, p := range pairs {
		u1, u2 := repository.CanonicalPair(p[0], p[1])
		g.allowed[[2]uint{u1, u2}] = true
	}
	return g
}

func (g *pairGate) HasMutualInterest(_ context.Context, userA, userB uint) (bool, error) {
	u1, u2 := repository.CanonicalPair(userA, userB)
	return g.allowed[[2]uint{u1, u2}], nil
}

type memConversationRepo struct {
	mu     sync.Mutex
	nextID uint
	convs  map[[2]uint]*models.Conversation
}

func (r *memConversationRepo) GetOrCreate(_ context.Context, userA, userB uint) (*models.Conversation, error) {
	user1, user2 := repository.CanonicalPair(userA, userB)
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{user1, user2}
	if conv, ok := r.convs[key]; ok {
		return conv, nil
	}
	r.nextID++
	conv := &models.Conversation{ID: r.nextID, User1ID: user1, User2ID: user2, CreatedAt: time.Now()}
	r.convs[key] = conv
	return conv, nil
}

func (r *memConversationRepo) ListForUser(_ context.Context, _ uint) ([]models.Conversation, error) {
	return nil, nil
}

type memMessageRepo struct {
	mu     sync.Mutex
	nextID uint
	msgs   []models.Message
}

func (r *memMessageRepo) Create(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	msg.CreatedAt = time.Now()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *memMessageRepo) ListBefore(_ context.Context, conversationID, beforeID uint, limit int) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
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

func (r *memMessageRepo) LastInConversation(_ context.Context, conversationID uint) (*models.Message, error) {
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

func (r *memMessageRepo) CountSentSince(_ context.Context, senderID uint, since time.Time) (int64, error) {
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

type freeTier struct{}

func (freeTier) IsPremium(_ context.Context, _ uint) (bool, error) { return false, nil }

func newTestChatService(pairs ...[2]uint) *service.ChatService {
	convs := &memConversationRepo{convs: make(map[[2]uint]*models.Conversation)}
	msgs := &memMessageRepo{}
	quota := service.NewQuotaTracker(msgs)
	return service.NewChatService(newPairGate(pairs...), convs, msgs, quota, freeTier{})
}

func newTestRouter(h *hub.Hub, chat *service.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := &stubResolver{tokens: map[string]uint{"alice": 1, "bob": 2, "good": 5}}
	gw := NewGateway(h, chat, resolver)
	r := gin.New()
	r.GET("/ws/chat", gw.Serve())
	return r
}

func dialWS(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	return conn
}

// ackPayload mirrors the reply frame clients receive for inbound events.
type ackPayload struct {
	Type    string              `json:"type"`
	OK      bool                `json:"ok"`
	Message *service.MessageDTO `json:"message"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
}

// pushedEvent mirrors the fan-out frame recipients receive.
type pushedEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// waitForSessions blocks until the user has n registered sessions. The server
// registers a session just after the handshake response the dialer returns on,
// so tests must not assume registration is already visible.
func waitForSessions(t *testing.T, h *hub.Hub, userID uint, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(h.Sessions(userID)) == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %d never reached %d sessions", userID, n)
}

func readAck(t *testing.T, conn *websocket.Conn) ackPayload {
	t.Helper()
	var a ackPayload
	require.NoError(t, conn.ReadJSON(&a))
	require.Equal(t, "ack", a.Type)
	return a
}

func TestServe_RejectsMissingCredential(t *testing.T) {
	h := hub.NewHub()
	r := newTestRouter(h, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/chat", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, h.Sessions(5))
}

func TestServe_RejectsInvalidCredential(t *testing.T) {
	h := hub.NewHub()
	r := newTestRouter(h, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/chat?token=expired", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, h.Sessions(5))
}

func TestServe_ValidCredentialRequiresWebsocketHandshake(t *testing.T) {
	h := hub.NewHub()
	r := newTestRouter(h, nil)

	// A valid credential over plain HTTP fails the upgrade, and no presence
	// entry may be left behind.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/chat?token=good", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, h.Sessions(5))
}

func TestServe_AcceptsAuthorizationHeader(t *testing.T) {
	h := hub.NewHub()
	srv := httptest.NewServer(newTestRouter(h, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Authorization": {"Bearer good"}})
	require.NoError(t, err)
	defer conn.Close()
	if resp != nil {
		_ = resp.Body.Close()
	}

	waitForSessions(t, h, 5, 1)
}

func TestGateway_RejectedEventsGetAcksNotDisconnects(t *testing.T) {
	h := hub.NewHub()
	srv := httptest.NewServer(newTestRouter(h, newTestChatService([2]uint{1, 2})))
	defer srv.Close()

	alice := dialWS(t, srv, "alice")

	// Malformed JSON gets a structured reply.
	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(`{"type":`)))
	a := readAck(t, alice)
	assert.False(t, a.OK)
	assert.Equal(t, string(apperr.CodeInvalidArgument), a.Code)

	// Unknown event type too.
	require.NoError(t, alice.WriteJSON(map[string]interface{}{"type": "wat"}))
	a = readAck(t, alice)
	assert.False(t, a.OK)

	// A send without mutual interest is refused but never connection-fatal.
	require.NoError(t, alice.WriteJSON(map[string]interface{}{
		"type": "message", "to_user_id": 9, "content": "hello stranger",
	}))
	a = readAck(t, alice)
	assert.False(t, a.OK)
	assert.Equal(t, string(apperr.CodePermissionDenied), a.Code)

	// The connection survived all three: a valid send still works.
	require.NoError(t, alice.WriteJSON(map[string]interface{}{
		"type": "message", "to_user_id": 2, "content": "hi",
	}))
	a = readAck(t, alice)
	assert.True(t, a.OK)
	require.NotNil(t, a.Message)
	assert.Equal(t, "hi", a.Message.Content)
}

func TestGateway_SendFansOutToAllRecipientSessions(t *testing.T) {
	h := hub.NewHub()
	srv := httptest.NewServer(newTestRouter(h, newTestChatService([2]uint{1, 2})))
	defer srv.Close()

	// Bob is connected twice, like a phone and a laptop.
	bobPhone := dialWS(t, srv, "bob")
	bobLaptop := dialWS(t, srv, "bob")
	alice := dialWS(t, srv, "alice")
	waitForSessions(t, h, 2, 2)

	require.NoError(t, alice.WriteJSON(map[string]interface{}{
		"type": "message", "to_user_id": 2, "content": "are you free sunday?",
	}))

	a := readAck(t, alice)
	require.True(t, a.OK)
	require.NotNil(t, a.Message)

	for _, conn := range []*websocket.Conn{bobPhone, bobLaptop} {
		var evt pushedEvent
		require.NoError(t, conn.ReadJSON(&evt))
		assert.Equal(t, "message", evt.Type)

		var msg service.MessageDTO
		require.NoError(t, json.Unmarshal(evt.Payload, &msg))
		assert.Equal(t, a.Message.ID, msg.ID)
		assert.Equal(t, uint(1), msg.SenderID)
		assert.Equal(t, "are you free sunday?", msg.Content)
	}
}

func TestGateway_TypingIsRelayedToRecipient(t *testing.T) {
	h := hub.NewHub()
	srv := httptest.NewServer(newTestRouter(h, newTestChatService([2]uint{1, 2})))
	defer srv.Close()

	bob := dialWS(t, srv, "bob")
	alice := dialWS(t, srv, "alice")
	waitForSessions(t, h, 2, 1)

	require.NoError(t, alice.WriteJSON(map[string]interface{}{
		"type": "typing", "to_user_id": 2,
	}))

	var evt pushedEvent
	require.NoError(t, bob.ReadJSON(&evt))
	assert.Equal(t, "typing", evt.Type)

	var payload struct {
		UserID uint `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, uint(1), payload.UserID)
}
