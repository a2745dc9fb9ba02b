package chat

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/presence"
)

// TypingEvent is the payload of chat:typing
type TypingEvent struct {
	ChatID    string `json:"chat_id"`
	UserID    string `json:"user_id"`
	IsTyping  bool   `json:"is_typing"`
	ExpiresIn int64  `json:"expires_in,omitempty"` // milliseconds
}

type typingKey struct {
	chatID primitive.ObjectID
	userID string
}

type typingState struct {
	timer *time.Timer
	gen   uint64
}

// TypingTracker broadcasts typing signals and expires them after ttl with a
// server side stop when no follow-up arrives. Nothing is persisted.
type TypingTracker struct {
	mu     sync.Mutex
	ttl    time.Duration
	gen    uint64
	active map[typingKey]typingState
	pub    presence.Publisher
}

func NewTypingTracker(pub presence.Publisher, ttl time.Duration) *TypingTracker {
	return &TypingTracker{
		ttl:    ttl,
		active: make(map[typingKey]typingState),
		pub:    pub,
	}
}

// Start marks the user as typing in the chat and restarts its expiry
func (t *TypingTracker) Start(chatID primitive.ObjectID, userID string) {
	key := typingKey{chatID, userID}

	t.mu.Lock()
	if st, ok := t.active[key]; ok {
		st.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.active[key] = typingState{
		timer: time.AfterFunc(t.ttl, func() { t.expire(key, gen) }),
		gen:   gen,
	}
	t.mu.Unlock()

	t.pub.Publish(presence.ChatRoom(chatID), presence.EventChatTyping, TypingEvent{
		ChatID:    chatID.Hex(),
		UserID:    userID,
		IsTyping:  true,
		ExpiresIn: t.ttl.Milliseconds(),
	})
}

// Stop broadcasts that the user stopped typing
func (t *TypingTracker) Stop(chatID primitive.ObjectID, userID string) {
	t.remove(typingKey{chatID, userID})
	t.broadcastStop(chatID, userID)
}

// Clear stops a pending typing signal of the user, broadcasting only when
// one was active
func (t *TypingTracker) Clear(chatID primitive.ObjectID, userID string) {
	if t.remove(typingKey{chatID, userID}) {
		t.broadcastStop(chatID, userID)
	}
}

// Active reports whether the user is currently shown as typing
func (t *TypingTracker) Active(chatID primitive.ObjectID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[typingKey{chatID, userID}]
	return ok
}

func (t *TypingTracker) remove(key typingKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.active[key]
	if !ok {
		return false
	}
	st.timer.Stop()
	delete(t.active, key)
	return true
}

func (t *TypingTracker) expire(key typingKey, gen uint64) {
	t.mu.Lock()
	st, ok := t.active[key]
	if !ok || st.gen != gen {
		t.mu.Unlock()
		return
	}
	delete(t.active, key)
	t.mu.Unlock()

	t.broadcastStop(key.chatID, key.userID)
}

func (t *TypingTracker) broadcastStop(chatID primitive.ObjectID, userID string) {
	t.pub.Publish(presence.ChatRoom(chatID), presence.EventChatTyping, TypingEvent{
		ChatID:   chatID.Hex(),
		UserID:   userID,
		IsTyping: false,
	})
}
