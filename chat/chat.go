package chat

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/presence"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/store"
)

const maxMessageLength = 2000

// MessageEvent is the payload of chat:message
type MessageEvent struct {
	ChatID  string         `json:"chat_id"`
	Message schema.Message `json:"message"`
}

// ReadEvent is the payload of chat:read
type ReadEvent struct {
	ChatID string    `json:"chat_id"`
	ReadBy string    `json:"read_by"`
	ReadAt time.Time `json:"read_at"`
	Count  int64     `json:"count"`
}

// Service is the conversation between the requester and the volunteer of a
// request. Messages are persisted before they are pushed to the chat room.
type Service struct {
	chats    store.ChatStore
	requests store.RequestStore
	pub      presence.Publisher
	typing   *TypingTracker
	now      func() time.Time
}

func NewService(chats store.ChatStore, requests store.RequestStore, pub presence.Publisher, typingTTL time.Duration) *Service {
	return &Service{
		chats:    chats,
		requests: requests,
		pub:      pub,
		typing:   NewTypingTracker(pub, typingTTL),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Open returns the chat of a request, creating it on first access once a
// volunteer has accepted the request
func (s *Service) Open(ctx context.Context, requestID primitive.ObjectID, callerID string) (*schema.Chat, error) {
	c, err := s.chats.GetChatByRequest(ctx, requestID)
	switch {
	case err == nil:
		if err := access(c, callerID, false); err != nil {
			return nil, err
		}
		return c, nil
	case !errors.Is(err, store.ErrChatNotFound):
		return nil, err
	}

	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return nil, fault.Wrap(fault.NotFound, err, "request not found")
		}
		return nil, err
	}
	if !req.IsParticipant(callerID) {
		return nil, fault.NotAuthorizedf("not a participant of this request")
	}
	if req.VolunteerID == "" {
		return nil, fault.NotAvailablef("chat opens once a volunteer accepts the request")
	}

	now := s.now()
	return s.chats.OpenChat(ctx, schema.Chat{
		RequestID:    req.ID,
		RequesterID:  req.RequesterID,
		VolunteerID:  req.VolunteerID,
		Participants: []string{req.RequesterID, req.VolunteerID},
		Messages:     []schema.Message{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *Service) participantChat(ctx context.Context, chatID primitive.ObjectID, userID string, write bool) (*schema.Chat, error) {
	c, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			return nil, fault.Wrap(fault.NotFound, err, "chat not found")
		}
		return nil, err
	}
	if err := access(c, userID, write); err != nil {
		return nil, err
	}
	return c, nil
}

// access checks the user against the chat. A closed chat belongs to its
// requester alone and is read only.
func access(c *schema.Chat, userID string, write bool) error {
	if !c.HasParticipant(userID) {
		return fault.NotAuthorizedf("not a participant of this chat")
	}
	if c.IsActive {
		return nil
	}
	if userID != c.RequesterID {
		return fault.NotAuthorizedf("not a participant of this chat")
	}
	if write {
		return fault.NotAvailablef("chat is closed")
	}
	return nil
}

// Close deactivates the chat of a request once its volunteer is released
func (s *Service) Close(ctx context.Context, requestID primitive.ObjectID) error {
	return s.chats.CloseChat(ctx, requestID)
}

// Authorize checks that the user may take part in the chat
func (s *Service) Authorize(ctx context.Context, chatID primitive.ObjectID, userID string) error {
	_, err := s.participantChat(ctx, chatID, userID, false)
	return err
}

// Send appends a message and pushes it to the chat room
func (s *Service) Send(ctx context.Context, chatID primitive.ObjectID, senderID, content string) (*schema.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fault.Validationf("message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, fault.Validationf("message must be at most %d characters", maxMessageLength)
	}

	if _, err := s.participantChat(ctx, chatID, senderID, true); err != nil {
		return nil, err
	}

	msg := schema.Message{
		ID:        primitive.NewObjectID(),
		SenderID:  senderID,
		Content:   content,
		IsRead:    false,
		CreatedAt: s.now(),
	}
	if err := s.chats.AppendMessage(ctx, chatID, msg); err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			return nil, fault.Wrap(fault.NotFound, err, "chat not found")
		}
		return nil, err
	}

	s.typing.Clear(chatID, senderID)
	s.pub.Publish(presence.ChatRoom(chatID), presence.EventChatMessage, MessageEvent{
		ChatID:  chatID.Hex(),
		Message: msg,
	})
	return &msg, nil
}

// Messages returns the persisted messages of a chat in the order they were sent
func (s *Service) Messages(ctx context.Context, chatID primitive.ObjectID, callerID string) ([]schema.Message, error) {
	c, err := s.participantChat(ctx, chatID, callerID, false)
	if err != nil {
		return nil, err
	}
	if c.Messages == nil {
		return []schema.Message{}, nil
	}
	return c.Messages, nil
}

// MarkRead marks the messages of the other participant as read
func (s *Service) MarkRead(ctx context.Context, chatID primitive.ObjectID, readerID string) (int64, error) {
	if _, err := s.participantChat(ctx, chatID, readerID, true); err != nil {
		return 0, err
	}

	at := s.now()
	count, err := s.chats.MarkMessagesRead(ctx, chatID, readerID, at)
	if err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			return 0, fault.Wrap(fault.NotFound, err, "chat not found")
		}
		return 0, err
	}

	s.pub.Publish(presence.ChatRoom(chatID), presence.EventChatRead, ReadEvent{
		ChatID: chatID.Hex(),
		ReadBy: readerID,
		ReadAt: at,
		Count:  count,
	})
	return count, nil
}

func (s *Service) Typing(chatID primitive.ObjectID, userID string, isTyping bool) {
	if isTyping {
		s.typing.Start(chatID, userID)
		return
	}
	s.typing.Stop(chatID, userID)
}

func (s *Service) ClearTyping(chatID primitive.ObjectID, userID string) {
	s.typing.Clear(chatID, userID)
}

func (s *Service) List(ctx context.Context, userID string) ([]schema.Chat, error) {
	return s.chats.ListChats(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.chats.CountUnreadMessages(ctx, userID)
}
