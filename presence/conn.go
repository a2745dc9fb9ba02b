package presence

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/fault"
)

const eventTimeout = 10 * time.Second

// Conn is one live client connection
type Conn struct {
	id     string
	userID string
	ws     *websocket.Conn
	send   chan []byte
	done   chan struct{}

	// guarded by the hub lock
	rooms map[string]struct{}

	hub *Hub
}

type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type eventData struct {
	UserID   string `json:"user_id"`
	ChatID   string `json:"chat_id"`
	Content  string `json:"content"`
	IsTyping bool   `json:"is_typing"`
}

func (c *Conn) enqueue(b []byte, event string) {
	select {
	case <-c.done:
	case c.send <- b:
	default:
		log.WithField("conn", c.id).WithField("event", event).Warn("send buffer full, event dropped")
	}
}

func (c *Conn) fail(event, message string) {
	b, err := json.Marshal(Frame{Event: EventError, Data: ErrorData{Event: event, Message: message}})
	if err != nil {
		return
	}
	c.enqueue(b, EventError)
}

func (c *Conn) failWith(event string, err error) {
	if fault.KindOf(err) == fault.Unknown {
		log.WithError(err).WithField("conn", c.id).WithField("event", event).Error("handle event")
		c.fail(event, "internal error")
		return
	}
	c.fail(event, fault.Message(err))
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case b := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Conn) readPump(ctx context.Context) {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, b, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).WithField("conn", c.id).Debug("read")
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(b, &in); err != nil {
			c.fail("", "malformed frame")
			continue
		}
		c.handle(ctx, in)
	}
}

func (c *Conn) handle(ctx context.Context, in inbound) {
	var data eventData
	if len(in.Data) > 0 {
		if err := json.Unmarshal(in.Data, &data); err != nil {
			c.fail(in.Event, "malformed event data")
			return
		}
	}

	switch in.Event {
	case EventUserJoin:
		// the user room was joined on connect
		if data.UserID != "" && data.UserID != c.userID {
			c.fail(in.Event, "cannot join the room of another user")
		}
		return
	case EventChatJoin, EventChatLeave, EventChatMessage, EventChatTyping, EventChatRead:
	default:
		c.fail(in.Event, "unknown event")
		return
	}

	chatID, err := primitive.ObjectIDFromHex(data.ChatID)
	if err != nil {
		c.fail(in.Event, "invalid chat id")
		return
	}
	room := ChatRoom(chatID)

	ctx, cancel := context.WithTimeout(ctx, eventTimeout)
	defer cancel()

	switch in.Event {
	case EventChatJoin:
		if err := c.hub.chat.Authorize(ctx, chatID, c.userID); err != nil {
			c.failWith(in.Event, err)
			return
		}
		c.hub.join(c, room)

	case EventChatLeave:
		c.hub.leave(c, room)
		c.hub.chat.ClearTyping(chatID, c.userID)

	case EventChatMessage:
		if _, err := c.hub.chat.Send(ctx, chatID, c.userID, data.Content); err != nil {
			c.failWith(in.Event, err)
		}

	case EventChatTyping:
		if !c.hub.inRoom(c, room) {
			c.fail(in.Event, "join the chat first")
			return
		}
		c.hub.chat.Typing(chatID, c.userID, data.IsTyping)

	case EventChatRead:
		if _, err := c.hub.chat.MarkRead(ctx, chatID, c.userID); err != nil {
			c.failWith(in.Event, err)
		}
	}
}

func parseChatRoom(room string) (primitive.ObjectID, bool) {
	if !strings.HasPrefix(room, "chat:") {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(strings.TrimPrefix(room, "chat:"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
