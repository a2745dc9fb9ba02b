package presence

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 64
)

var log = logrus.WithField("prefix", "presence")

// Hub tracks live connections and the rooms they joined
type Hub struct {
	sync.RWMutex

	rooms map[string]map[*Conn]struct{}
	conns map[*Conn]struct{}

	chat     ChatHandler
	upgrader websocket.Upgrader
}

// NewHub creates a hub. Connections are accepted from the given origins, or
// from any origin when none is given.
func NewHub(chat ChatHandler, origins []string) *Hub {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return &Hub{
		rooms: make(map[string]map[*Conn]struct{}),
		conns: make(map[*Conn]struct{}),
		chat:  chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || allowed["*"] || origin == "" || allowed[origin]
			},
		},
	}
}

// SetChatHandler sets the handler of inbound chat events. Call before
// serving connections.
func (h *Hub) SetChatHandler(chat ChatHandler) {
	h.chat = chat
}

// Serve upgrades an authenticated request and serves the connection until
// it closes. The connection joins the user room of userID right away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &Conn{
		id:     uuid.New().String(),
		userID: userID,
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		rooms:  make(map[string]struct{}),
		hub:    h,
	}

	h.register(c)
	log.WithField("conn", c.id).WithField("user", userID).Debug("connected")

	go c.writePump()
	c.readPump(r.Context())

	h.unregister(c)
	log.WithField("conn", c.id).WithField("user", userID).Debug("disconnected")
	return nil
}

// Publish queues an event for every member of room. The lock is held only
// to snapshot the members.
func (h *Hub) Publish(room, event string, data interface{}) {
	b, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		log.WithError(err).WithField("event", event).Error("encode event")
		return
	}

	h.RLock()
	members := make([]*Conn, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.RUnlock()

	for _, c := range members {
		c.enqueue(b, event)
	}
}

// Members returns how many connections are in room
func (h *Hub) Members(room string) int {
	h.RLock()
	defer h.RUnlock()
	return len(h.rooms[room])
}

// Close disconnects every connection
func (h *Hub) Close() {
	h.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.RUnlock()

	for _, c := range conns {
		c.ws.Close()
	}
}

func (h *Hub) register(c *Conn) {
	h.Lock()
	defer h.Unlock()

	h.conns[c] = struct{}{}
	h.joinLocked(c, UserRoom(c.userID))
}

// unregister drops the connection from every room and clears its typing
// state in the chats it had joined
func (h *Hub) unregister(c *Conn) {
	h.Lock()
	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
		h.leaveLocked(c, room)
	}
	delete(h.conns, c)
	h.Unlock()

	close(c.done)

	for _, room := range rooms {
		if id, ok := parseChatRoom(room); ok {
			h.chat.ClearTyping(id, c.userID)
		}
	}
}

func (h *Hub) join(c *Conn, room string) {
	h.Lock()
	defer h.Unlock()
	h.joinLocked(c, room)
}

func (h *Hub) leave(c *Conn, room string) {
	h.Lock()
	defer h.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) inRoom(c *Conn, room string) bool {
	h.RLock()
	defer h.RUnlock()
	_, ok := c.rooms[room]
	return ok
}

func (h *Hub) joinLocked(c *Conn, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Conn]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) leaveLocked(c *Conn, room string) {
	delete(c.rooms, room)
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}
