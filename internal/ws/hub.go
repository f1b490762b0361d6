package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is the JSON frame pushed to clients.
type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type delivery struct {
	userID  uuid.UUID
	all     bool
	message []byte
}

// Hub tracks connected clients by user. All map mutation happens on the Run
// goroutine; ClientCount reads under the lock.
type Hub struct {
	clients    map[*Client]struct{}
	byUser     map[uuid.UUID]map[*Client]struct{}
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
	now        func() time.Time
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[uuid.UUID]map[*Client]struct{}),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			h.dropPending()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			set := h.byUser[client.userID]
			if set == nil {
				set = make(map[*Client]struct{})
				h.byUser[client.userID] = set
			}
			set[client] = struct{}{}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Printf("WS connected | user_id=%s total_clients=%d", client.userID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.remove(client)
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Printf("WS disconnected | user_id=%s total_clients=%d", client.userID, total)

		case d := <-h.deliver:
			h.mutex.Lock()
			var targets []*Client
			if d.all {
				targets = make([]*Client, 0, len(h.clients))
				for c := range h.clients {
					targets = append(targets, c)
				}
			} else {
				for c := range h.byUser[d.userID] {
					targets = append(targets, c)
				}
			}
			for _, c := range targets {
				select {
				case c.send <- d.message:
				default:
					// Slow consumer; drop it rather than block the hub.
					h.remove(c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// remove must be called with the lock held.
func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	if set := h.byUser[c.userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.userID)
		}
	}
	close(c.send)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		h.remove(c)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// dropPending closes clients whose registration was still queued when Run
// stopped.
func (h *Hub) dropPending() {
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(eventType string, payload any) {
	h.enqueue(delivery{all: true}, eventType, payload)
}

// SendToUser sends an event to every connection of one user. Users without
// a connection miss it; nothing is queued for later.
func (h *Hub) SendToUser(userID uuid.UUID, eventType string, payload any) {
	h.enqueue(delivery{userID: userID}, eventType, payload)
}

func (h *Hub) enqueue(d delivery, eventType string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Printf("WS event encode error | type=%s error=%v", eventType, err)
		return
	}
	d.message = b

	select {
	case h.deliver <- d:
	default:
		h.logger.Printf("WS event dropped | type=%s reason=buffer_full", eventType)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
