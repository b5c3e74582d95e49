package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/gapsim/internal/playback"
	"github.com/san-kum/gapsim/internal/scene"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// Message is what subscribers receive. A sync message carries the full
// glyph set at its targets; a frame message carries one plan.
type Message struct {
	Type       string         `json:"type"`
	Frame      int            `json:"frame"`
	Year       int            `json:"year"`
	Transition int64          `json:"transition_ms"`
	Ease       string         `json:"ease,omitempty"`
	Remove     []string       `json:"remove,omitempty"`
	Create     []scene.Change `json:"create,omitempty"`
	Update     []scene.Change `json:"update,omitempty"`
	Glyphs     []scene.Change `json:"glyphs,omitempty"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteMessage sends a websocket message guarded by the subscriber's mutex and write deadline.
func (s *subscriber) WriteMessage(messageType int, data []byte) error {
	if s == nil || s.conn == nil {
		return errors.New("subscriber closed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(messageType, data)
}

func (s *subscriber) writeLocked(messageType int, data []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(messageType, data)
}

// Hub fans playback frames out to websocket subscribers. It keeps its own
// mirror of the glyph targets, built from the plans it sees, so that late
// subscribers can be synced without touching the scene.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	mirror      map[string]scene.Change
	frame       int
	year        int
	transition  time.Duration
	ease        string
	upgrader    websocket.Upgrader
	logger      *zap.Logger

	nextID atomic.Uint64
	sent   atomic.Uint64
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithEase names the easing browsers apply to each transition. Clients
// fall back to linear for names they do not know.
func WithEase(name string) HubOption {
	return func(h *Hub) { h.ease = name }
}

func NewHub(logger *zap.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		subscribers: make(map[uint64]*subscriber),
		mirror:      make(map[string]scene.Change),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnFrame applies the frame's plan to the mirror and broadcasts it.
func (h *Hub) OnFrame(f playback.Frame) {
	h.mu.Lock()
	for _, id := range f.Plan.Remove {
		delete(h.mirror, id)
	}
	for _, c := range f.Plan.Create {
		h.mirror[c.ID] = c
	}
	for _, c := range f.Plan.Update {
		h.mirror[c.ID] = c
	}
	h.frame, h.year, h.transition = f.Index, f.Year, f.Plan.Transition
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	data, err := json.Marshal(Message{
		Type:       "frame",
		Frame:      f.Index,
		Year:       f.Year,
		Transition: f.Plan.Transition.Milliseconds(),
		Ease:       h.ease,
		Remove:     f.Plan.Remove,
		Create:     f.Plan.Create,
		Update:     f.Plan.Update,
	})
	if err != nil {
		h.logger.Error("failed to marshal frame", zap.Error(err))
		return
	}

	for id, sub := range subs {
		if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("dropping subscriber", zap.Uint64("id", id), zap.Error(err))
			h.Disconnect(id)
			continue
		}
		h.sent.Add(1)
	}
}

// syncLocked describes the mirror. Callers hold h.mu.
func (h *Hub) syncLocked() Message {
	glyphs := make([]scene.Change, 0, len(h.mirror))
	for _, c := range h.mirror {
		glyphs = append(glyphs, scene.Change{ID: c.ID, Fill: c.Fill, From: c.To, To: c.To})
	}
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i].ID < glyphs[j].ID })
	return Message{
		Type:       "sync",
		Frame:      h.frame,
		Year:       h.year,
		Transition: h.transition.Milliseconds(),
		Ease:       h.ease,
		Glyphs:     glyphs,
	}
}

// Subscribe registers conn and sends it a sync message before any frame.
func (h *Hub) Subscribe(conn *websocket.Conn) (uint64, error) {
	sub := &subscriber{conn: conn}
	sub.mu.Lock()
	defer sub.mu.Unlock()

	h.mu.Lock()
	id := h.nextID.Add(1)
	h.subscribers[id] = sub
	msg := h.syncLocked()
	h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		h.Disconnect(id)
		return 0, err
	}
	if err := sub.writeLocked(websocket.TextMessage, data); err != nil {
		h.Disconnect(id)
		return 0, err
	}
	return id, nil
}

// Disconnect removes and closes a subscriber.
func (h *Hub) Disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Sent is the number of frame messages delivered.
func (h *Hub) Sent() uint64 { return h.sent.Load() }

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	ids := make([]uint64, 0, len(h.subscribers))
	for id := range h.subscribers {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	for _, id := range ids {
		h.Disconnect(id)
	}
}

// ServeWS upgrades the request and holds the connection until the client
// goes away. Client messages are ignored.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id, err := h.Subscribe(conn)
	if err != nil {
		h.logger.Warn("subscribe failed", zap.Error(err))
		return
	}
	h.logger.Info("subscriber joined", zap.Uint64("id", id), zap.String("remote", r.RemoteAddr))

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.Disconnect(id)
	h.logger.Info("subscriber left", zap.Uint64("id", id))
}
