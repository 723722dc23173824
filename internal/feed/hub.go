package feed

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type helloDTO struct {
	Viewer string `json:"viewer"`
}

type liveConn struct {
	id       string
	conn     *websocket.Conn
	sendTick *time.Ticker
	sent     uint64 // sequence of the last frame written
}

// Hub holds the latest frame and fans it out to every connected viewer.
type Hub struct {
	mu      sync.Mutex
	viewers map[string]*liveConn
	latest  Frame
	seq     uint64
	rate    time.Duration
}

// NewHub returns a hub that checks for new frames every rate.
func NewHub(rate time.Duration) *Hub {
	if rate <= 0 {
		rate = 100 * time.Millisecond
	}
	return &Hub{viewers: map[string]*liveConn{}, rate: rate}
}

// Publish replaces the latest frame. Viewers pick it up on their next tick.
func (h *Hub) Publish(f Frame) {
	h.mu.Lock()
	h.latest = f
	h.seq++
	h.mu.Unlock()
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

func (h *Hub) register(lc *liveConn) {
	h.mu.Lock()
	h.viewers[lc.id] = lc
	h.mu.Unlock()
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	delete(h.viewers, id)
	h.mu.Unlock()
}

// pending returns the latest frame if it is newer than seq.
func (h *Hub) pending(seq uint64) (Frame, uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seq == 0 || h.seq == seq {
		return Frame{}, seq, false
	}
	return h.latest, h.seq, true
}

// ServeWS upgrades the request and streams frames until the viewer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	lc := &liveConn{
		id:       uuid.New().String(),
		conn:     conn,
		sendTick: time.NewTicker(h.rate),
	}
	h.register(lc)
	log.Printf("viewer %s connected (%d online)", lc.id, h.Viewers())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Viewers only listen; reading detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(outbound{Type: "hello", Payload: helloDTO{Viewer: lc.id}}); err != nil {
		log.Printf("send hello error: %v", err)
		cancel()
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-lc.sendTick.C:
			f, seq, ok := h.pending(lc.sent)
			if !ok {
				continue
			}
			if err := conn.WriteJSON(outbound{Type: "decision", Payload: f}); err != nil {
				log.Printf("send json event error: %v", err)
				break loop
			}
			lc.sent = seq
		}
	}

	lc.sendTick.Stop()
	conn.Close()
	h.unregister(lc.id)
	log.Printf("viewer %s disconnected", lc.id)
}
