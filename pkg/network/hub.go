package network

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cbodonnell/tycoon/pkg/log"
	"nhooyr.io/websocket"
)

const DefaultWriteTimeout = 5 * time.Second

// Hub fans game updates out to websocket viewers grouped by game id.
type Hub struct {
	lock           sync.RWMutex
	viewers        map[string]map[*websocket.Conn]struct{}
	writeTimeout   time.Duration
	originPatterns []string
}

type NewHubOptions struct {
	WriteTimeout time.Duration
	// OriginPatterns lists the host patterns allowed to open a viewer
	// connection from another origin. "*" allows every origin.
	OriginPatterns []string
}

func NewHub(opts NewHubOptions) *Hub {
	h := &Hub{
		viewers:        make(map[string]map[*websocket.Conn]struct{}),
		writeTimeout:   opts.WriteTimeout,
		originPatterns: opts.OriginPatterns,
	}
	if h.writeTimeout <= 0 {
		h.writeTimeout = DefaultWriteTimeout
	}
	return h
}

// ServeGame upgrades the request and keeps the connection subscribed to
// gameID until the viewer goes away. initial, if set, is sent first.
func (h *Hub) ServeGame(w http.ResponseWriter, r *http.Request, gameID string, initial []byte) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		return fmt.Errorf("failed to accept websocket: %v", err)
	}
	defer conn.CloseNow()
	log.Debug("New viewer for game %s from %s", gameID, r.RemoteAddr)

	// viewers only listen; CloseRead handles control frames and reports the close
	ctx := conn.CloseRead(r.Context())

	// subscribe before the initial write so no stored change is missed;
	// viewers order frames by version
	h.add(gameID, conn)
	defer h.remove(gameID, conn)

	if initial != nil {
		if err := h.write(ctx, conn, initial); err != nil {
			return err
		}
	}

	<-ctx.Done()
	log.Trace("Viewer for game %s disconnected", gameID)
	return nil
}

// Broadcast sends payload to every viewer of gameID. Viewers whose write
// fails are dropped.
func (h *Hub) Broadcast(ctx context.Context, gameID string, payload []byte) {
	h.lock.RLock()
	conns := make([]*websocket.Conn, 0, len(h.viewers[gameID]))
	for conn := range h.viewers[gameID] {
		conns = append(conns, conn)
	}
	h.lock.RUnlock()

	for _, conn := range conns {
		if err := h.write(ctx, conn, payload); err != nil {
			log.Warn("Dropping viewer of game %s: %v", gameID, err)
			h.remove(gameID, conn)
			conn.Close(websocket.StatusGoingAway, "write failed")
		}
	}
}

// Viewers returns the number of connections watching gameID.
func (h *Hub) Viewers(gameID string) int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.viewers[gameID])
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()
	for gameID, conns := range h.viewers {
		for conn := range conns {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		delete(h.viewers, gameID)
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
		return fmt.Errorf("failed to write to websocket: %v", err)
	}
	return nil
}

func (h *Hub) add(gameID string, conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.viewers[gameID] == nil {
		h.viewers[gameID] = make(map[*websocket.Conn]struct{})
	}
	h.viewers[gameID][conn] = struct{}{}
}

func (h *Hub) remove(gameID string, conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.viewers[gameID], conn)
	if len(h.viewers[gameID]) == 0 {
		delete(h.viewers, gameID)
	}
}
