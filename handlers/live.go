package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
	"github.com/D13garg/ucs503p-202526odd-alpha/scanner"
)

// LiveFeed broadcasts scan session progress to websocket subscribers. It is
// the rendering side of the session observer: the decision loop stays
// headless and this feed is purely side-effecting.
type LiveFeed struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	log      *slog.Logger
}

func NewLiveFeed(allowedOrigins []string) *LiveFeed {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &LiveFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
		log:   slog.Default().With("component", "live"),
	}
}

// Handle upgrades the request and keeps the connection subscribed until the
// client goes away.
func (f *LiveFeed) Handle(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.log.Warn("websocket upgrade failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish WebSocket connection"})
		return
	}

	f.mu.Lock()
	f.conns[conn] = struct{}{}
	f.mu.Unlock()

	// Drain client messages until the connection drops.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.mu.Lock()
	delete(f.conns, conn)
	f.mu.Unlock()
	conn.Close()
}

func (f *LiveFeed) broadcast(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.conns {
		if err := conn.WriteJSON(v); err != nil {
			f.log.Debug("dropping live subscriber", "error", err)
			conn.Close()
			delete(f.conns, conn)
		}
	}
}

// OnFrame implements scanner.Observer.
func (f *LiveFeed) OnFrame(p scanner.Progress) {
	f.broadcast(gin.H{"type": "frame", "progress": p})
}

// OnOutcome implements scanner.Observer.
func (f *LiveFeed) OnOutcome(o models.ScanOutcome) {
	f.broadcast(gin.H{"type": "outcome", "outcome": o})
}
