package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/aditya-sb/livestreaming/internal/app"
	"github.com/aditya-sb/livestreaming/internal/config"
	"github.com/aditya-sb/livestreaming/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type WSController struct {
	Coord    *app.Coordinator
	Relay    *app.Relay
	Registry *app.Registry
	Cfg      *config.Config
}

func NewWSController(cfg *config.Config, coord *app.Coordinator, relay *app.Relay, reg *app.Registry) *WSController {
	return &WSController{Coord: coord, Relay: relay, Registry: reg, Cfg: cfg}
}

type wsPeer struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

// TrySend marshals v and queues it without blocking. A full send
// buffer means the client is too slow; the frame is refused rather
// than stalling the caller.
func (p *wsPeer) TrySend(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errors.New("connection closed")
	}
	select {
	case p.send <- b:
	default:
		return ErrBackpressure
	}
	return nil
}

func (p *wsPeer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.send)
	_ = p.conn.Close()
	p.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs the connection until it
// drops. The connection id is the only identity the signaling
// protocol knows.
func (ctl *WSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	connID := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(connID)).Msg("new WS connection")

	peer := &wsPeer{
		conn: ws,
		send: make(chan []byte, 32),
	}
	ws.SetReadLimit(ctl.Cfg.ReadLimit)

	ctl.Registry.Register(connID, peer)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, peer)
	go func() {
		defer cancel()
		ctl.readPump(ctx, connID, peer)
		ctl.Coord.HandleDisconnect(context.Background(), connID)
	}()
}
