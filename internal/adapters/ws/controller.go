package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/chatbees/server/internal/app"
	"github.com/chatbees/server/internal/core"
)

var upgrader = websocket.Upgrader{
	// TODO: restrict origins once the web client's deploy host is fixed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller upgrades HTTP requests to WebSocket connections and bridges
// them to the relay.
type Controller struct {
	relay   *app.Relay
	limiter *MessageRateLimiter

	readLimit  int64
	pingPeriod time.Duration
}

func NewController(relay *app.Relay, readLimit int64, pingPeriod time.Duration, msgLimit int, msgWindow time.Duration) *Controller {
	return &Controller{
		relay:      relay,
		limiter:    NewMessageRateLimiter(msgLimit, msgWindow),
		readLimit:  readLimit,
		pingPeriod: pingPeriod,
	}
}

// Handle accepts one client connection and runs its pumps. The read pump
// owns disconnect cleanup: relay teardown runs exactly once when the
// transport closes, whether or not the client ever announced.
func (ctl *Controller) Handle(ctx context.Context, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("ws upgrade")
		return
	}

	id := core.ConnID(uuid.NewString())
	log.Info().Str("module", "adapters.ws").Str("conn", string(id)).Msg("new WS connection")

	cc := newClientConn(id, conn)
	conn.SetReadLimit(ctl.readLimit)

	ctl.relay.Connect(cc)

	connCtx, cancel := context.WithCancel(ctx)
	go ctl.writePump(connCtx, cc)
	go ctl.readPump(connCtx, cancel, cc)
}
