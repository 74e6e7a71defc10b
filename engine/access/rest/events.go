package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/engine/access/rest/models"
)

const (
	// WriteWait is the time allowed to write a message to the peer.
	WriteWait = 10 * time.Second
	// PongWait is the time allowed to read the next pong message from the peer.
	PongWait = 60 * time.Second
	// PingPeriod must be less than PongWait.
	PingPeriod = (PongWait * 9) / 10
)

// ErrMaxSubscriptionsReached is returned when the maximum number of active event streams is exceeded.
var ErrMaxSubscriptionsReached = errors.New("maximum number of subscriptions reached")

// EventStreamHandler streams the events of one contract over a websocket.
type EventStreamHandler struct {
	logger   zerolog.Logger
	backend  Backend
	upgrader websocket.Upgrader

	activeSubscriptions *atomic.Uint64
	maxSubscriptions    uint64
	eventsPerSecond     rate.Limit
}

func NewEventStreamHandler(logger zerolog.Logger, backend Backend, config Config) *EventStreamHandler {
	limit := rate.Inf
	if config.MaxEventsPerSecond > 0 {
		limit = rate.Limit(config.MaxEventsPerSecond)
	}
	return &EventStreamHandler{
		logger:  logger.With().Str("handler", "event_stream").Logger(),
		backend: backend,
		upgrader: websocket.Upgrader{
			// origins are enforced by the cors layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		activeSubscriptions: atomic.NewUint64(0),
		maxSubscriptions:    config.MaxEventSubscriptions,
		eventsPerSecond:     limit,
	}
}

func (h *EventStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With().Str("request_url", r.URL.String()).Logger()

	address, err := addressVar(r)
	if err != nil {
		errorHandler(w, models.NewBadRequestError(err), logger)
		return
	}

	if h.activeSubscriptions.Inc() > h.maxSubscriptions {
		h.activeSubscriptions.Dec()
		errorHandler(w, models.NewRestError(http.StatusServiceUnavailable, ErrMaxSubscriptionsReached.Error(), ErrMaxSubscriptionsReached), logger)
		return
	}
	defer h.activeSubscriptions.Dec()

	events, unsubscribe, err := h.backend.Subscribe(address)
	if err != nil {
		errorHandler(w, err, logger)
		return
	}
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	logger = logger.With().Str("contract", address.String()).Logger()
	logger.Debug().Msg("event stream opened")

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return h.readMessages(conn)
	})
	g.Go(func() error {
		defer conn.Close()
		return h.writeEvents(ctx, conn, events)
	})

	err = g.Wait()
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logger.Debug().Err(err).Msg("event stream terminated")
		return
	}
	logger.Debug().Msg("event stream closed")
}

// readMessages discards client messages and keeps the read deadline alive
// through pongs. It returns once the connection fails or is closed.
func (h *EventStreamHandler) readMessages(conn *websocket.Conn) error {
	if err := conn.SetReadDeadline(time.Now().Add(PongWait)); err != nil {
		return fmt.Errorf("failed to set the initial read deadline: %w", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return err
		}
	}
}

// writeEvents forwards events to the client and pings it periodically.
func (h *EventStreamHandler) writeEvents(ctx context.Context, conn *websocket.Conn, events <-chan types.Event) error {
	limiter := rate.NewLimiter(h.eventsPerSecond, 1)
	pingTicker := time.NewTicker(PingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pingTicker.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteWait))
			if err != nil {
				return fmt.Errorf("error sending ping: %w", err)
			}
		case event, ok := <-events:
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "subscription ended")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(WriteWait))
				return nil
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}

			var message models.Event
			message.Build(event)
			if err := conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
				return fmt.Errorf("failed to set the write deadline: %w", err)
			}
			if err := conn.WriteJSON(message); err != nil {
				return fmt.Errorf("failed to write event: %w", err)
			}
		}
	}
}
