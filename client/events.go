package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verichain/verichain/engine/access/rest/models"
	"github.com/verichain/verichain/model/product"
)

// Subscription is a stream of events applied to one contract.
type Subscription struct {
	events chan models.Event
	err    error
	done   chan struct{}
}

// Events returns the channel of received events. It is closed when the
// stream ends.
func (s *Subscription) Events() <-chan models.Event {
	return s.events
}

// Err returns the error that ended the stream. It must only be called after
// the events channel was closed.
func (s *Subscription) Err() error {
	<-s.done
	return s.err
}

// Subscribe streams the events of the contract at address until ctx is
// cancelled or the server closes the stream.
func (c *Client) Subscribe(ctx context.Context, address product.Address) (*Subscription, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, "v1", "contracts", address.String(), "events")
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			return nil, fmt.Errorf("could not subscribe to events: %w", statusError(resp.StatusCode, body))
		}
		return nil, fmt.Errorf("could not subscribe to events: %w", err)
	}

	sub := &Subscription{
		events: make(chan models.Event),
		done:   make(chan struct{}),
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()

	go func() {
		defer close(sub.done)
		defer close(sub.events)
		defer close(stop)
		defer conn.Close()

		for {
			var event models.Event
			err := conn.ReadJSON(&event)
			if err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					sub.err = fmt.Errorf("event stream failed: %w", err)
				}
				return
			}
			select {
			case sub.events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	c.log.Debug().Str("contract", address.String()).Msg("subscribed to events")
	return sub, nil
}

var errStreamClosed = errors.New("event stream closed")

// Next blocks until the next event is received.
func (s *Subscription) Next(ctx context.Context) (models.Event, error) {
	select {
	case event, ok := <-s.events:
		if !ok {
			if err := s.Err(); err != nil {
				return models.Event{}, err
			}
			return models.Event{}, errStreamClosed
		}
		return event, nil
	case <-ctx.Done():
		return models.Event{}, ctx.Err()
	}
}

// IsStreamClosed returns true if the server ended the stream.
func IsStreamClosed(err error) bool {
	return errors.Is(err, errStreamClosed)
}
