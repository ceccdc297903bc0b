package polygon

import (
	"context"
	"encoding/json"
	"fmt"

	"IntraPull/internal/domain/models"
	drepo "IntraPull/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Stream is a WebSocket client for the provider's live minute-aggregate feed.
type Stream struct {
	apiKey string
	wsURL  string
	conn   *websocket.Conn
}

// NewStream creates a live aggregate stream client.
func NewStream(apiKey, wsURL string) drepo.BarStream {
	return &Stream{apiKey: apiKey, wsURL: wsURL}
}

// Connect dials the feed and authenticates.
func (s *Stream) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return fmt.Errorf("stream connect: %w", err)
	}
	s.conn = conn

	auth := map[string]string{"action": "auth", "params": s.apiKey}
	if err := conn.WriteJSON(auth); err != nil {
		return fmt.Errorf("stream auth: %w", err)
	}
	return nil
}

// Subscribe subscribes to minute aggregates for the given symbols.
func (s *Stream) Subscribe(ctx context.Context, symbols []string) error {
	if s.conn == nil {
		return fmt.Errorf("stream not connected")
	}
	for _, sym := range symbols {
		msg := map[string]string{"action": "subscribe", "params": "AM." + sym}
		if err := s.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", sym, err)
		}
	}
	return nil
}

type wsAggregate struct {
	Event     string  `json:"ev"`
	Symbol    string  `json:"sym"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	StartTime int64   `json:"s"` // ms epoch of the aggregate window start
}

// Read streams live minute bars and errors. Both channels close when the
// context ends or the connection drops.
func (s *Stream) Read(ctx context.Context) (<-chan *models.LiveBar, <-chan error) {
	bars := make(chan *models.LiveBar, 256)
	errs := make(chan error, 1)

	go func() {
		defer close(bars)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if s.conn == nil {
				errs <- fmt.Errorf("stream conn nil")
				return
			}
			_, raw, err := s.conn.ReadMessage()
			if err != nil {
				errs <- fmt.Errorf("stream read: %w", err)
				return
			}

			var events []wsAggregate
			if err := json.Unmarshal(raw, &events); err != nil {
				// status and auth frames are not aggregate arrays
				continue
			}
			for _, ev := range events {
				if ev.Event != "AM" {
					continue
				}
				live := &models.LiveBar{
					Symbol: ev.Symbol,
					Bar: models.Bar{
						Timestamp: ev.StartTime,
						Open:      ev.Open,
						High:      ev.High,
						Low:       ev.Low,
						Close:     ev.Close,
						Volume:    int64(ev.Volume),
					},
				}
				select {
				case bars <- live:
				default:
					// drop on backpressure
				}
			}
		}
	}()

	return bars, errs
}

// Close closes the WebSocket connection.
func (s *Stream) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
