package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// QuoteHandler is called for each odds update received from the stream
type QuoteHandler func(quote *models.OddsQuote) error

// streamMessage is the wire shape of one odds stream frame
type streamMessage struct {
	Op           string    `json:"op"`
	Subject      string    `json:"subject,omitempty"`
	MarketLine   float64   `json:"market_line,omitempty"`
	AmericanOdds int       `json:"american_odds,omitempty"`
	Sportsbook   string    `json:"sportsbook,omitempty"`
	ObservedAt   time.Time `json:"observed_at,omitempty"`
}

// StreamClient handles the WebSocket connection to the live odds stream
type StreamClient struct {
	conn            *websocket.Conn
	streamURL       string
	apiKey          string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []QuoteHandler
	lastMessageTime time.Time
	logger          *logrus.Logger
}

// NewStreamClient creates a new odds stream client
func NewStreamClient(streamURL, apiKey string, logger *logrus.Logger) *StreamClient {
	return &StreamClient{
		streamURL: streamURL,
		apiKey:    apiKey,
		handlers:  make([]QuoteHandler, 0),
		logger:    logger,
	}
}

// Connect establishes the WebSocket connection and starts the read loop
func (s *StreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to odds stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	s.logger.WithField("url", s.streamURL).Info("Connected to odds stream")

	go s.readMessages()

	return nil
}

// Subscribe requests quote updates for the given subjects
func (s *StreamClient) Subscribe(subjects []string) error {
	msg := map[string]interface{}{
		"op":       "subscribe",
		"api_key":  s.apiKey,
		"subjects": subjects,
	}

	s.logger.WithField("subjects", len(subjects)).Info("Subscribing to odds stream")
	return s.sendMessage(msg)
}

// AddHandler registers a quote handler
func (s *StreamClient) AddHandler(handler QuoteHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads frames from the WebSocket connection
func (s *StreamClient) readMessages() {
	defer s.Close()

	for {
		var msg streamMessage
		err := s.conn.ReadJSON(&msg)
		if err != nil {
			s.logger.WithError(err).Warn("Odds stream read failed")
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		if msg.Op != "quote" {
			continue
		}

		quote, err := models.NewOddsQuote(msg.Subject, msg.MarketLine, msg.AmericanOdds, msg.Sportsbook, msg.ObservedAt)
		if err != nil {
			s.logger.WithError(err).Warn("Dropping malformed stream quote")
			continue
		}

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(quote); err != nil {
				s.logger.WithError(err).Warn("Quote handler failed")
			}
		}
	}
}

// sendMessage sends a JSON message on the stream
func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received frame
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the stream connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.isConnected = false
	return s.conn.Close()
}

// MarshalSnapshot renders a quote as a stream frame, used by tests and the
// replay tooling.
func MarshalSnapshot(quote *models.OddsQuote) ([]byte, error) {
	return json.Marshal(streamMessage{
		Op:           "quote",
		Subject:      quote.Subject,
		MarketLine:   quote.MarketLine,
		AmericanOdds: quote.AmericanOdds,
		Sportsbook:   quote.Sportsbook,
		ObservedAt:   quote.ObservedAt,
	})
}
