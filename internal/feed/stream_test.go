package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestStreamClientReceivesQuotes(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		quote, err := models.NewOddsQuote("Josh Allen", 1.5, -140, "draftkings", time.Now().UTC())
		require.NoError(t, err)

		frame, err := MarshalSnapshot(quote)
		require.NoError(t, err)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))

		// Heartbeat frames without an op must be ignored by the client.
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"op":"heartbeat"}`)))

		// Hold the connection open until the client disconnects.
		conn.ReadMessage()
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client := NewStreamClient(wsURL, "test-key", quietLogger())

	var mu sync.Mutex
	var received []*models.OddsQuote
	client.AddHandler(func(quote *models.OddsQuote) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, quote)
		return nil
	})

	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	assert.True(t, client.IsConnected())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "Josh Allen", received[0].Subject)
	assert.Equal(t, -140, received[0].AmericanOdds)
	assert.Equal(t, "draftkings", received[0].Sportsbook)
}

func TestStreamClientSubscribeRequiresConnection(t *testing.T) {
	client := NewStreamClient("ws://localhost:0", "test-key", quietLogger())
	err := client.Subscribe([]string{"Josh Allen"})
	assert.Error(t, err)
}

func TestStreamClientDropsMalformedQuote(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		// Zero american odds never construct a valid quote.
		require.NoError(t, conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"op":"quote","subject":"Josh Allen","american_odds":0,"sportsbook":"fanduel","observed_at":"2025-09-21T17:00:00Z"}`)))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"op":"quote","subject":"Josh Allen","american_odds":120,"sportsbook":"fanduel","observed_at":"2025-09-21T17:00:00Z"}`)))

		conn.ReadMessage()
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client := NewStreamClient(wsURL, "test-key", quietLogger())

	var mu sync.Mutex
	var received []*models.OddsQuote
	client.AddHandler(func(quote *models.OddsQuote) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, quote)
		return nil
	})

	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 120, received[0].AmericanOdds)
}
