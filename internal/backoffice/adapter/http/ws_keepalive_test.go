package http

import (
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/shared/eventbus"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRecorder struct {
	recordingWriter
	mu    sync.Mutex
	pings int
	fail  bool
}

func (p *pingRecorder) WriteControl(messageType int, data []byte, deadline time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("connection reset")
	}
	if messageType == websocket.PingMessage {
		p.pings++
	}
	return nil
}

func (p *pingRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pings
}

func TestKeepAlive_PingsUntilDone(t *testing.T) {
	conn := &pingRecorder{}
	sub := &subscriber{conn: conn}
	done := make(chan struct{})
	result := make(chan error, 1)
	go func() { result <- keepAlive(sub, 5*time.Millisecond, done) }()

	require.Eventually(t, func() bool { return conn.count() >= 3 }, time.Second, 5*time.Millisecond)
	close(done)
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("keepAlive did not stop")
	}
}

func TestKeepAlive_ReturnsPingError(t *testing.T) {
	sub := &subscriber{conn: &pingRecorder{fail: true}}
	done := make(chan struct{})
	defer close(done)

	assert.ErrorContains(t, keepAlive(sub, time.Millisecond, done), "connection reset")
}

func TestSubscriber_PingSkipsWritersWithoutControlFrames(t *testing.T) {
	sub := &subscriber{conn: &recordingWriter{}}
	assert.NoError(t, sub.ping())
}

func startChangeStream(t *testing.T, feed *ChangeFeed, ping, pongWait time.Duration) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	NewWebSocketHandler(feed, quietLogger()).WithKeepAlive(ping, pongWait).RegisterRoutes(app)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "ws://" + ln.Addr().String() + "/ws/changes"
}

func TestWebSocketHandler_IdleClientThatAnswersPingsStaysSubscribed(t *testing.T) {
	feed := NewChangeFeed(quietLogger())
	url := startChangeStream(t, feed, 50*time.Millisecond, 200*time.Millisecond)

	client, _, err := fastws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	// Reading lets the client's default ping handler answer with pongs.
	received := make(chan WebSocketMessage, 4)
	go func() {
		for {
			var msg WebSocketMessage
			if err := client.ReadJSON(&msg); err != nil {
				close(received)
				return
			}
			received <- msg
		}
	}()

	select {
	case msg := <-received:
		assert.Equal(t, "connected", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("no connected message")
	}

	time.Sleep(800 * time.Millisecond)
	require.Equal(t, 1, feed.SubscriberCount())

	feed.Broadcast(model.ChangeEvent{Type: eventbus.EventTypeMockCreated, Timestamp: fixedTime})
	select {
	case msg, ok := <-received:
		require.True(t, ok, "connection closed before the change arrived")
		assert.Equal(t, "change", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("no change message")
	}
}

func TestWebSocketHandler_DropsClientThatNeverAnswersPings(t *testing.T) {
	feed := NewChangeFeed(quietLogger())
	url := startChangeStream(t, feed, 50*time.Millisecond, 200*time.Millisecond)

	client, _, err := fastws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return feed.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return feed.SubscriberCount() == 0 }, 2*time.Second, 20*time.Millisecond)
}
