package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/decker502/pigfarm/pkg/game"
	"github.com/gorilla/websocket"
)

// waitFor 轮询直到条件成立或超时
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// startHub 启动 Hub 和测试服务器
func startHub(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsSnapshot(t *testing.T) {
	hub, srv, _ := startHub(t)
	conn := dial(t, srv)
	waitFor(t, "spectator registration", func() bool { return hub.ClientCount() == 1 })

	world := game.NewSession()
	world.Debit(10)
	hub.Publish(world.Snapshot())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var got game.WorldSnapshot
	if err := json.Unmarshal(message, &got); err != nil {
		t.Fatalf("Unmarshal %q: %v", message, err)
	}
	if got.Balance != 90 {
		t.Errorf("balance = %v, want 90", got.Balance)
	}
	if len(got.Players) != 1 {
		t.Errorf("players = %d, want 1", len(got.Players))
	}
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub, srv, _ := startHub(t)
	conn := dial(t, srv)
	waitFor(t, "spectator registration", func() bool { return hub.ClientCount() == 1 })

	conn.Close()
	waitFor(t, "spectator removal", func() bool { return hub.ClientCount() == 0 })
}

func TestHubShutdownClosesSpectators(t *testing.T) {
	hub, srv, cancel := startHub(t)
	conn := dial(t, srv)
	waitFor(t, "spectator registration", func() bool { return hub.ClientCount() == 1 })

	cancel()
	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection should be closed after shutdown")
	}
}

// TestPublishNeverBlocks 没有 Run 消费时 Publish 也不能阻塞帧循环
func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	snap := game.NewSession().Snapshot()

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastQueueSize+10; i++ {
			hub.Publish(snap)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
	if hub.Dropped() != 10 {
		t.Errorf("Dropped() = %d, want 10", hub.Dropped())
	}
}

func TestHealthz(t *testing.T) {
	_, srv, _ := startHub(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(body) != "ok 0\n" {
		t.Errorf("body = %q", body)
	}
}
