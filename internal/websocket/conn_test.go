package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	gws "github.com/gorilla/websocket"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// The unlock stream answers pings from its reader goroutine while the
// pubsub loop pushes unlock events, so both writers race over one
// connection. Every frame must still arrive intact.
func TestConnSerializesConcurrentWriters(t *testing.T) {
	const perWriter = 100

	upgrader := gws.Upgrader{}
	serverDone := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(serverDone)

		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conn := Wrap(raw)
		defer conn.Close()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if err := conn.WriteTyped(PongResponse{Event: EventPong}); err != nil {
					t.Errorf("write pong: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				unlock := model.UnlockEvent{AchievementID: "EXAM_COUNT"}
				if err := conn.WriteTyped(UnlockResponse{Event: EventUnlock, Unlock: unlock}); err != nil {
					t.Errorf("write unlock: %v", err)
					return
				}
			}
		}()
		wg.Wait()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := gws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	counts := map[Event]int{}
	for i := 0; i < 2*perWriter; i++ {
		var msg struct {
			Event Event `json:"event"`
		}
		if err := client.ReadJSON(&msg); err != nil {
			t.Fatalf("frame %d unreadable: %v", i, err)
		}
		counts[msg.Event]++
	}
	<-serverDone

	if counts[EventPong] != perWriter {
		t.Errorf("pong frames = %d, want %d", counts[EventPong], perWriter)
	}
	if counts[EventUnlock] != perWriter {
		t.Errorf("unlock frames = %d, want %d", counts[EventUnlock], perWriter)
	}
}

func TestConnWriteError(t *testing.T) {
	upgrader := gws.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conn := Wrap(raw)
		defer conn.Close()
		if err := conn.WriteError("round not found"); err != nil {
			t.Errorf("write error frame: %v", err)
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := gws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	var msg ErrorResponse
	if err := client.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Event != EventError || msg.Error != "round not found" {
		t.Errorf("got %+v, want error event with message", msg)
	}
}
