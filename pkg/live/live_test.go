package live_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/toastkit/internal/errors"
	"github.com/vango-dev/toastkit/pkg/live"
	"github.com/vango-dev/toastkit/pkg/render"
	"github.com/vango-dev/toastkit/pkg/surface"
	"github.com/vango-dev/toastkit/pkg/toast"
	"github.com/vango-dev/toastkit/pkg/vdom"
)

const ms = time.Millisecond

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type env struct {
	surf   *surface.Surface
	reg    *toast.Registry
	hub    *live.Hub
	server *httptest.Server
	logs   *syncBuffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logs := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := &env{logs: logs, surf: surface.New(surface.WithLogger(logger))}
	e.reg = toast.NewRegistry(e.surf,
		toast.WithLogger(logger),
		toast.WithTiming(toast.Timing{EnterDelay: 5 * ms, TransitionDuration: 10 * ms}))
	e.hub = live.NewHub(e.surf, live.WithLogger(logger))
	e.server = httptest.NewServer(live.NewRouter(e.hub, "Toasts"))
	t.Cleanup(func() {
		e.hub.Close()
		e.server.Close()
		e.reg.Close()
	})
	return e
}

func (e *env) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + live.WebSocketPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) live.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg live.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

// waitFrame reads until a frame satisfies match.
func waitFrame(t *testing.T, conn *websocket.Conn, match func(live.Frame) bool) live.Frame {
	t.Helper()
	for {
		msg := read(t, conn)
		for _, f := range msg.Patches {
			if match(f) {
				return f
			}
		}
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * ms)
	}
}

func TestHubMirrorsSurface(t *testing.T) {
	e := newEnv(t)
	conn := e.dial(t)

	reset := read(t, conn)
	if reset.Type != live.MessageReset || !strings.Contains(reset.HTML, `data-hid="toast-root"`) {
		t.Fatalf("first message = %+v", reset)
	}

	tt := e.reg.Info("Hello <b>", "from the server", toast.Persistent())

	insert := waitFrame(t, conn, func(f live.Frame) bool {
		return f.Op == "insert" && strings.Contains(f.HTML, `data-hid="t1"`)
	})
	if insert.Parent != "toast-top" {
		t.Errorf("toast inserted into %q", insert.Parent)
	}
	if !strings.Contains(insert.HTML, "Hello &lt;b&gt;") {
		t.Errorf("title not escaped on the wire: %s", insert.HTML)
	}

	waitFrame(t, conn, func(f live.Frame) bool {
		return f.Op == "attr" && f.HID == "t1" && f.Value == "toast info show"
	})

	click := live.ClientMessage{Type: live.MessageEvent, HID: "t1-close", Event: "click"}
	if err := conn.WriteJSON(click); err != nil {
		t.Fatal(err)
	}

	select {
	case <-tt.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("click did not dismiss the toast (phase %s)", tt.Phase())
	}
	waitFrame(t, conn, func(f live.Frame) bool {
		return f.Op == "remove" && f.HID == "t1"
	})
}

func TestHubSequencesBatches(t *testing.T) {
	e := newEnv(t)
	conn := e.dial(t)
	read(t, conn)

	e.reg.Success("a", "m", toast.Persistent())
	var last uint64
	for i := 0; i < 3; i++ {
		msg := read(t, conn)
		if msg.Type != live.MessagePatches {
			t.Fatalf("message %d type = %s", i, msg.Type)
		}
		if msg.Seq != last+1 {
			t.Fatalf("seq = %d after %d", msg.Seq, last)
		}
		last = msg.Seq
	}
}

func TestHubLateClientGetsCurrentState(t *testing.T) {
	e := newEnv(t)
	tt := e.reg.Warning("already here", "m", toast.Persistent(), toast.At(toast.Bottom))
	eventually(t, "toast to be visible", func() bool { return tt.Phase() == toast.PhaseVisible })

	conn := e.dial(t)
	reset := read(t, conn)
	for _, want := range []string{`data-hid="toast-bottom"`, "already here", "toast warning show"} {
		if !strings.Contains(reset.HTML, want) {
			t.Errorf("snapshot missing %q", want)
		}
	}
}

func TestHubIgnoresBadClientMessages(t *testing.T) {
	e := newEnv(t)
	conn := e.dial(t)
	read(t, conn)

	conn.WriteMessage(websocket.TextMessage, []byte("not json"))
	conn.WriteJSON(live.ClientMessage{Type: live.MessageEvent, HID: "missing", Event: "click"})

	eventually(t, "malformed message log", func() bool {
		return strings.Contains(e.logs.String(), "malformed client message")
	})
	eventually(t, "dropped event log", func() bool {
		return strings.Contains(e.logs.String(), "event dropped")
	})
	if e.hub.ClientCount() != 1 {
		t.Errorf("bad messages disconnected the client")
	}
	for _, want := range []string{"error.code=E201", "error.code=E202", "error.hint="} {
		if !strings.Contains(e.logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, e.logs.String())
		}
	}
}

func TestHubClose(t *testing.T) {
	e := newEnv(t)
	conn := e.dial(t)
	read(t, conn)
	eventually(t, "client registration", func() bool { return e.hub.ClientCount() == 1 })

	if err := e.hub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("read after Close = %v, want going away", err)
	}
	eventually(t, "client removal", func() bool { return e.hub.ClientCount() == 0 })
}

func TestRouterServesPage(t *testing.T) {
	e := newEnv(t)
	e.reg.Info("server side", "rendered")
	eventually(t, "mount", func() bool {
		html, _ := e.surf.HTML()
		return strings.Contains(html, "server side")
	})

	resp, err := http.Get(e.server.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body bytes.Buffer
	body.ReadFrom(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{"<title>Toasts</title>", "server side", live.WebSocketPath} {
		if !strings.Contains(body.String(), want) {
			t.Errorf("page missing %q", want)
		}
	}

	health, err := http.Get(e.server.URL + "/_toast/health")
	if err != nil {
		t.Fatal(err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", health.StatusCode)
	}
}

func TestEncodeFrames(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{})
	frames, err := live.EncodeFrames(r, []vdom.Patch{
		{Op: vdom.PatchInsertNode, ParentID: "p", Index: 0, Node: vdom.Div(vdom.HID("x"), vdom.Text("<i>"))},
		{Op: vdom.PatchSetAttr, HID: "x", Key: "class", Value: "toast show"},
		{Op: vdom.PatchRemoveNode, HID: "x"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []live.Frame{
		{Op: "insert", Parent: "p", HTML: `<div data-hid="x">&lt;i&gt;</div>`},
		{Op: "attr", HID: "x", Key: "class", Value: "toast show"},
		{Op: "remove", HID: "x"},
	}
	if len(frames) != len(want) {
		t.Fatalf("got %d frames", len(frames))
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d = %+v, want %+v", i, frames[i], want[i])
		}
	}

	data, _ := json.Marshal(frames[2])
	if !strings.Contains(string(data), `"index":0`) {
		t.Errorf("index must always be present: %s", data)
	}

	_, err = live.EncodeFrames(r, []vdom.Patch{{Op: vdom.PatchOp(0xEE)}})
	if !stderrors.Is(err, errors.New("E301")) {
		t.Errorf("unknown op error = %v, want E301", err)
	}
}

func TestDecodeClientMessage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", `{"type":"event","hid":"t1-close","event":"click"}`, false},
		{"not json", `{`, true},
		{"wrong type", `{"type":"ping","hid":"a","event":"click"}`, true},
		{"missing hid", `{"type":"event","event":"click"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := live.DecodeClientMessage([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !stderrors.Is(err, errors.New("E201")) {
				t.Errorf("err = %v, want E201", err)
			}
			if err == nil && msg.HID != "t1-close" {
				t.Errorf("HID = %q", msg.HID)
			}
		})
	}
}
