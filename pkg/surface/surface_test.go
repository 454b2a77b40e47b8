package surface_test

import (
	"bytes"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/toastkit/internal/errors"
	"github.com/vango-dev/toastkit/pkg/surface"
	"github.com/vango-dev/toastkit/pkg/toast"
	"github.com/vango-dev/toastkit/pkg/toasttest"
	"github.com/vango-dev/toastkit/pkg/vdom"
)

const ms = time.Millisecond

type recorder struct {
	mu      sync.Mutex
	batches [][]vdom.Patch
}

func (r *recorder) Patches(batch []vdom.Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
}

func (r *recorder) all() []vdom.Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []vdom.Patch
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func (r *recorder) find(op vdom.PatchOp, hid string) (vdom.Patch, bool) {
	for _, p := range r.all() {
		if p.Op != op {
			continue
		}
		if p.HID == hid || (p.Node != nil && p.Node.HID == hid) {
			return p, true
		}
	}
	return vdom.Patch{}, false
}

type fixture struct {
	clock *toasttest.Clock
	surf  *surface.Surface
	reg   *toast.Registry
	rec   *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock: toasttest.NewClock(),
		surf:  surface.New(),
		rec:   &recorder{},
	}
	f.reg = toast.NewRegistry(f.surf, toast.WithScheduler(f.clock))
	_, cancel, err := f.surf.Subscribe(f.rec)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	t.Cleanup(cancel)
	return f
}

func (f *fixture) html(t *testing.T) string {
	t.Helper()
	html, err := f.surf.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	return html
}

func TestSurfaceFollowsLifecycle(t *testing.T) {
	f := newFixture(t)
	f.reg.Success("Saved", "All changes stored", toast.WithDuration(3*time.Second))
	f.clock.Flush()

	html := f.html(t)
	for _, want := range []string{
		`<div data-hid="toast-top" aria-live="polite" class="toast-container top">`,
		`data-hid="t1" aria-live="polite" class="toast success" data-severity="success" role="status"`,
		`<div data-hid="t1-icon" class="toast-icon">✓</div>`,
		`<div data-hid="t1-title" class="toast-title">Saved</div>`,
		`style="width: 100%"`,
		`data-on-click="true">×</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("mounted markup missing %q:\n%s", want, html)
		}
	}

	f.clock.AdvanceTo(100 * ms)
	html = f.html(t)
	if !strings.Contains(html, `class="toast success show"`) {
		t.Errorf("entrance not committed:\n%s", html)
	}
	if !strings.Contains(html, "width: 0%; transition-duration: 3000ms") {
		t.Errorf("countdown not started:\n%s", html)
	}

	f.clock.AdvanceTo(3 * time.Second)
	if !strings.Contains(f.html(t), `class="toast success hide"`) {
		t.Errorf("exit not started:\n%s", f.html(t))
	}

	f.clock.AdvanceTo(3300 * ms)
	if strings.Contains(f.html(t), `data-hid="t1"`) {
		t.Errorf("node not unmounted:\n%s", f.html(t))
	}

	if _, ok := f.rec.find(vdom.PatchInsertNode, "t1"); !ok {
		t.Error("no insert patch for the toast")
	}
	if p, ok := f.rec.find(vdom.PatchSetAttr, "t1-progress"); !ok || p.Key != "style" {
		t.Errorf("countdown patch = %+v", p)
	}
	if _, ok := f.rec.find(vdom.PatchRemoveNode, "t1"); !ok {
		t.Error("no remove patch for the toast")
	}
}

func TestSurfaceEntrancePatchesOnlyTheClass(t *testing.T) {
	f := newFixture(t)
	f.reg.Info("t", "m", toast.Persistent())
	f.clock.Flush()
	before := len(f.rec.all())

	f.clock.AdvanceTo(100 * ms)
	got := f.rec.all()[before:]
	if len(got) != 1 {
		t.Fatalf("entrance produced %d patches: %+v", len(got), got)
	}
	if p := got[0]; p.Op != vdom.PatchSetAttr || p.HID != "t1" || p.Key != "class" || p.Value != "toast info show" {
		t.Errorf("patch = %+v", p)
	}
	if strings.Contains(f.html(t), "toast-progress") {
		t.Error("persistent toast rendered a countdown bar")
	}
}

func TestSurfaceEscapesText(t *testing.T) {
	f := newFixture(t)
	f.reg.Error(`<img src=x onerror="alert(1)">`, "<script>alert(2)</script>")
	f.clock.Flush()

	html := f.html(t)
	if strings.Contains(html, "<img") || strings.Contains(html, "<script>") {
		t.Fatalf("untrusted text rendered as markup:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;alert(2)&lt;/script&gt;") {
		t.Errorf("message not escaped:\n%s", html)
	}
	if !strings.Contains(html, `role="alert"`) {
		t.Error("error toasts should use the alert role")
	}
}

func TestSurfaceUnknownSeverityUsesInfoClass(t *testing.T) {
	f := newFixture(t)
	f.reg.Show("celebration", "Party", "now")
	f.clock.Flush()

	html := f.html(t)
	if !strings.Contains(html, `class="toast info"`) || !strings.Contains(html, `data-severity="celebration"`) {
		t.Errorf("unexpected markup:\n%s", html)
	}
	if !strings.Contains(html, `class="toast-icon">i</div>`) {
		t.Errorf("info icon missing:\n%s", html)
	}
}

func TestSurfaceTriggerClose(t *testing.T) {
	f := newFixture(t)
	tt := f.reg.Info("closable", "m", toast.Persistent(), toast.At(toast.Bottom))
	f.clock.AdvanceTo(500 * ms)

	if err := f.surf.Trigger("t1-close", "click"); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	f.clock.Flush()
	if tt.Phase() != toast.PhaseLeaving {
		t.Fatalf("phase = %s, want leaving", tt.Phase())
	}

	f.clock.AdvanceTo(800 * ms)
	if tt.Phase() != toast.PhaseDisposed {
		t.Fatalf("phase = %s, want disposed", tt.Phase())
	}

	err := f.surf.Trigger("t1-close", "click")
	if !stderrors.Is(err, errors.New("E202")) {
		t.Errorf("Trigger on an unmounted toast = %v, want E202", err)
	}
	if err := f.surf.Trigger("toast-bottom", "click"); err == nil {
		t.Error("Trigger on an element without handlers should fail")
	}
}

func TestSurfaceInstallsStylesheetOnce(t *testing.T) {
	f := newFixture(t)
	f.reg.Info("a", "m", toast.At(toast.Top))
	f.reg.Info("b", "m", toast.At(toast.Bottom))
	f.clock.Flush()
	f.surf.Install(toast.DefaultPresentation())

	html := f.html(t)
	if n := strings.Count(html, "<style"); n != 1 {
		t.Errorf("found %d stylesheets", n)
	}
	if strings.Index(html, "<style") > strings.Index(html, "toast-container") {
		t.Error("stylesheet must precede the containers")
	}
	if strings.Count(html, `class="toast-container`) != 2 {
		t.Errorf("expected two containers:\n%s", html)
	}
}

func TestSurfaceSubscribeSnapshot(t *testing.T) {
	f := newFixture(t)
	f.reg.Warning("before", "m", toast.Persistent())
	f.clock.Flush()

	late := &recorder{}
	snapshot, cancel, err := f.surf.Subscribe(late)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(snapshot, `data-hid="t1"`) {
		t.Errorf("snapshot missing existing toast:\n%s", snapshot)
	}

	f.clock.AdvanceTo(100 * ms)
	if len(late.all()) != 1 {
		t.Errorf("late subscriber got %d patches, want 1", len(late.all()))
	}

	cancel()
	cancel()
	f.reg.HideAll(toast.Top)
	f.clock.AdvanceTo(time.Second)
	if len(late.all()) != 1 {
		t.Error("cancelled subscriber still receives patches")
	}
}

func TestSurfaceWritePage(t *testing.T) {
	f := newFixture(t)
	f.reg.Info("hello", "world")
	f.clock.Flush()

	var buf bytes.Buffer
	if err := f.surf.WritePage(&buf, "Demo", "/* client */"); err != nil {
		t.Fatal(err)
	}
	page := buf.String()
	for _, want := range []string{"<title>Demo</title>", `data-hid="toast-root"`, "hello", "<script>/* client */</script>"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestStylesheet(t *testing.T) {
	p := toast.DefaultPresentation()
	p.Styles["odd;}name"] = toast.Style{Icon: "?", Accent: "red;}</style>"}
	css := surface.Stylesheet(p, 250*ms)

	for _, want := range []string{
		".toast.success { border-left-color: #28a745; }",
		".toast.error { border-left-color: #dc3545; }",
		".toast.warning { border-left-color: #ffc107; }",
		".toast.info { border-left-color: #17a2b8; }",
		".toast { transition-duration: 250ms; }",
		"@media (max-width: 480px)",
		"translateY(-120%)",
		".toast.oddname { border-left-color: red/style; }",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing %q", want)
		}
	}
	if strings.Contains(css, "</style>") {
		t.Error("accent escaped the style element")
	}
}
