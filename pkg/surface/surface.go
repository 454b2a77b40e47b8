package surface

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/vango-dev/toastkit/internal/errors"
	"github.com/vango-dev/toastkit/pkg/render"
	"github.com/vango-dev/toastkit/pkg/toast"
	"github.com/vango-dev/toastkit/pkg/vdom"
)

// Sink receives patch batches in the order they were produced. Patches is
// called with the surface locked and must not call back into it.
type Sink interface {
	Patches(batch []vdom.Patch)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(batch []vdom.Patch)

// Patches implements Sink.
func (f SinkFunc) Patches(batch []vdom.Patch) { f(batch) }

// Surface is a toast.Renderer backed by a vdom tree.
type Surface struct {
	config   Config
	logger   *slog.Logger
	renderer *render.Renderer

	mu         sync.Mutex
	root       *vdom.VNode
	containers map[toast.Position]*container
	sinks      map[uint64]Sink
	nextSink   uint64
	installed  bool
}

// New creates an empty surface.
func New(opts ...Option) *Surface {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Surface{
		config:     config,
		logger:     config.Logger.With("component", "surface"),
		renderer:   render.NewRenderer(render.RendererConfig{}),
		root:       vdom.Div(vdom.HID(config.RootID), vdom.Class("toast-root")),
		containers: make(map[toast.Position]*container, len(toast.Positions)),
		sinks:      make(map[uint64]Sink),
	}
}

// Install implements toast.Renderer. The stylesheet is inserted once; later
// calls are ignored.
func (s *Surface) Install(p toast.Presentation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.installed {
		return
	}
	s.installed = true

	style := vdom.StyleEl(Stylesheet(p, s.config.Transition),
		vdom.HID(s.config.RootID+"-style"),
		vdom.Key("style"))
	children := append([]*vdom.VNode{style}, s.root.Children...)
	s.replaceChildren(s.root, children)
}

// Container implements toast.Renderer.
func (s *Surface) Container(pos toast.Position) toast.Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.containers[pos]; ok {
		return c
	}

	hid := "toast-" + className(pos.String())
	c := &container{
		surface: s,
		vnode: vdom.Div(
			vdom.HID(hid),
			vdom.Key(hid),
			vdom.Class("toast-container", className(pos.String())),
			vdom.AriaLive("polite"),
		),
	}
	s.containers[pos] = c
	s.replaceChildren(s.root, append(s.root.Children[:len(s.root.Children):len(s.root.Children)], c.vnode))
	s.logger.Debug("container created", "position", pos)
	return c
}

// Subscribe registers sink and returns the current markup of the root. The
// sink receives every batch produced after the snapshot. cancel stops
// delivery.
func (s *Surface) Subscribe(sink Sink) (html string, cancel func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	html, err = s.renderer.RenderToString(s.root)
	if err != nil {
		return "", nil, errors.New("E301").Wrap(err)
	}
	s.nextSink++
	id := s.nextSink
	s.sinks[id] = sink

	var once sync.Once
	return html, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.sinks, id)
			s.mu.Unlock()
		})
	}, nil
}

// HTML renders the current root element.
func (s *Surface) HTML() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.RenderToString(s.root)
}

// WritePage renders a complete document holding the surface. script is
// inlined at the end of the body.
func (s *Surface) WritePage(w io.Writer, title, script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.RenderPage(w, render.PageData{
		Body:         s.root,
		Title:        title,
		ClientScript: script,
	})
}

// Trigger runs the handler bound to event on the element addressed by hid.
// The handler runs after the surface is unlocked.
func (s *Surface) Trigger(hid, event string) error {
	s.mu.Lock()
	var handler func()
	s.root.Walk(func(n *vdom.VNode) bool {
		if handler != nil {
			return false
		}
		if n.HID == hid {
			handler, _ = n.Handler(event)
		}
		return true
	})
	s.mu.Unlock()

	if handler == nil {
		return errors.New("E202").WithDetail(fmt.Sprintf("%s on %q", event, hid))
	}
	handler()
	return nil
}

// replaceChildren swaps parent's children and publishes the difference.
// Caller holds s.mu.
func (s *Surface) replaceChildren(parent *vdom.VNode, children []*vdom.VNode) {
	next := *parent
	next.Children = children
	patches := vdom.Diff(parent, &next)
	parent.Children = children
	s.emit(patches)
}

// emit delivers a batch to every sink. Caller holds s.mu.
func (s *Surface) emit(patches []vdom.Patch) {
	if len(patches) == 0 {
		return
	}
	for _, sink := range s.sinks {
		sink.Patches(patches)
	}
}

var _ toast.Renderer = (*Surface)(nil)
