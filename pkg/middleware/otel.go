package middleware

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/toastkit/pkg/toast"
)

// Default tracer name.
const defaultTracerName = "toastkit"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "toastkit").
	TracerName string

	// TracerProvider supplies the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// IncludeText adds title and message to spans. They may contain user
	// data, so this is disabled by default.
	IncludeText bool

	// Filter determines which toasts to trace. If nil, all are traced.
	Filter func(t *toast.Toast) bool

	// AttributeExtractor adds custom attributes when a span starts.
	AttributeExtractor func(t *toast.Toast) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeText enables recording title and message.
func WithIncludeText(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeText = include
	}
}

// WithToastFilter sets a filter function for toasts.
func WithToastFilter(filter func(t *toast.Toast) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(t *toast.Toast) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{TracerName: defaultTracerName}
}

// Tracer is a toast.Observer emitting one span per toast.
type Tracer struct {
	config OTelConfig
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[*toast.Toast]trace.Span
}

// OpenTelemetry returns an observer that traces toast lifecycles.
func OpenTelemetry(opts ...OTelOption) *Tracer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{
		config: config,
		tracer: tp.Tracer(config.TracerName),
		spans:  make(map[*toast.Toast]trace.Span),
	}
}

// PhaseChanged implements toast.Observer.
func (tr *Tracer) PhaseChanged(t *toast.Toast, from, to toast.Phase) {
	if tr.config.Filter != nil && !tr.config.Filter(t) {
		return
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	span, ok := tr.spans[t]
	if !ok {
		if from != toast.PhaseCreated {
			return
		}
		span = tr.start(t)
		tr.spans[t] = span
	}

	span.AddEvent("toast."+to.String(), trace.WithAttributes(
		attribute.String("toast.from", from.String()),
	))

	if to != toast.PhaseDisposed {
		return
	}
	if t.Severity() == toast.SeverityError {
		span.SetStatus(codes.Error, "error toast shown")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
	delete(tr.spans, t)
}

// SpanContext returns the span context of a toast still on screen.
func (tr *Tracer) SpanContext(t *toast.Toast) (trace.SpanContext, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	span, ok := tr.spans[t]
	if !ok {
		return trace.SpanContext{}, false
	}
	return span.SpanContext(), true
}

func (tr *Tracer) start(t *toast.Toast) trace.Span {
	attrs := []attribute.KeyValue{
		attribute.String("toast.severity", string(t.Severity())),
		attribute.String("toast.position", t.Position().String()),
		attribute.Bool("toast.persistent", t.Persistent()),
	}
	if !t.Persistent() {
		attrs = append(attrs, attribute.Int64("toast.duration_ms", t.Duration().Milliseconds()))
	}
	if tr.config.IncludeText {
		attrs = append(attrs,
			attribute.String("toast.title", t.Title()),
			attribute.String("toast.message", t.Message()))
	}
	if tr.config.AttributeExtractor != nil {
		attrs = append(attrs, tr.config.AttributeExtractor(t)...)
	}

	_, span := tr.tracer.Start(context.Background(), formatSpanName(t),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))
	return span
}

func formatSpanName(t *toast.Toast) string {
	return fmt.Sprintf("toast %s", severityLabel(t.Severity()))
}

var _ toast.Observer = (*Tracer)(nil)
