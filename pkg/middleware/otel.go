package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/store"
)

const defaultTracerName = "newtab"

// Span attribute keys.
const (
	AttrActionType     = attribute.Key("newtab.action.type")
	AttrActionData     = attribute.Key("newtab.action.data")
	AttrUserEvent      = attribute.Key("newtab.user_event.event")
	AttrPage           = attribute.Key("newtab.user_event.page")
	AttrSource         = attribute.Key("newtab.user_event.source")
	AttrActionPosition = attribute.Key("newtab.user_event.action_position")
	AttrExperimentID   = attribute.Key("newtab.experiment_id")
)

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "newtab").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// IncludeData records string payloads (URLs, bookmark GUIDs).
	// May contain browsing history - disabled by default.
	IncludeData bool

	// Filter determines which actions to trace.
	// If nil, all actions are traced.
	Filter func(a actions.Action) bool

	// AttributeExtractor adds custom attributes per action.
	AttributeExtractor func(a actions.Action) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
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

// WithIncludeData enables recording string payloads on spans.
func WithIncludeData(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeData = include
	}
}

// WithActionFilter sets a filter function for actions.
func WithActionFilter(filter func(a actions.Action) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(a actions.Action) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates store middleware that traces every dispatch.
//
// Each span carries the action type; user-events also carry the event
// kind, analytics context and the experiment id when one was active.
// Reducer errors are recorded on the span and returned unchanged.
func OpenTelemetry(opts ...OTelOption) store.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return store.MiddlewareFunc(func(ctx context.Context, a actions.Action, next func(context.Context) error) error {
		if config.Filter != nil && !config.Filter(a) {
			return next(ctx)
		}

		attrs := actionAttributes(a, config.IncludeData)
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(a)...)
		}

		spanCtx, span := tracer.Start(ctx,
			fmt.Sprintf("store.Dispatch %s", a.Type),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next(spanCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

func actionAttributes(a actions.Action, includeData bool) []attribute.KeyValue {
	attrs := []attribute.KeyValue{AttrActionType.String(string(a.Type))}

	if ev, ok := a.UserEventData(); ok {
		attrs = append(attrs, AttrUserEvent.String(string(ev.Event)))
		if ev.Page != "" {
			attrs = append(attrs, AttrPage.String(ev.Page))
		}
		if ev.Source != "" {
			attrs = append(attrs, AttrSource.String(ev.Source))
		}
		if pos := ev.Position(); pos >= 0 {
			attrs = append(attrs, AttrActionPosition.Int(pos))
		}
		if ev.ExperimentID != "" {
			attrs = append(attrs, AttrExperimentID.String(ev.ExperimentID))
		}
		return attrs
	}

	if includeData {
		attrs = append(attrs, AttrActionData.String(a.Payload()))
	}
	return attrs
}

// SpanFromContext returns the dispatch span, or a no-op span outside one.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
