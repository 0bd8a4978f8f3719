package logs

import (
	"cmp"
	"context"
	"crypto/rand"
	"log/slog"
)

// NewSpan starts a span for one unit of work, usually the run of a source.
// An empty parent falls back to the span already carried by ctx.
type NewSpan func(ctx context.Context, name string, parent Span) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, name string, parent Span) (context.Context, Span) {
		outer, _ := SpanFrom(ctx)
		parent = cmp.Or(parent, outer)

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		attrs := []slog.Attr{
			slog.String("name", name),
		}
		if parent != "" {
			attrs = append(attrs, slog.String("parent", string(parent)))
		}
		if outer != "" && outer != parent {
			attrs = append(attrs, slog.String("creator", string(outer)))
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "span started", attrs...)

		return ctx, span
	}
}
