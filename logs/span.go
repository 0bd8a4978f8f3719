package logs

import "context"

// Span identifies one program run in log records and errors.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}

func SpanFrom(ctx context.Context) (Span, bool) {
	span, ok := ctx.Value(SpanKey).(Span)
	return span, ok
}
