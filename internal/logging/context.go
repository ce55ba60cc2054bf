package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from ctx, or a disabled logger if absent.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent returns a context whose logger carries a "component" field.
func WithComponent(ctx context.Context, component string) context.Context {
	child := FromContext(ctx).With().Str("component", component).Logger()
	return WithContext(ctx, child)
}

// WithWidget returns a context whose logger carries a "widget" field.
func WithWidget(ctx context.Context, name string) context.Context {
	child := FromContext(ctx).With().Str("widget", name).Logger()
	return WithContext(ctx, child)
}
