// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user ID.
type ActorKey struct{}

// RequestIDKey is the context key for the request correlation ID.
type RequestIDKey struct{}

// WithActorID returns a context with the acting user ID embedded.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the acting user ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID returns a context carrying a request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, id)
}

// RequestIDFromContext returns the request ID, or empty string if not set.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// EmailKey is the context key for the acting user's e-mail.
type EmailKey struct{}

// WithActorEmail returns a context carrying the acting user's e-mail.
func WithActorEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey{}, email)
}

// ActorEmailFromContext returns the acting user's e-mail, or empty string if not set.
func ActorEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(EmailKey{}).(string); ok {
		return v
	}
	return ""
}
