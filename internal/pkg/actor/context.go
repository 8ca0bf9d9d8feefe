// Package actor carries request-scoped identity through context.Context.
//
// The auth middleware sets the values once per request; services and the
// audit recorder only read them:
//
//	ctx = actor.WithID(ctx, userID)
//	id := actor.ID(ctx) // nil when no authenticated user
package actor

import (
	"context"
	"time"

	"assurgest/internal/core/domain"

	"github.com/google/uuid"
)

type (
	idKey        struct{}
	roleKey      struct{}
	requestIDKey struct{}
	userAgentKey struct{}
	nowKey       struct{}
)

// WithID injects the acting user ID
func WithID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// ID returns the acting user ID, or nil if the request is anonymous
func ID(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(idKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

// WithRole injects the acting user's role
func WithRole(ctx context.Context, role domain.Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// Role returns the acting user's role, empty when unauthenticated
func Role(ctx context.Context) domain.Role {
	role, _ := ctx.Value(roleKey{}).(domain.Role)
	return role
}

// WithRequestID injects the request correlation ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request correlation ID
func RequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}

// WithUserAgent injects the caller's User-Agent header
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

// UserAgent returns the caller's User-Agent header
func UserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}

// WithTime pins "now" for the request. Used by tests and scheduled jobs.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, nowKey{}, t)
}

// Now returns the pinned time or time.Now in UTC
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(nowKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// Today returns the current date at midnight UTC
func Today(ctx context.Context) time.Time {
	y, m, d := Now(ctx).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
