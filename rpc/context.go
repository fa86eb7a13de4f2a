package rpc

import (
	"context"
	"encoding/json"
)

type contextKey string

const (
	contextKeyAuthenticated contextKey = "authenticated"
	contextKeyRequestID     contextKey = "reqId"
)

// WithAuthenticated marks the calls made with ctx as authenticated.
func WithAuthenticated(ctx context.Context, authenticated bool) context.Context {
	return context.WithValue(ctx, contextKeyAuthenticated, authenticated)
}

func IsAuthenticated(ctx context.Context) bool {
	authenticated, _ := ctx.Value(contextKeyAuthenticated).(bool)
	return authenticated
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

func RequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(contextKeyRequestID).(string)
	return requestID
}

// RequireAuth rejects unauthenticated calls before the handler runs.
func RequireAuth(next Handler) Handler {
	return func(ctx context.Context, input json.RawMessage) (interface{}, error) {
		if !IsAuthenticated(ctx) {
			return nil, Unauthorized()
		}
		return next(ctx, input)
	}
}
