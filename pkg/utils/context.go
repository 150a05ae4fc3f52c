package utils

import (
	"context"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
)

// GetSessionIDFromContext returns the viewer session set by the ViewerSession middleware.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(SessionIDKey)
	if val == nil {
		return "", false
	}

	sessionID, ok := val.(string)
	if !ok || sessionID == "" {
		return "", false
	}

	return sessionID, true
}

func SetSessionContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}
