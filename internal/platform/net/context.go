// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyUserID     ctxKey = "user_id"
	keyMemberNick ctxKey = "member_nick"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithUser annotates context with the authenticated Discord user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// WithMemberNick annotates context with the guild nickname of the user
func WithMemberNick(ctx context.Context, nick string) context.Context {
	if nick != "" {
		ctx = context.WithValue(ctx, keyMemberNick, nick)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// UserID returns the Discord user id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

// MemberNick returns the guild nickname on the context if present
func MemberNick(ctx context.Context) string {
	if v, ok := ctx.Value(keyMemberNick).(string); ok {
		return v
	}
	return ""
}
