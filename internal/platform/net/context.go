// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyActor ctxKey = "actor"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// chi RequestIDKey so chimw.GetReqID can read it back
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithActor annotates context with the authenticated admin actor
func WithActor(ctx context.Context, actor string) context.Context {
	if actor != "" {
		ctx = context.WithValue(ctx, keyActor, actor)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// Actor returns the admin actor on the context if present
func Actor(ctx context.Context) string {
	if v, ok := ctx.Value(keyActor).(string); ok {
		return v
	}
	return ""
}
