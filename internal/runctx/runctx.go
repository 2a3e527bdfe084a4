// Package runctx carries the run identifier through a context.
package runctx

import (
	"context"

	"github.com/google/uuid"
)

type key struct{}

// NewID returns a fresh run identifier.
func NewID() string { return uuid.NewString() }

// WithRunID returns ctx carrying id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// RunID returns the run identifier in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}
