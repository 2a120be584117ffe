// Package storage resolves committed attachment refs into displayable URLs.
// Refs are opaque relative paths owned by the backend and are never
// normalized or rewritten; resolution is purely additive.
package storage

import (
	"context"
	"strings"
)

type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// StaticResolver prefixes refs with a configured public base URL.
type StaticResolver struct {
	base string
}

func NewStaticResolver(baseURL string) *StaticResolver {
	return &StaticResolver{base: strings.TrimRight(baseURL, "/")}
}

func (r *StaticResolver) Resolve(_ context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	return r.base + "/" + strings.TrimLeft(ref, "/"), nil
}
