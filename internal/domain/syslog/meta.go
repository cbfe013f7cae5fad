package syslog

import "context"

const unknown = "Unknown"

// Meta identifies the caller that triggered a log entry.
type Meta struct {
	IP        string
	UserAgent string
}

type metaKey struct{}

func WithMeta(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, m)
}

// MetaFrom returns the caller attached to ctx, or "Unknown" placeholders.
func MetaFrom(ctx context.Context) Meta {
	m, _ := ctx.Value(metaKey{}).(Meta)
	if m.IP == "" {
		m.IP = unknown
	}
	if m.UserAgent == "" {
		m.UserAgent = unknown
	}
	return m
}
