// Package images resolves player headshot URLs at roster load time.
package images

import (
	"strings"
)

const (
	// DefaultHeadshotBase is the NBA.com headshot path; the player id and ".png" are appended.
	DefaultHeadshotBase = "https://ak-static.cms.nba.com/wp-content/uploads/headshots/nba/latest/260x190/"
	// DefaultFallbackURL is the league logo shown for players without a known id.
	DefaultFallbackURL = "https://cdn.nba.com/logos/nba/1610612739/global/L/logo.svg"
)

// Resolver maps a player name to an image URL. It must always return a usable URL.
type Resolver interface {
	Resolve(name string) string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) string

func (f ResolverFunc) Resolve(name string) string {
	return f(name)
}

// HeadshotResolver looks players up in a name to id table.
type HeadshotResolver struct {
	ids      map[string]string
	baseURL  string
	fallback string
}

// NewHeadshotResolver copies ids; empty baseURL/fallback use the NBA.com defaults.
func NewHeadshotResolver(ids map[string]string, baseURL, fallback string) *HeadshotResolver {
	if baseURL == "" {
		baseURL = DefaultHeadshotBase
	}
	if fallback == "" {
		fallback = DefaultFallbackURL
	}
	table := make(map[string]string, len(ids))
	for name, id := range ids {
		table[strings.TrimSpace(name)] = id
	}
	return &HeadshotResolver{ids: table, baseURL: baseURL, fallback: fallback}
}

// NewDefaultResolver uses the built-in NBA.com id table.
func NewDefaultResolver() *HeadshotResolver {
	return NewHeadshotResolver(nbaHeadshotIDs, "", "")
}

// Resolve returns the headshot URL for name, or the fallback when unknown.
func (r *HeadshotResolver) Resolve(name string) string {
	if r == nil {
		return DefaultFallbackURL
	}
	id, ok := r.ids[strings.TrimSpace(name)]
	if !ok || id == "" {
		return r.fallback
	}
	return r.baseURL + id + ".png"
}

// Known reports whether name has a headshot id.
func (r *HeadshotResolver) Known(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.ids[strings.TrimSpace(name)]
	return ok
}
