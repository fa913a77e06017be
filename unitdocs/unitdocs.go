// Package unitdocs fetches and renders the reference documentation linked
// from unit definitions. Catalog units carry Wikipedia URLs; Get retrieves
// the page for a unit, extracts the article and renders it as markdown.
package unitdocs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/physq/unit"
)

// ErrNoURL reports a unit without a reference URL to fetch.
var ErrNoURL = errors.New("unit has no reference url")

// Doc is a fetched reference document for a unit.
type Doc struct {
	UnitName  string
	URL       string
	Title     string
	Markdown  string
	FetchedAt time.Time
}

// Service resolves units against a registry and fetches their reference
// pages.
type Service struct {
	registry  *unit.Registry
	fetcher   *Fetcher
	converter *Converter
	logger    *slog.Logger
}

// Option adjusts service construction.
type Option func(*Service)

// WithFetcher replaces the default fetcher.
func WithFetcher(f *Fetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a documentation service over r with a 30 second
// request timeout and a 10 MiB body cap by default.
func NewService(r *unit.Registry, opts ...Option) *Service {
	s := &Service{
		registry:  r,
		fetcher:   NewFetcher(30*time.Second, 10<<20),
		converter: NewConverter(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get fetches the reference document for the named unit.
func (s *Service) Get(ctx context.Context, name string) (*Doc, error) {
	u, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	target := u.URL()
	if target == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoURL, name)
	}

	s.logger.Debug("fetching unit reference", "unit", name, "url", target)
	body, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	title, markdown, err := s.converter.Convert(body, target)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", target, err)
	}

	return &Doc{
		UnitName:  name,
		URL:       target,
		Title:     title,
		Markdown:  markdown,
		FetchedAt: time.Now().UTC(),
	}, nil
}
