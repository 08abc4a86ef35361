// Package metadata resolves external catalog ids into human titles via
// TMDB. Every lookup degrades to the bare id on failure so downstream
// stages always receive a usable search string.
package metadata

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// TitleInfo is the result of a title resolution. Year is empty when the
// provider carried no usable date.
type TitleInfo struct {
	Title string
	Year  string
}

type Service struct {
	tmdb *tmdbClient
}

// NewService constructs the resolver. An empty apiKey puts the service in
// degraded mode: ResolveTitle echoes ids and FindIMDBID reports not found.
func NewService(apiKey, language string, httpc *http.Client) *Service {
	return &Service{tmdb: newTMDBClient(apiKey, language, httpc)}
}

// Configured reports whether metadata lookups are enabled.
func (s *Service) Configured() bool {
	return s.tmdb.isConfigured()
}

// ResolveTitle turns an external id into a title and year. It never fails
// outward: unknown id formats, missing configuration, and provider errors
// all yield the id itself as the title.
func (s *Service) ResolveTitle(ctx context.Context, mediaType, externalID string) TitleInfo {
	fallback := TitleInfo{Title: externalID}

	if !strings.HasPrefix(externalID, "tt") {
		return fallback
	}
	if !s.tmdb.isConfigured() {
		return fallback
	}

	title, err := s.tmdb.findByIMDBID(ctx, mediaType, externalID)
	if err != nil {
		log.Printf("[metadata] lookup failed for %s: %v", externalID, err)
		return fallback
	}
	name := title.displayTitle()
	if name == "" {
		return fallback
	}
	return TitleInfo{Title: name, Year: title.year()}
}

// FindIMDBID resolves a free-text title back into an IMDb id for catalog
// enrichment. Best effort: any failure returns an empty id and no error,
// a single bad row must never abort a listing.
func (s *Service) FindIMDBID(ctx context.Context, mediaType, title, year string) string {
	if !s.tmdb.isConfigured() || strings.TrimSpace(title) == "" {
		return ""
	}
	match, err := s.tmdb.searchTitle(ctx, mediaType, title, year)
	if err != nil {
		log.Printf("[metadata] reverse lookup failed for %q: %v", title, err)
		return ""
	}
	imdbID, err := s.tmdb.externalIMDBID(ctx, mediaType, match.ID)
	if err != nil {
		log.Printf("[metadata] external id fetch failed for %q: %v", title, err)
		return ""
	}
	return imdbID
}
