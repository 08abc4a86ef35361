// Package resolver wires identity, session, metadata, and the provider
// pipeline into the two operations the addon serves: stream resolution
// and catalog listing.
package resolver

import (
	"context"
	"log"
	"strings"

	"tb7stream/models"
	"tb7stream/services/metadata"
	"tb7stream/services/tb7"
	"tb7stream/services/titles"
)

// ProviderLabel names the addon in stream listings.
const ProviderLabel = "TB7 Premium"

// DefaultCatalogLimit caps catalog responses when the caller gives no limit.
const DefaultCatalogLimit = 50

type providerClient interface {
	Authenticate(ctx context.Context, creds models.Credentials, scope string) (string, error)
	Search(ctx context.Context, cookie string, variants []string, year string) ([]tb7.SearchResult, error)
	ResolveLinks(ctx context.Context, cookie, token string) ([]string, error)
	Latest(ctx context.Context, cookie, kind string, page int) ([]tb7.CatalogRow, error)
	SearchCatalog(ctx context.Context, cookie, query string) ([]tb7.CatalogRow, error)
}

type titleResolver interface {
	ResolveTitle(ctx context.Context, mediaType, externalID string) metadata.TitleInfo
	FindIMDBID(ctx context.Context, mediaType, title, year string) string
}

type credentialSource interface {
	Credentials(ctx context.Context, id models.Identity, addr string) (models.Credentials, string, error)
}

var (
	_ providerClient = (*tb7.Client)(nil)
	_ titleResolver  = (*metadata.Service)(nil)
)

type Service struct {
	creds    credentialSource
	provider providerClient
	meta     titleResolver
}

func NewService(creds credentialSource, provider providerClient, meta titleResolver) *Service {
	return &Service{creds: creds, provider: provider, meta: meta}
}

// Streams resolves a video id into zero or more direct download streams.
//
// Missing or incomplete account configuration is an empty success — an
// unconfigured deployment looks like "no content", never like a fault.
// Provider search and extraction failures degrade to empty as well; only
// a failed login propagates, so the handler can decide how to report it.
func (s *Service) Streams(ctx context.Context, id models.Identity, addr, kind, videoID string) ([]models.Stream, error) {
	creds, scope, err := s.creds.Credentials(ctx, id, addr)
	if err != nil {
		log.Printf("[resolver] credential lookup failed: %v", err)
		return nil, nil
	}
	if !creds.Configured() {
		return nil, nil
	}

	cookie, err := s.provider.Authenticate(ctx, creds, scope)
	if err != nil {
		return nil, err
	}

	// Series ids carry season and episode after the IMDb id.
	externalID := strings.SplitN(videoID, ":", 2)[0]
	info := s.meta.ResolveTitle(ctx, kind, externalID)
	variants := titles.Variants(info.Title, externalID)

	results, err := s.provider.Search(ctx, cookie, variants, info.Year)
	if err != nil {
		log.Printf("[resolver] search failed for %s: %v", externalID, err)
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	links, err := s.provider.ResolveLinks(ctx, cookie, best.Token)
	if err != nil {
		log.Printf("[resolver] link extraction failed for %s: %v", externalID, err)
		return nil, nil
	}

	streams := make([]models.Stream, 0, len(links))
	for _, link := range links {
		streams = append(streams, models.Stream{
			Name:  ProviderLabel,
			Title: best.Name,
			URL:   link,
		})
	}
	log.Printf("[resolver] %s resolved to %d streams via %q", externalID, len(streams), best.Name)
	return streams, nil
}

// Catalog lists provider entries, either the latest uploads or a search.
// Results are truncated to limit; each entry is enriched with an IMDb id
// when the metadata service can find one, falling back to the display
// name as the catalog id. Enrichment is per-entry best effort.
func (s *Service) Catalog(ctx context.Context, id models.Identity, addr, kind, query string, skip, limit int) ([]models.MetaPreview, error) {
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}

	creds, scope, err := s.creds.Credentials(ctx, id, addr)
	if err != nil {
		log.Printf("[resolver] credential lookup failed: %v", err)
		return nil, nil
	}
	if !creds.Configured() {
		return nil, nil
	}

	cookie, err := s.provider.Authenticate(ctx, creds, scope)
	if err != nil {
		return nil, err
	}

	var rows []tb7.CatalogRow
	if strings.TrimSpace(query) != "" {
		rows, err = s.provider.SearchCatalog(ctx, cookie, query)
	} else {
		page := skip/limit + 1
		rows, err = s.provider.Latest(ctx, cookie, kind, page)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	metas := make([]models.MetaPreview, 0, len(rows))
	for _, row := range rows {
		entryID := s.meta.FindIMDBID(ctx, kind, searchableTitle(row.Name), row.Year)
		if entryID == "" {
			entryID = row.Name
		}
		metas = append(metas, models.MetaPreview{
			ID:          entryID,
			Type:        kind,
			Name:        row.Name,
			Poster:      row.Poster,
			ReleaseInfo: row.Year,
		})
	}
	return metas, nil
}

// searchableTitle turns a release-style display name into a text query:
// everything up to the year token, with separators folded to spaces.
func searchableTitle(name string) string {
	if loc := strings.IndexAny(name, "("); loc > 0 {
		name = name[:loc]
	}
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for i, f := range fields {
		// A year token ends the title part, unless it is the title itself.
		if i > 0 && isYearToken(f) {
			break
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

func isYearToken(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s[0] == '1' || s[0] == '2'
}
