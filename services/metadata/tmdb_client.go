package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Minimal TMDB v3 client (find-by-external-id and search, the two endpoints we need)

const tmdbDefaultBaseURL = "https://api.themoviedb.org"

type tmdbClient struct {
	apiKey   string
	language string
	baseURL  string
	httpc    *http.Client
}

func newTMDBClient(apiKey, language string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:   apiKey,
		language: normalizeLanguage(language),
		baseURL:  tmdbDefaultBaseURL,
		httpc:    httpc,
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// normalizeLanguage converts loose language values to TMDB's ll-CC form.
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return "pl-PL"
	}
	parts := strings.SplitN(lang, "-", 2)
	code := strings.ToLower(parts[0])
	if len(parts) == 2 && parts[1] != "" {
		return code + "-" + strings.ToUpper(parts[1])
	}
	switch code {
	case "pl":
		return "pl-PL"
	case "en":
		return "en-US"
	default:
		return code + "-" + strings.ToUpper(code)
	}
}

type tmdbFindResponse struct {
	MovieResults []tmdbTitle `json:"movie_results"`
	TVResults    []tmdbTitle `json:"tv_results"`
}

type tmdbTitle struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Name          string `json:"name"` // TV
	OriginalTitle string `json:"original_title"`
	OriginalName  string `json:"original_name"` // TV
	ReleaseDate   string `json:"release_date"`
	FirstAirDate  string `json:"first_air_date"` // TV
}

type tmdbSearchResponse struct {
	Results []tmdbTitle `json:"results"`
}

type tmdbExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// findByIMDBID resolves an IMDb id into the localized title and year.
func (c *tmdbClient) findByIMDBID(ctx context.Context, mediaType, imdbID string) (tmdbTitle, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("external_source", "imdb_id")

	var out tmdbFindResponse
	path := fmt.Sprintf("/3/find/%s", url.PathEscape(imdbID))
	if err := c.getJSON(ctx, path, params, &out); err != nil {
		return tmdbTitle{}, err
	}

	if mediaType == "series" {
		if len(out.TVResults) > 0 {
			return out.TVResults[0], nil
		}
	} else {
		if len(out.MovieResults) > 0 {
			return out.MovieResults[0], nil
		}
	}
	// The find endpoint buckets by TMDB's own typing; fall through to the
	// other bucket rather than failing on a type mismatch.
	if len(out.MovieResults) > 0 {
		return out.MovieResults[0], nil
	}
	if len(out.TVResults) > 0 {
		return out.TVResults[0], nil
	}
	return tmdbTitle{}, fmt.Errorf("no results for %s", imdbID)
}

// searchTitle returns the best TMDB match for a free-text title.
func (c *tmdbClient) searchTitle(ctx context.Context, mediaType, query, year string) (tmdbTitle, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("query", query)

	path := "/3/search/movie"
	if mediaType == "series" {
		path = "/3/search/tv"
		if year != "" {
			params.Set("first_air_date_year", year)
		}
	} else if year != "" {
		params.Set("year", year)
	}

	var out tmdbSearchResponse
	if err := c.getJSON(ctx, path, params, &out); err != nil {
		return tmdbTitle{}, err
	}
	if len(out.Results) == 0 {
		return tmdbTitle{}, fmt.Errorf("no results for %q", query)
	}
	return out.Results[0], nil
}

// externalIMDBID fetches the IMDb id for a TMDB id.
func (c *tmdbClient) externalIMDBID(ctx context.Context, mediaType string, tmdbID int64) (string, error) {
	kind := "movie"
	if mediaType == "series" {
		kind = "tv"
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	var out tmdbExternalIDs
	path := fmt.Sprintf("/3/%s/%d/external_ids", kind, tmdbID)
	if err := c.getJSON(ctx, path, params, &out); err != nil {
		return "", err
	}
	if out.IMDBID == "" {
		return "", fmt.Errorf("no imdb id for tmdb %s/%d", kind, tmdbID)
	}
	return out.IMDBID, nil
}

func (c *tmdbClient) getJSON(ctx context.Context, path string, params url.Values, dst interface{}) error {
	apiURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tmdb returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// displayTitle prefers the localized title and falls back to the original.
func (t tmdbTitle) displayTitle() string {
	for _, candidate := range []string{t.Title, t.Name, t.OriginalTitle, t.OriginalName} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

// year extracts the 4-digit year from whichever date field is set.
func (t tmdbTitle) year() string {
	return parseYear(t.ReleaseDate, t.FirstAirDate)
}

func parseYear(dates ...string) string {
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if len(d) < 4 {
			continue
		}
		year := d[:4]
		digits := true
		for _, r := range year {
			if r < '0' || r > '9' {
				digits = false
				break
			}
		}
		if digits {
			return year
		}
	}
	return ""
}
