package tb7

import (
	"context"
	"log"
	"net/url"
	"strings"
	"unicode"
)

// Search issues one authenticated search per title variant, in order, and
// returns the surviving rows of the first variant that matches anything.
// Later variants are never queried once a match exists. An empty result is
// success, not an error: the caller treats it as "nothing found".
//
// A row survives when the variant is contained in its display name
// (case-insensitive, with punctuation folded — release names separate
// words with dots) and, when a year is known, the year literal appears in
// the name as well.
func (c *Client) Search(ctx context.Context, cookie string, variants []string, year string) ([]SearchResult, error) {
	for _, variant := range variants {
		rows, err := c.searchOnce(ctx, cookie, variant)
		if err != nil {
			return nil, err
		}

		var kept []SearchResult
		for _, row := range rows {
			if !nameContains(row.Name, variant) {
				continue
			}
			if year != "" && !strings.Contains(row.Name, year) {
				continue
			}
			kept = append(kept, row)
		}
		if len(kept) > 0 {
			log.Printf("[tb7] %d of %d rows match variant %q", len(kept), len(rows), variant)
			return kept, nil
		}
	}
	return nil, nil
}

func (c *Client) searchOnce(ctx context.Context, cookie, query string) ([]SearchResult, error) {
	searchURL := c.baseURL + searchPath + "?q=" + url.QueryEscape(query)
	body, err := c.get(ctx, searchURL, cookie)
	if err != nil {
		return nil, err
	}
	return parseSearchResults(body)
}

// ResolveLinks exchanges a search-result token for the final direct links.
// The provider needs two more authenticated requests: the pobierz page
// carrying the link-generation form, then the form POST whose answer holds
// the generated links. No links is an empty success.
func (c *Client) ResolveLinks(ctx context.Context, cookie, token string) ([]string, error) {
	prepareBody, err := c.get(ctx, c.absoluteURL(token), cookie)
	if err != nil {
		return nil, err
	}

	action, err := parseDownloadForm(prepareBody)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("wgraj", "Wgraj linki")
	linksBody, err := c.postForm(ctx, c.absoluteURL(action), cookie, form)
	if err != nil {
		return nil, err
	}

	links, err := parseDownloadLinks(linksBody)
	if err != nil {
		return nil, err
	}
	for i, link := range links {
		links[i] = c.absoluteURL(link)
	}
	return links, nil
}

// nameContains reports whether needle occurs in haystack after both are
// lowered and every punctuation run is folded to a single space, so
// "Movie Title" matches "Movie.Title.2020.1080p".
func nameContains(haystack, needle string) bool {
	return strings.Contains(foldName(haystack), foldName(needle))
}

func foldName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
