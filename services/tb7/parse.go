package tb7

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The provider's markup is an unversioned wire format. Everything that
// touches selectors is collected here so the rest of the pipeline only
// sees parsed values.

// SearchResult is one row of the account-scoped search listing.
type SearchResult struct {
	// Name is the provider's filename-derived display string.
	Name string
	// Token is the opaque value the download flow passes back to the
	// provider (the pobierz href).
	Token string
}

// CatalogRow is one row of a browse or search page.
type CatalogRow struct {
	Name   string
	Href   string
	Poster string
	Year   string
}

// minLinkLength filters out noise lines from the link block; nothing
// shorter can be a plausible absolute URL.
const minLinkLength = 12

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// parseSearchResults extracts candidate rows from a search listing. Rows
// without a display name or token are dropped.
func parseSearchResults(html []byte) ([]SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var results []SearchResult
	doc.Find("a[href*='/mojekonto/pobierz/']").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")
		if name == "" || href == "" {
			return
		}
		results = append(results, SearchResult{Name: name, Token: href})
	})
	return results, nil
}

// parseDownloadForm returns the action of the link-generation form on the
// pobierz page. The provider has served the same default action for years,
// so an absent form falls back to it.
func parseDownloadForm(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse download page: %w", err)
	}
	action, ok := doc.Find("form").First().Attr("action")
	if !ok || strings.TrimSpace(action) == "" {
		return "/mojekonto/sciagaj", nil
	}
	return strings.TrimSpace(action), nil
}

// parseDownloadLinks extracts the generated direct links: a line-delimited
// text block, with anchor links as the fallback for older markup.
func parseDownloadLinks(html []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse links page: %w", err)
	}

	var links []string
	doc.Find("textarea").Each(func(_ int, sel *goquery.Selection) {
		for _, line := range strings.Split(sel.Text(), "\n") {
			line = strings.TrimSpace(line)
			if len(line) < minLinkLength {
				continue
			}
			links = append(links, line)
		}
	})
	if len(links) > 0 {
		return links, nil
	}

	doc.Find("a[href*='/sciagaj/']").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if len(href) >= minLinkLength {
			links = append(links, href)
		}
	})
	return links, nil
}

// parseCatalogRows extracts browse-page rows. The selectors cover the
// row classes the provider uses across its listing pages.
func parseCatalogRows(html []byte) ([]CatalogRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse catalog page: %w", err)
	}

	var rows []CatalogRow
	doc.Find(".film, .episode, .item").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".title").First().Text())
		if name == "" {
			name = strings.TrimSpace(sel.Find("h2").First().Text())
		}
		href, _ := sel.Find("a").First().Attr("href")
		if name == "" || href == "" {
			return
		}
		poster, _ := sel.Find("img").First().Attr("src")
		rows = append(rows, CatalogRow{
			Name:   name,
			Href:   href,
			Poster: poster,
			Year:   yearPattern.FindString(name),
		})
	})
	return rows, nil
}
