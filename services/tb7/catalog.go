package tb7

import (
	"context"
	"net/url"
	"strconv"
)

// Latest fetches one page of the provider's "newest uploads" listing for
// the given content kind. Pages are 1-based; the provider ignores unknown
// kinds and serves the mixed feed.
func (c *Client) Latest(ctx context.Context, cookie, kind string, page int) ([]CatalogRow, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("typ", providerKind(kind))
	params.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, c.baseURL+browsePath+"?"+params.Encode(), cookie)
	if err != nil {
		return nil, err
	}
	return parseCatalogRows(body)
}

// SearchCatalog lists search results as catalog rows. The account search
// listing carries no posters, so rows are name-only.
func (c *Client) SearchCatalog(ctx context.Context, cookie, query string) ([]CatalogRow, error) {
	results, err := c.searchOnce(ctx, cookie, query)
	if err != nil {
		return nil, err
	}
	rows := make([]CatalogRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, CatalogRow{
			Name: r.Name,
			Href: r.Token,
			Year: yearPattern.FindString(r.Name),
		})
	}
	return rows, nil
}

func providerKind(kind string) string {
	if kind == "series" {
		return "seriale"
	}
	return "filmy"
}
