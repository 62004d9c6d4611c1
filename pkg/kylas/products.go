package kylas

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// LookupProducts searches products by a field:value query.
func (c *Client) LookupProducts(ctx context.Context, query string, page, size int) (*Page, error) {
	const op = "Product lookup"
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	body, err := c.do(ctx, op, http.MethodGet, "/products/lookup", q, nil)
	if err != nil {
		return nil, err
	}
	return parsePage(op, body)
}
