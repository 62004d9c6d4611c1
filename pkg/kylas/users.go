package kylas

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CurrentUser fetches the authenticated user's profile from GET /users/me.
// The profile carries the timezone used for date filter defaults.
func (c *Client) CurrentUser(ctx context.Context) (map[string]any, error) {
	var user map[string]any
	if err := c.getJSON(ctx, "Fetch current user", "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// LookupUsers searches users by a field:value query, one page at a time.
func (c *Client) LookupUsers(ctx context.Context, query string, page, size int) (*Page, error) {
	const op = "User lookup"
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	body, err := c.do(ctx, op, http.MethodGet, "/users/lookup", q, nil)
	if err != nil {
		return nil, err
	}
	return parsePage(op, body)
}
