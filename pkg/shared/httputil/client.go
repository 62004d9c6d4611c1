// Package httputil holds the JSON transport helpers shared by the Kylas API
// client. The helpers return the response body and status code verbatim,
// including on non-2xx responses, so callers can map failures onto their own
// error types with the body attached.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
)

// DoJSON sends a request with an optional JSON payload and returns the
// response body and status code. A non-2xx status is not an error here.
func DoJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, payload any) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	return data, resp.StatusCode, nil
}

// GetJSON sends a GET request with the given headers.
func GetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, int, error) {
	return DoJSON(ctx, client, http.MethodGet, url, headers, nil)
}

// PostJSON marshals payload as JSON and sends a POST request.
func PostJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) ([]byte, int, error) {
	return DoJSON(ctx, client, http.MethodPost, url, headers, payload)
}

// PutJSON marshals payload as JSON and sends a PUT request.
func PutJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) ([]byte, int, error) {
	return DoJSON(ctx, client, http.MethodPut, url, headers, payload)
}

// MergeHeaders merges override headers into base, returning a new map.
func MergeHeaders(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string)
	}
	maps.Copy(out, override)
	return out
}
