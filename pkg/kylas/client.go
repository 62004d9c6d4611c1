package kylas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/shared/httputil"
)

// Client talks to the Kylas REST API. It is safe for concurrent use.
type Client struct {
	cfg  *Config
	http *http.Client
	log  zerolog.Logger
}

// NewClient builds a client from the given config, filling defaults.
func NewClient(cfg *Config, log zerolog.Logger) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		log:  log,
	}
}

type clientNameKey struct{}

// WithClientName tags ctx with the connecting MCP client's short name so
// outbound requests can report it in the User-Agent.
func WithClientName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, clientNameKey{}, name)
}

// ClientNameFromContext returns the tagged client name, or "unknown".
func ClientNameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(clientNameKey{}).(string); ok && name != "" {
		return name
	}
	return "unknown"
}

// DetectClientName maps an MCP client id or HTTP User-Agent to a short
// client name for the outbound User-Agent.
func DetectClientName(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "cursor"):
		return "cursor"
	case strings.Contains(s, "claude"):
		return "claude"
	default:
		return "unknown"
	}
}

func (c *Client) headers(ctx context.Context) map[string]string {
	return map[string]string{
		"api-key":    c.cfg.APIKey,
		"Accept":     "application/json",
		"User-Agent": "kylas_mcp_server/" + ClientNameFromContext(ctx),
	}
}

// do performs one API call and maps non-2xx responses and transport errors
// to *APIError. op names the operation in error messages and logs.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, &APIError{Message: "KYLAS_API_KEY environment variable is not set"}
	}
	reqURL := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	log := c.log.With().
		Str("request_id", xid.New().String()).
		Str("method", method).
		Str("path", path).
		Logger()
	log.Debug().Msg("Kylas API request")
	body, status, err := httputil.DoJSON(ctx, c.http, method, reqURL, c.headers(ctx), payload)
	if err != nil {
		log.Err(err).Msgf("%s failed", op)
		return nil, wrapError(op, err)
	}
	if status < 200 || status >= 300 {
		log.Error().Int("status", status).Str("body", string(body)).Msgf("%s failed", op)
		return nil, statusError(op, status, string(body))
	}
	log.Debug().Int("status", status).Msg("Kylas API response")
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(op, body, out)
}

func (c *Client) postJSON(ctx context.Context, op, path string, query url.Values, payload, out any) error {
	body, err := c.do(ctx, op, http.MethodPost, path, query, payload)
	if err != nil {
		return err
	}
	return decode(op, body, out)
}

func (c *Client) putJSON(ctx context.Context, op, path string, payload, out any) error {
	body, err := c.do(ctx, op, http.MethodPut, path, nil, payload)
	if err != nil {
		return err
	}
	return decode(op, body, out)
}

func decode(op string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return wrapError(op, err)
	}
	return nil
}
