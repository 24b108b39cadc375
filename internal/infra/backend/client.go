// Package backend is the REST client for the marketplace backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
)

const maxErrorBodySize = 64 << 10

// ErrMalformedResponse is returned when a 2xx body lacks a required field
var ErrMalformedResponse = errors.New("malformed backend response")

// Client performs JSON requests against the backend. The caller's bearer
// token and request id are taken from the context; an anonymous context
// simply omits the Authorization header.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// ClientParams holds dependencies for Client, injected by Fx.
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewClient creates a backend client from configuration
func NewClient(params ClientParams) (*Client, error) {
	cfg := params.Config.Backend
	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return newClient(cfg.BaseURL, httpClient, cfg.UserAgent, params.Logger)
}

func newClient(baseURL string, httpClient *http.Client, userAgent string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid backend base url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("backend base url must be absolute: %q", baseURL)
	}

	return &Client{
		baseURL:    u,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}, nil
}

// endpoint joins path segments onto the base url
func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// doJSON sends body (if any) as JSON and returns the raw 2xx response body
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

// send attaches common headers, executes req and normalises failures:
// transport errors become ErrNetwork, non-2xx answers become BackendError.
func (c *Client) send(req *http.Request) ([]byte, error) {
	ctx := req.Context()
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := deliverycontext.GetAuthToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, c.logger)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(ctx.Err(), "%s %s", req.Method, req.URL.Path)
		}
		logger.WarnContext(ctx, "Backend request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Any("error", err),
		)

		return nil, errors.Wrapf(domainerrors.ErrNetwork, "%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		logger.DebugContext(ctx, "Backend returned error status",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
		)

		return nil, errors.WithStack(domainerrors.NewBackendError(resp.StatusCode, errorMessage(raw)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrNetwork, "read %s %s: %v", req.Method, req.URL.Path, err)
	}

	return raw, nil
}

// errorMessage extracts {message} (or {error}) from a JSON error body,
// falling back to the plain text body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		return ""
	}

	return text
}

// decode unmarshals raw into out. When raw is an object holding one of the
// envelope keys, that member is decoded instead, so both `[...]` and
// `{"products": [...]}` shapes are accepted. Non-JSON bodies are reported
// as network errors.
func decode(raw []byte, out any, envelopeKeys ...string) error {
	payload := bytes.TrimSpace(raw)
	if len(payload) == 0 {
		return errors.Wrap(domainerrors.ErrNetwork, "empty backend response")
	}

	if payload[0] == '{' && len(envelopeKeys) > 0 {
		var members map[string]json.RawMessage
		if err := json.Unmarshal(payload, &members); err == nil {
			for _, key := range envelopeKeys {
				if member, ok := members[key]; ok {
					payload = member

					break
				}
			}
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrapf(domainerrors.ErrNetwork, "decode backend response: %v", err)
	}

	return nil
}
