package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/metrics"
	"github.com/faciam-dev/atelie/pkg/models"
)

// Client provides REST access to the workshop backend.
type Client struct {
	base   string
	http   *resty.Client
	logger *zap.SugaredLogger
}

type Option func(*Client)

// WithLogger sets the logger used for soft failures such as malformed
// query payloads.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithInsecure disables TLS certificate verification. Only meant for
// development backends with self-signed certificates.
func WithInsecure(insecure bool) Option {
	return func(c *Client) {
		if insecure {
			c.http.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
		}
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.SetTransport(rt)
	}
}

// New returns a Client for the given base URL, e.g. https://host/api.
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimSuffix(base, "/"),
		http:   resty.New(),
		logger: zap.NewNop().Sugar(),
	}
	c.http.SetHeader("Accept", "application/json")
	c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get("X-Request-ID") == "" {
			r.SetHeader("X-Request-ID", uuid.NewString())
		}
		return nil
	})
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.base }

// ListCfg returns the queries registered on the backend.
func (c *Client) ListCfg(ctx context.Context) ([]cfg.Summary, error) {
	var out []cfg.Summary
	if err := c.do(ctx, http.MethodGet, "cfg", "/cfg", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryCfg runs the named query. The row payload is decoded leniently:
// a malformed payload yields an empty page, never an error.
func (c *Client) QueryCfg(ctx context.Context, identifier string, in cfg.QueryInput, defaultPageSize int) (cfg.Result, error) {
	var resp cfg.Response
	path := "/cfg/" + url.PathEscape(identifier) + "/query"
	if err := c.do(ctx, http.MethodPost, "cfg", path, cfg.Normalize(in, defaultPageSize), &resp); err != nil {
		return cfg.Result{}, err
	}
	if cfg.Malformed(resp.Data) {
		metrics.MalformedPayloads.WithLabelValues(identifier).Inc()
	}
	return cfg.Decode(resp, c.logger.With("identifier", identifier)), nil
}

// CalcularCusto asks the backend for the suggested total of a quote.
func (c *Client) CalcularCusto(ctx context.Context, in models.CalculoInput) (models.CalculoResultado, error) {
	var out models.CalculoResultado
	err := c.do(ctx, http.MethodPost, "orcamentos", "/orcamentos/calcular-custo", in, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, resource, path string, body, result any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	start := time.Now()
	resp, err := req.Execute(method, c.base+path)
	metrics.APILatency.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequests.WithLabelValues(method, resource, "error").Inc()
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	metrics.APIRequests.WithLabelValues(method, resource, strconv.Itoa(resp.StatusCode())).Inc()
	if resp.IsError() {
		return restyErr(method, path, resp)
	}
	return nil
}
