package sdk

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config holds the connection setup of a Console.
type Config struct {
	// APIURL is the backend base URL, e.g. https://oficina.example/api.
	APIURL string
	Logger *zap.SugaredLogger

	// Timeout bounds every backend request. Zero means no limit.
	Timeout  time.Duration
	Insecure bool
	// Transport replaces the HTTP round tripper, mostly for tests.
	Transport http.RoundTripper

	// PageSize overrides the grid page size of every entity when positive.
	PageSize int
	// QuoteDebounce overrides the quiet period of quote pricing.
	QuoteDebounce time.Duration
}
