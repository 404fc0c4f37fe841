// Package api provides a client for the AISWEI Pro cloud API.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"aiswei_bridge/internal/auth"
	"aiswei_bridge/internal/types"
)

// DefaultBaseURL is the EU gateway used by Pro accounts.
const DefaultBaseURL = "https://eu-api-genergal.aisweicloud.com"

// Param is a single query parameter. It is rendered as key=value without
// escaping because the gateway signs the raw query text.
type Param struct {
	Key   string
	Value string
}

func (p Param) String() string {
	return p.Key + "=" + p.Value
}

// Client issues signed GET requests to the AISWEI API.
// It holds no mutable state besides its configuration.
type Client struct {
	baseURL string
	creds   auth.Credentials
	resty   *resty.Client
	logger  *slog.Logger
	now     func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithClock replaces the clock used for date parameters.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a new AISWEI API client.
func NewClient(baseURL string, creds auth.Credentials, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		resty:   resty.New().SetTimeout(timeout),
		logger:  logger,
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Execute signs and sends a GET for path with the given extra query parameters.
// Every failure is returned as an *Error; nothing panics past this call.
func (c *Client) Execute(ctx context.Context, path string, params ...Param) (*types.Response, error) {
	signed := auth.NewSignedRequest(withParams(path, params), c.creds)
	log := c.logger.With("request_id", uuid.NewString(), "path", path)

	req := c.resty.R().SetContext(ctx)
	for k, v := range signed.Header {
		req.SetHeader(k, v[0])
	}

	log.Debug("API request", "params", len(params))

	resp, err := req.Get(c.baseURL + signed.Endpoint)
	if err != nil {
		// the URL carries apikey and token
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = c.baseURL + path
		}
		log.Error("Request failed", "error", err)
		return nil, &Error{Kind: KindTransport, Path: path, Err: err}
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		log.Warn("Non-200 status",
			"status", resp.StatusCode(),
			"headers", resp.Header(),
			"body", string(body))
		return nil, &Error{
			Kind:   KindHTTP,
			Path:   path,
			Status: resp.StatusCode(),
			Body:   string(body),
			Header: resp.Header(),
		}
	}

	doc, err := types.DecodeResponse(body)
	if err != nil {
		log.Warn("Invalid JSON in response", "status", resp.StatusCode(), "error", err)
		return nil, &Error{Kind: KindParse, Path: path, Status: resp.StatusCode(), Body: string(body), Err: err}
	}

	log.Debug("API response", "bytes", len(body), "success", doc.Success())
	return doc, nil
}

// withParams appends params to path in the given order.
func withParams(path string, params []Param) string {
	if len(params) == 0 {
		return path
	}

	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(parts, "&")
}
