package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"findanything/internal/domain"
	"findanything/internal/errs"
)

// maxBodyBytes caps how much of a provider response is read
const maxBodyBytes = 8 << 20

// Options configures the Results Provider client
type Options struct {
	URL     string
	Timeout time.Duration
	// Retries is the number of extra attempts after the first one fails
	Retries int
	// RateLimit is requests per second; zero disables limiting
	RateLimit float64
	Burst     int

	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the Results Provider over its single POST exchange
type Client struct {
	url     string
	http    *http.Client
	retries int
	limiter *rate.Limiter
	logger  *zap.Logger
}

type queryRequest struct {
	Query string `json:"query"`
}

// NewClient creates a new provider client
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}

	c := &Client{
		url:     opts.URL,
		http:    httpClient,
		retries: retries,
		logger:  logger.Named("provider"),
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// Search posts the composite query and decodes the result list.
// A 2xx body that is valid JSON but not an array yields an empty list.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Result, error) {
	body, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return nil, errs.New("provider.encode", errs.CodeProviderFailure, errs.WithCause(err))
	}

	attempt := 0
	operation := func() ([]domain.Result, error) {
		attempt++
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, backoff.Permanent(errs.New("provider.ratelimit", errs.CodeProviderFailure, errs.WithCause(err)))
			}
		}
		return c.post(ctx, body)
	}

	results, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(c.retries+1)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("provider attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", next),
				zap.Error(err))
		}),
	)
	if err != nil {
		if !errs.IsCode(err, errs.CodeProviderFailure) {
			err = errs.New("provider.search", errs.CodeProviderFailure, errs.WithCause(err))
		}
		return nil, err
	}
	return results, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]domain.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(errs.New("provider.request", errs.CodeProviderFailure, errs.WithCause(err)))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.New("provider.transport", errs.CodeProviderFailure, errs.WithCause(err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("closing provider response", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		e := errs.New("provider.status", errs.CodeProviderFailure,
			errs.WithHTTP(resp.StatusCode),
			errs.WithMessage(fmt.Sprintf("API call failed with status: %d", resp.StatusCode)))
		if resp.StatusCode >= 500 {
			return nil, e
		}
		return nil, backoff.Permanent(e)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errs.New("provider.read", errs.CodeProviderFailure, errs.WithCause(err))
	}
	if len(payload) > maxBodyBytes {
		return nil, backoff.Permanent(errs.New("provider.read", errs.CodeProviderFailure,
			errs.WithMessage(fmt.Sprintf("response too large: exceeds %d bytes", maxBodyBytes))))
	}

	results, err := DecodeResults(payload)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	return results, nil
}

// DecodeResults parses a success body: an array becomes results, any other
// valid JSON value becomes an empty list, invalid JSON is a provider failure
func DecodeResults(payload []byte) ([]domain.Result, error) {
	trimmed := bytes.TrimSpace(payload)
	if !json.Valid(trimmed) {
		return nil, errs.New("provider.decode", errs.CodeProviderFailure, errs.WithMessage("response body is not valid JSON"))
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []domain.Result{}, nil
	}

	var results []domain.Result
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, errs.New("provider.decode", errs.CodeProviderFailure, errs.WithCause(err))
	}
	if results == nil {
		results = []domain.Result{}
	}
	return results, nil
}
