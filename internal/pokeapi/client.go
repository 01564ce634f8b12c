// Package pokeapi is a small client for the public PokeAPI REST endpoints
// dex reads from: the pokemon collection, per-pokemon detail, and the type list.
package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/config"
	"github.com/Veraticus/dex/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Client errors.
var (
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
)

// Client fetches catalog data from PokeAPI.
type Client struct {
	resty   *resty.Client
	retry   *retryablehttp.Client
	limiter *rate.Limiter
}

// NewClient creates a client from cfg. Requests that fail with a transport
// error, 429 or 5xx are retried up to cfg.Retries times.
func NewClient(cfg config.ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.CheckRetry = checkRetry
	// The last response reaches classifyStatus instead of a generic
	// "giving up" error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			slog.Warn("Retrying PokeAPI request", "url", req.URL.String(), "attempt", attempt, "max_retries", cfg.Retries)
		}
	}

	r := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetLogger(slogLogger{})
	if cfg.UserAgent != "" {
		r.SetHeader("User-Agent", cfg.UserAgent)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(1, int(cfg.RateLimit)))
	}

	return &Client{
		resty:   r,
		retry:   retryClient,
		limiter: limiter,
	}, nil
}

// ListPokemon returns the first limit entries of the pokemon collection.
func (c *Client) ListPokemon(ctx context.Context, limit int) ([]model.Summary, error) {
	var list namedResourceList
	if err := c.get(ctx, "/pokemon", map[string]string{"limit": strconv.Itoa(limit)}, &list); err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}

	summaries := make([]model.Summary, 0, len(list.Results))
	for _, r := range list.Results {
		summaries = append(summaries, model.Summary{Name: r.Name, URL: r.URL})
	}
	return summaries, nil
}

// GetPokemon fetches the detail record at url. Relative urls resolve
// against the configured base URL.
func (c *Client) GetPokemon(ctx context.Context, url string) (model.Pokemon, error) {
	var detail pokemonDetail
	if err := c.get(ctx, url, nil, &detail); err != nil {
		return model.Pokemon{}, fmt.Errorf("failed to fetch pokemon %s: %w", url, err)
	}
	if detail.Name == "" || len(detail.Types) == 0 {
		return model.Pokemon{}, fmt.Errorf("%w: pokemon at %s has no name or types", ErrMalformedResponse, url)
	}
	return detail.toModel(), nil
}

// ListTypes returns every type label PokeAPI knows about, in response order.
func (c *Client) ListTypes(ctx context.Context) ([]string, error) {
	var list namedResourceList
	if err := c.get(ctx, "/type", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list types: %w", err)
	}

	names := make([]string, 0, len(list.Results))
	for _, r := range list.Results {
		names = append(names, r.Name)
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, url string, query map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	slog.Debug("PokeAPI request", "url", url, "query", query)

	resp, err := c.resty.R().
		SetContext(ctx).
		SetQueryParams(query).
		ForceContentType("application/json").
		SetResult(out).
		Get(url)
	if err != nil {
		if resp != nil && resp.IsSuccess() {
			return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return &common.RetryableError{Err: err, Retryable: ctx.Err() == nil}
	}

	err = classifyStatus(resp)
	if common.IsRetryable(err) && c.retry.RetryMax > 0 {
		return fmt.Errorf("%w after %d attempts: %w", common.ErrMaxRetries, c.retry.RetryMax+1, err)
	}
	return err
}

// retryableStatus reports whether a response with code is worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// checkRetry is the retryablehttp policy: transport errors follow the
// library default, responses follow retryableStatus.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	return retryableStatus(resp.StatusCode), nil
}

// classifyStatus maps non-2xx responses to errors. 429 and 5xx are retryable.
func classifyStatus(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}

	err := fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, code, resp.Request.URL)
	if code == http.StatusTooManyRequests {
		err = fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	}
	return &common.RetryableError{
		Err:       err,
		Retryable: retryableStatus(code),
	}
}

// slogLogger routes resty's internal logging through slog.
type slogLogger struct{}

func (slogLogger) Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }
func (slogLogger) Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func (slogLogger) Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
