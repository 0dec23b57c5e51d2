// Package httpjson collects facility snapshots from an upstream JSON endpoint
package httpjson

import (
	"context"
	"io"
	"net/http"
	"time"

	"facilities/internal/adapters/collector"
	"facilities/internal/core/facility"
	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/logger"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout   = 2 * time.Minute
	defaultUA        = "facilities-reload"
	defaultRetries   = 2
	defaultRetryWait = 500 * time.Millisecond
)

// Options configures the Collector
type Options struct {
	URL       string
	Token     string // optional bearer token
	UserAgent string
	Timeout   time.Duration
	// Retries applies to transport errors, 429 and 5xx. Negative disables retrying
	Retries   int
	RetryWait time.Duration
}

// Collector fetches the whole snapshot with one GET
type Collector struct {
	http *http.Client
	opts Options
	log  *logger.Logger
}

// New creates a Collector; URL is required
func New(o Options) *Collector {
	if o.URL == "" {
		panic("httpjson.Collector requires a URL")
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Retries == 0 {
		o.Retries = defaultRetries
	}
	if o.RetryWait <= 0 {
		o.RetryWait = defaultRetryWait
	}
	return &Collector{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  logger.Named("collector.http"),
	}
}

// Collect implements domain.Collector
func (c *Collector) Collect(ctx context.Context) ([]facility.Payload, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.opts.RetryWait
	eb.MaxElapsedTime = 0
	var policy backoff.BackOff = &backoff.StopBackOff{}
	if c.opts.Retries > 0 {
		policy = backoff.WithMaxRetries(eb, uint64(c.opts.Retries))
	}

	attempt := 0
	var out []facility.Payload
	err := backoff.RetryNotify(func() error {
		attempt++
		var err error
		out, err = c.fetch(ctx)
		return err
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("snapshot fetch failed")
	})
	return out, err
}

// fetch does one GET. Only transient failures come back retryable
func (c *Collector) fetch(ctx context.Context) ([]facility.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(perr.Wrapf(err, perr.ErrorCodeUnknown, "snapshot request"))
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "snapshot fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := perr.Newf(perr.ErrorCodeUnavailable, "snapshot fetch status %d: %s", resp.StatusCode, snippet)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}
	out, err := collector.DecodeJSON(resp.Body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	c.log.Debug().
		Str("url", c.opts.URL).
		Int("facilities", len(out)).
		Dur("latency", time.Since(start)).
		Msg("snapshot fetched")
	return out, nil
}
