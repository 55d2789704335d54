// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package fetcher retrieves wind direction snapshots from the GFS wind direction API.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/wneessen/windviewer/internal/http"
	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/wind"
)

const (
	// Endpoint is the API path below the base URL
	Endpoint = "/api/gfs/wind-direction"
	// DateLayout is the layout of the date query parameter
	DateLayout = "2006-01-02"

	DefaultMaxFailures = 5
	DefaultOpenTimeout = time.Minute
)

var (
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
	ErrNetwork     = errors.New("failed to retrieve wind data")
	ErrEmptyResult = errors.New("no wind data available for the selected date")
)

// NetworkError reports a failed request. StatusCode is zero when no response was received.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", ErrNetwork, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// callerError marks a request that ended because the caller's context was done. It does not
// count as a breaker failure.
type callerError struct {
	err error
}

func (e *callerError) Error() string { return e.err.Error() }
func (e *callerError) Unwrap() error { return e.err }

// Options configures a Fetcher. Zero values fall back to the defaults.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
}

// Fetcher requests snapshots for a date. It performs at most one request per Fetch call and
// never retries; a circuit breaker makes calls fail fast after repeated network failures.
type Fetcher struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
	logger   *logger.Logger
}

// New returns a Fetcher for the API at opts.BaseURL.
func New(client *http.Client, log *logger.Logger, opts Options) (*Fetcher, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", opts.BaseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = http.DefaultTimeout
	}
	if opts.MaxFailures == 0 {
		opts.MaxFailures = DefaultMaxFailures
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = DefaultOpenTimeout
	}

	maxFailures := opts.MaxFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "wind-direction",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			var callerErr *callerError
			return err == nil || errors.As(err, &callerErr)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker changed state", slog.String("breaker", name),
				slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})

	return &Fetcher{
		endpoint: base.String() + Endpoint,
		timeout:  opts.Timeout,
		client:   client,
		breaker:  breaker,
		validate: validator.New(),
		logger:   log,
	}, nil
}

// Endpoint returns the full URL requests are sent to.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// ValidDate reports whether date is a calendar date in YYYY-MM-DD form.
func (f *Fetcher) ValidDate(date string) bool {
	return f.validate.Var(date, "required,datetime="+DateLayout) == nil
}

// Fetch requests the snapshots for date and returns the first one. Only the first snapshot
// of the response is used.
func (f *Fetcher) Fetch(ctx context.Context, date string) (*wind.Snapshot, error) {
	if !f.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	query := url.Values{}
	query.Set("date", date)

	var status int
	result, err := f.breaker.Execute(func() (interface{}, error) {
		var snapshots []wind.Snapshot
		code, err := f.client.GetWithTimeout(ctx, f.endpoint, &snapshots, query, nil, f.timeout)
		status = code
		if err != nil && ctx.Err() != nil {
			return nil, &callerError{err: err}
		}
		if err != nil {
			return nil, err
		}
		return snapshots, nil
	})
	if err != nil {
		return nil, &NetworkError{StatusCode: status, Err: err}
	}

	snapshots, ok := result.([]wind.Snapshot)
	if !ok || len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, date)
	}
	if len(snapshots) > 1 {
		f.logger.Debug("discarding additional snapshots", slog.String("date", date),
			slog.Int("count", len(snapshots)))
	}

	snap := snapshots[0]
	return &snap, nil
}

// BreakerState returns the state of the circuit breaker as text.
func (f *Fetcher) BreakerState() string {
	return f.breaker.State().String()
}
