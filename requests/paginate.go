package requests

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPageSize is used when a paginated call does not specify one.
const DefaultPageSize = 100

// PageFunc fetches one page of results. It receives the page token from the
// previous page (empty for the first page) and returns the items of the
// current page plus the token of the next one. An empty next token ends the
// iteration.
type PageFunc[T any] func(ctx context.Context, pageToken string, pageSize int) (items []T, nextToken string, err error)

type pageConfig struct {
	pageSize int
	limiter  *rate.Limiter
}

// PageOption configures paginated iteration.
type PageOption func(*pageConfig)

// WithPageSize sets the page size requested from the service.
func WithPageSize(n int) PageOption {
	return func(c *pageConfig) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithPageInterval paces page fetches to at most one per interval, keeping
// long listings under the service's rate limits.
func WithPageInterval(d time.Duration) PageOption {
	return func(c *pageConfig) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// EachPage walks every page produced by fetch and hands each batch of items
// to fn. Iteration stops on the first error from either.
func EachPage[T any](ctx context.Context, fetch PageFunc[T], fn func(items []T) error, opts ...PageOption) error {
	cfg := pageConfig{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	token := ""
	for {
		if cfg.limiter != nil {
			if err := cfg.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		items, next, err := fetch(ctx, token, cfg.pageSize)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			if err := fn(items); err != nil {
				return err
			}
		}

		if next == "" {
			return nil
		}
		token = next
	}
}

// Paginate collects every item across all pages into one slice.
func Paginate[T any](ctx context.Context, fetch PageFunc[T], opts ...PageOption) ([]T, error) {
	var all []T
	err := EachPage(ctx, fetch, func(items []T) error {
		all = append(all, items...)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return all, nil
}
