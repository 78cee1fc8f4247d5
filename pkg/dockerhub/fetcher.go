package dockerhub

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/ratelimit"
)

const DefaultMaxRPS = 5

// HTTPFetcher is a rate limited Fetcher backed by an http.Client.
type HTTPFetcher struct {
	rl  ratelimit.Limiter
	cli *http.Client
}

func NewHTTPFetcher(maxRPS int, httpCli ...*http.Client) *HTTPFetcher {
	if maxRPS <= 0 {
		maxRPS = DefaultMaxRPS
	}

	f := &HTTPFetcher{
		rl:  ratelimit.New(maxRPS),
		cli: http.DefaultClient,
	}
	if len(httpCli) == 1 {
		f.cli = httpCli[0]
	}

	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*http.Response, error) {
	f.rl.Take()

	// The limiter can't be interrupted, so a context cancelled while waiting is checked afterwards.
	err := ctx.Err()
	if err != nil {
		return nil, errors.Wrap(err, "request cancelled")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "invalid request")
	}
	req.Header.Set("Accept", "application/json")

	return f.cli.Do(req)
}
