package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/amonks/musicareas/data"
	"github.com/amonks/musicareas/limiter"
	"github.com/amonks/musicareas/readthrough"
	"github.com/amonks/musicareas/request"
)

// A Client fetches the feed from its URL, keeping the last good body in a
// read-through cache and respecting the host's rate limits.
type Client struct {
	url   string
	cache *readthrough.ReadThrough
	lim   *limiter.Limiter
}

func NewClient(url string, cache *readthrough.ReadThrough, lim *limiter.Limiter) *Client {
	return &Client{
		url:   url,
		cache: cache,
		lim:   lim,
	}
}

// Fetch downloads and parses the feed. Only a body that parses is cached, so
// Cached keeps returning the last good feed after a bad fetch.
func (c *Client) Fetch(ctx context.Context) ([]data.MusicAreaProfile, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return nil, err
	}
	defer c.lim.Delay()

	body, err := request.Get(ctx, c.url)
	var statusErr *request.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
		if err := c.lim.SetNextAt(statusErr.RetryAfter); err != nil {
			log.Printf("error arming limiter: %s", err)
		}
		return nil, fmt.Errorf("rate limited fetching feed: %w", err)
	} else if err != nil {
		return nil, err
	}

	bs, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return nil, fmt.Errorf("error reading feed from '%s': %w", c.url, err)
	}

	profiles, err := Parse(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("error parsing feed from '%s': %w", c.url, err)
	}

	cached, err := c.cache.Set(c.url, io.NopCloser(bytes.NewReader(bs)))
	if err != nil {
		return nil, err
	}
	cached.Close()

	log.Printf("fetched %d music areas from %s", len(profiles), c.url)
	return profiles, nil
}

// Cached parses the most recently fetched body without touching the network.
func (c *Client) Cached() ([]data.MusicAreaProfile, error) {
	r, err := c.cache.Get(c.url)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	profiles, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing cached feed for '%s': %w", c.url, err)
	}
	return profiles, nil
}
