package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amonks/musicareas/feed"
	"github.com/amonks/musicareas/limiter"
	"github.com/amonks/musicareas/readthrough"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, url string) (*feed.Client, *limiter.Limiter) {
	dir := t.TempDir()
	lim := limiter.New(filepath.Join(dir, "next-req"), 0)
	cache := readthrough.New(filepath.Join(dir, "cache"), "feed-")
	return feed.NewClient(url, cache, lim), lim
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sample))
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	_, err := client.Cached()
	assert.ErrorIs(t, err, readthrough.ErrMiss)

	profiles, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "forest_theme", profiles[0].ID())

	srv.Close()
	cached, err := client.Cached()
	require.NoError(t, err)
	assert.Equal(t, profiles, cached)
}

func TestClientFetchRateLimited(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, lim := newClient(t, srv.URL)

	before := time.Now()
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.WithinDuration(t, before.Add(121*time.Second), lim.NextAt(), 2*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = client.Fetch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClientFetchInvalidFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"id": "a"}]`))
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, feed.ErrMissingTrack)
}

func TestClientBadFetchKeepsLastGoodFeed(t *testing.T) {
	var body atomic.Value
	body.Store(sample)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(body.Load().(string)))
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	good, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, good, 2)

	body.Store(`[{"id": "a"}]`)
	_, err = client.Fetch(context.Background())
	assert.ErrorIs(t, err, feed.ErrMissingTrack)

	body.Store(`null`)
	_, err = client.Fetch(context.Background())
	assert.ErrorIs(t, err, feed.ErrNotArray)

	cached, err := client.Cached()
	require.NoError(t, err)
	assert.Equal(t, good, cached)
}

func TestClientBadFirstFetchCachesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, feed.ErrNotArray)

	_, err = client.Cached()
	assert.ErrorIs(t, err, readthrough.ErrMiss)
}
