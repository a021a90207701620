package request_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amonks/musicareas/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	body, err := request.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()

	bs, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(bs))
}

func TestGetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	_, err := request.Get(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *request.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "12", statusErr.RetryAfter)
	assert.Contains(t, statusErr.Dump, "slow down")
}

func TestGetCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := request.Get(ctx, "http://127.0.0.1:1")
	assert.ErrorIs(t, err, context.Canceled)
}
