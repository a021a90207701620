package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
)

// Get does an HTTP GET on the given URL and returns the body of a successful
// response. The caller must close it.
func Get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request for '%s': %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching '%s': %w", url, err)
	}
	if err := Error(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status from '%s': %w", url, err)
	}

	return resp.Body, nil
}

// A StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int

	// The raw Retry-After header, if any.
	RetryAfter string

	Dump string
}

func (err *StatusError) Error() string {
	if err.Dump == "" {
		return fmt.Sprintf("http status code %d", err.StatusCode)
	}
	return fmt.Sprintf("http status code %d:\n%s", err.StatusCode, err.Dump)
}

// Error checks the given http response for an error code, and, if one is
// present, reads the body and returns a friendly error.
func Error(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		RetryAfter: resp.Header.Get("Retry-After"),
	}
	bs, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return fmt.Errorf("%w; error decoding body: %w", statusErr, err)
	}
	statusErr.Dump = string(bs)
	return statusErr
}
