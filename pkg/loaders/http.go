package loaders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vango-dev/routeview/pkg/routes"
)

// DefaultMaxBytes caps the size of a decoded document.
const DefaultMaxBytes = 4 << 20

// HTTPOptions configures HTTPJSON.
type HTTPOptions struct {
	// Client performs the request. Default: http.DefaultClient.
	Client *http.Client

	// Header is added to the request.
	Header http.Header

	// MaxBytes caps the response body. Default: DefaultMaxBytes.
	MaxBytes int64
}

// HTTPJSON returns a loader that GETs url and decodes the JSON body.
// Responses outside the 2xx range fail the loader.
func HTTPJSON(url string, opts HTTPOptions) routes.LoaderFunc {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	return func(ctx context.Context) (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		for k, vs := range opts.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := opts.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
		}
		return decodeJSON(io.LimitReader(resp.Body, opts.MaxBytes))
	}
}

func decodeJSON(r io.Reader) (any, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode loader data: %w", err)
	}
	return v, nil
}
