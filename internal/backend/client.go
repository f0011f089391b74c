// Package backend holds the HTTP clients for the three services the
// shopfront consumes: catalog, orders and payments. Each client carries its
// own base URL; the optional bearer credential is passed in explicitly
// rather than read from ambient state.
package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type options struct {
	token string
}

type Option func(*options)

// WithBearerToken attaches the credential as an Authorization header on
// every outgoing request.
func WithBearerToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func authorize(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func jsonBody(v any) (*bytes.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(data), nil
}
