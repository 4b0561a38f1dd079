package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Headers the gateway passes through to the server untouched.
var forwardedHeaders = []string{
	"Content-Type",
	"X-Sharer-User-Id",
	"X-Request-Id",
	"Idempotency-Key",
}

// ServerClient forwards validated gateway requests to the ShareIt server.
type ServerClient struct {
	httpClient *HttpClient
}

func NewServerClient(httpClient *HttpClient) *ServerClient {
	return &ServerClient{httpClient: httpClient}
}

// Forward replays method, path, query and body against the server and
// returns its response unchanged.
func (c *ServerClient) Forward(ctx context.Context, r *http.Request, body []byte) (*Response, error) {
	path := r.URL.Path
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}
	return c.httpClient.Do(ctx, r.Method, path, body, ForwardHeaders(r.Header))
}

// ForwardHeaders copies the headers the server cares about.
func ForwardHeaders(src http.Header) http.Header {
	dst := make(http.Header, len(forwardedHeaders))
	for _, name := range forwardedHeaders {
		if value := src.Get(name); value != "" {
			dst.Set(name, value)
		}
	}
	return dst
}

// Ping reports whether the server answers its health endpoint.
func (c *ServerClient) Ping(ctx context.Context) error {
	resp, err := c.httpClient.GET(ctx, "/health", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server health returned status %d", resp.StatusCode)
	}
	return nil
}

// WaitForHealthy blocks until the server's health endpoint answers or maxWait
// elapses.
func (c *ServerClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(ctx, maxWait)
}
