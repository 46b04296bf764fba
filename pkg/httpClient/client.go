package httpClient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient is the outbound client used by the submission flow.
type HTTPClient interface {
	// Get issues a GET against rawURL.
	Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error)

	// PostForm sends body as application/x-www-form-urlencoded.
	PostForm(ctx context.Context, rawURL, body string, headers map[string]string) (*Response, error)

	// PostJSON marshals body and sends it as application/json.
	PostJSON(ctx context.Context, rawURL string, body interface{}, headers map[string]string) (*Response, error)
}

type Client struct {
	client      *http.Client
	serviceName string
}

type ClientOption func(*Client)

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithServiceName sets the X-Service-Name header on every request.
func WithServiceName(name string) ClientOption {
	return func(c *Client) {
		c.serviceName = name
	}
}

// WithTransport replaces the round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.client.Transport = rt
	}
}

func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func getTraceIDFromContext(ctx context.Context) string {
	traceID, ok := GetTraceID(ctx)
	if !ok {
		traceID = uuid.New().String()
	}
	return traceID
}

func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil, "", headers)
}

func (c *Client) PostForm(ctx context.Context, rawURL, body string, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodPost, rawURL, strings.NewReader(body), ContentTypeFormURL, headers)
}

func (c *Client) PostJSON(ctx context.Context, rawURL string, body interface{}, headers map[string]string) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, bytes.NewReader(data), ContentTypeJSON, headers)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string, headers map[string]string) (*Response, error) {
	traceID := getTraceIDFromContext(ctx)

	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		httpReq.Header.Set(HeaderContentType, contentType)
	}
	httpReq.Header.Set(HeaderAccept, ContentTypeJSON)
	httpReq.Header.Set(HeaderTraceID, traceID)
	if c.serviceName != "" {
		httpReq.Header.Set(HeaderServiceName, c.serviceName)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		TraceID:    traceID,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Duration:   time.Since(start),
	}, nil
}
