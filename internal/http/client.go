// Package http provides the HTTP transport used by the z/OSMF client.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// SessionProvider supplies the session cookie attached to outgoing requests.
// An empty cookie means no session is established and the transport falls
// back to basic auth when credentials are configured.
type SessionProvider interface {
	Cookie() (string, bool)
}

// Client is an HTTP transport for z/OSMF. It implements zosmf.Executor.
type Client struct {
	baseURL      string
	session      SessionProvider
	httpClient   *retryablehttp.Client
	interceptors *zosmf.InterceptorChain
	username     string
	password     string
	userAgent    string
	logger       zosmf.Logger
	debug        bool
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// WithRetryConfig enables retries with the given limits. Retries are off by
// default.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax

		if retryWaitMin > 0 {
			c.httpClient.RetryWaitMin = retryWaitMin
		}

		if retryWaitMax > 0 {
			c.httpClient.RetryWaitMax = retryWaitMax
		}
	}
}

// WithTLSConfig sets the TLS configuration of the underlying transport.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		transport, ok := c.httpClient.HTTPClient.Transport.(*http.Transport)
		if !ok {
			transport = http.DefaultTransport.(*http.Transport).Clone()
		}

		transport.TLSClientConfig = tlsConfig
		c.httpClient.HTTPClient.Transport = transport
	}
}

// WithBasicAuth sets credentials used when no session cookie is available.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger.
func WithLogger(logger zosmf.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithInterceptors sets the interceptor chain run around every request.
func WithInterceptors(chain *zosmf.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new transport for the given z/OSMF endpoint.
func NewClient(baseURL string, session SessionProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		session:      session,
		httpClient:   retryClient,
		interceptors: zosmf.NewInterceptorChain(),
		userAgent:    "z-osmf-go",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// checkRetry follows the default retryablehttp policy except that
// authentication failures are never retried.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil &&
		(resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Do executes the request and returns the raw response. Responses with a
// non-success status are returned together with a *zosmf.Error decoded from
// the body.
func (c *Client) Do(ctx context.Context, req *zosmf.Request) (*zosmf.Response, error) {
	err := c.interceptors.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq, req, contentType)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &zosmf.TransportError{URL: fullURL, Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &zosmf.TransportError{URL: fullURL, Err: err}
	}

	resp := &zosmf.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
		URL:        fullURL,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		return resp, err
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, zosmf.ParseError(httpResp.StatusCode, fullURL, respBody)
	}

	return resp, nil
}

// encodeBody turns the request body into a reader and its content type.
func encodeBody(req *zosmf.Request) (io.Reader, string, error) {
	switch {
	case req.RawBody != nil:
		contentType := req.ContentType
		if contentType == "" {
			contentType = "text/plain"
		}

		return bytes.NewReader(req.RawBody), contentType, nil
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", err
		}

		return bytes.NewReader(data), "application/json", nil
	default:
		return nil, "", nil
	}
}

func (c *Client) setHeaders(httpReq *retryablehttp.Request, req *zosmf.Request, contentType string) {
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	// z/OSMF rejects requests without its CSRF header.
	httpReq.Header.Set("X-CSRF-ZOSMF-HEADER", "")

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, values := range req.Headers {
		httpReq.Header.Del(key)

		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	// A request that carries its own Authorization header, like Login, must
	// reach the server with exactly those credentials.
	if httpReq.Header.Get("Authorization") != "" {
		return
	}

	if cookie, ok := c.sessionCookie(); ok {
		httpReq.Header.Set("Cookie", cookie)
	} else if c.username != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}
}

func (c *Client) sessionCookie() (string, bool) {
	if c.session == nil {
		return "", false
	}

	return c.session.Cookie()
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*zosmf.Response, error) {
	return c.Do(ctx, &zosmf.Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*zosmf.Response, error) {
	return c.Do(ctx, &zosmf.Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*zosmf.Response, error) {
	return c.Do(ctx, &zosmf.Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*zosmf.Response, error) {
	return c.Do(ctx, &zosmf.Request{Method: http.MethodDelete, Path: path})
}
