// Package client implements the zosmf.Client interface.
package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/wmcgee3/z-osmf-go/internal/auth"
	zosmfhttp "github.com/wmcgee3/z-osmf-go/internal/http"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

const (
	authenticatePath    = "/zosmf/services/authenticate"
	infoPath            = "/zosmf/info"
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 30 * time.Second
)

// Client implements zosmf.Client.
type Client struct {
	httpClient *zosmfhttp.Client
	session    *auth.Session
	baseURL    string
	logger     zosmf.Logger

	// Resource clients
	datasets  zosmf.DatasetsClient
	files     zosmf.FilesClient
	jobs      zosmf.JobsClient
	variables zosmf.VariablesClient
	workflows zosmf.WorkflowsClient
}

// New creates a new z/OSMF client from config.
func New(config *zosmf.Config) (*Client, error) {
	if config == nil {
		return nil, zosmf.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, zosmf.ErrBaseURLRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession()
	httpClient := zosmfhttp.NewClient(normalizeBaseURL(config.BaseURL), session, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		session:    session,
		baseURL:    normalizeBaseURL(config.BaseURL),
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// normalizeBaseURL trims a trailing slash and assumes https when no scheme is
// given.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")

	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *zosmf.Config) ([]zosmfhttp.Option, error) {
	var httpOpts []zosmfhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, zosmfhttp.WithLogger(config.Logger), zosmfhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, zosmfhttp.WithUserAgent(config.UserAgent))
	}

	if config.Username != "" {
		httpOpts = append(httpOpts, zosmfhttp.WithBasicAuth(config.Username, config.Password))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, zosmfhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.RetryMax > 0 {
		retryWaitMin := defaultRetryWaitMin
		retryWaitMax := defaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, zosmfhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	tlsConfig, err := createTLSConfig(config)
	if err != nil {
		return nil, err
	}

	if tlsConfig != nil {
		httpOpts = append(httpOpts, zosmfhttp.WithTLSConfig(tlsConfig))
	}

	return httpOpts, nil
}

// createTLSConfig builds the TLS configuration from config. Certificate
// verification can only be disabled in dev mode.
func createTLSConfig(config *zosmf.Config) (*tls.Config, error) {
	if !config.SkipTLSVerify && config.CertificatePath == "" {
		return nil, nil
	}

	if config.SkipTLSVerify && !isDevMode() {
		return nil, zosmf.ErrSkipTLSOnlyInDev
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: config.SkipTLSVerify, //nolint:gosec // gated on dev mode above
	}

	if config.CertificatePath != "" {
		pem, err := os.ReadFile(config.CertificatePath)
		if err != nil {
			return nil, fmt.Errorf("reading certificate bundle: %w", err)
		}

		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}

		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("parsing certificate bundle %s: no certificates found", config.CertificatePath)
		}

		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}

func isDevMode() bool {
	devMode := os.Getenv("ZOSMF_DEV_MODE")

	return devMode == "true" || devMode == "1"
}

// Login implements zosmf.Client.Login.
func (c *Client) Login(ctx context.Context, username, password string) error {
	req := &zosmf.Request{
		Method:  http.MethodPost,
		Path:    authenticatePath,
		Headers: http.Header{"Authorization": []string{basicAuthHeader(username, password)}},
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	cookie, ok := auth.CookieFromHeaders(resp.Headers)
	if !ok {
		return zosmf.ErrNoSessionCookie
	}

	c.session.Set(cookie, resp.SessionRef())

	return nil
}

func basicAuthHeader(username, password string) string {
	req := &http.Request{Header: http.Header{}}
	req.SetBasicAuth(username, password)

	return req.Header.Get("Authorization")
}

// Logout implements zosmf.Client.Logout. The stored session is cleared even
// when the server-side invalidation fails.
func (c *Client) Logout(ctx context.Context) error {
	if _, ok := c.session.Cookie(); !ok {
		return zosmf.ErrNotAuthenticated
	}

	_, err := c.httpClient.Delete(ctx, authenticatePath)

	c.session.Clear()

	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	return nil
}

// Info implements zosmf.Client.Info.
func (c *Client) Info(ctx context.Context) (*zosmf.Info, error) {
	resp, err := c.httpClient.Get(ctx, infoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("getting info: %w", err)
	}

	var info zosmf.Info

	err = json.Unmarshal(resp.Body, &info)
	if err != nil {
		return nil, &zosmf.DecodeError{URL: resp.URL, Err: err}
	}

	return &info, nil
}

// Resource client accessors

// Datasets implements zosmf.Client.Datasets.
func (c *Client) Datasets() zosmf.DatasetsClient {
	return c.datasets
}

// Files implements zosmf.Client.Files.
func (c *Client) Files() zosmf.FilesClient {
	return c.files
}

// Jobs implements zosmf.Client.Jobs.
func (c *Client) Jobs() zosmf.JobsClient {
	return c.jobs
}

// Variables implements zosmf.Client.Variables.
func (c *Client) Variables() zosmf.VariablesClient {
	return c.variables
}

// Workflows implements zosmf.Client.Workflows.
func (c *Client) Workflows() zosmf.WorkflowsClient {
	return c.workflows
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.datasets = NewDatasetsClient(c.httpClient)
	c.files = NewFilesClient(c.httpClient)
	c.jobs = NewJobsClient(c.httpClient)
	c.variables = NewVariablesClient(c.httpClient)
	c.workflows = NewWorkflowsClient(c.httpClient)
}
