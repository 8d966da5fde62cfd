// Package zosmfclient provides the main entry point for creating z/OSMF clients.
package zosmfclient

import (
	"context"
	"fmt"

	"github.com/wmcgee3/z-osmf-go/internal/client"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// New creates a new z/OSMF client from config.
func New(config *zosmf.Config) (zosmf.Client, error) {
	if config == nil {
		return nil, zosmf.ErrConfigRequired
	}

	zosmfClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return zosmfClient, nil
}

// NewWithEndpoint creates a new client with just a base URL (no credentials).
func NewWithEndpoint(endpoint string) (zosmf.Client, error) {
	return New(&zosmf.Config{
		BaseURL: endpoint,
	})
}

// NewWithPassword creates a new client with username/password credentials and
// establishes a session immediately.
func NewWithPassword(ctx context.Context, endpoint, username, password string) (zosmf.Client, error) {
	zosmfClient, err := New(&zosmf.Config{
		BaseURL:  endpoint,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	err = zosmfClient.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	return zosmfClient, nil
}
