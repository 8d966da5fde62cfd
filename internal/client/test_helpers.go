package client

import (
	"github.com/wmcgee3/z-osmf-go/internal/auth"
	internalhttp "github.com/wmcgee3/z-osmf-go/internal/http"
)

// NewTestClient creates a client against the given base URL with no
// credentials configured.
func NewTestClient(baseURL string) *Client {
	session := auth.NewSession()
	httpClient := internalhttp.NewClient(baseURL, session)

	client := &Client{
		httpClient: httpClient,
		session:    session,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}
