package client

import (
	"context"
	"encoding/json"
	"fmt"

	zosmfhttp "github.com/wmcgee3/z-osmf-go/internal/http"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// VariablesClient implements zosmf.VariablesClient.
type VariablesClient struct {
	httpClient *zosmfhttp.Client
}

// NewVariablesClient creates a new system variables client.
func NewVariablesClient(httpClient *zosmfhttp.Client) *VariablesClient {
	return &VariablesClient{httpClient: httpClient}
}

// List implements zosmf.VariablesClient.List.
func (c *VariablesClient) List(system zosmf.SystemID) zosmf.VariableListBuilder {
	return zosmf.NewVariableListBuilder(c.httpClient, system)
}

// Create implements zosmf.VariablesClient.Create. Variables that already
// exist are updated in place.
func (c *VariablesClient) Create(ctx context.Context, sysplex, system string, variables []zosmf.NewVariable) error {
	if len(variables) == 0 {
		return zosmf.ErrVariablesRequired
	}

	_, err := c.httpClient.Do(ctx, zosmf.NewVariableCreateRequest(sysplex, system, variables))
	if err != nil {
		return fmt.Errorf("creating variables: %w", err)
	}

	return nil
}

// Delete implements zosmf.VariablesClient.Delete.
func (c *VariablesClient) Delete(ctx context.Context, sysplex, system string, names []string) error {
	if len(names) == 0 {
		return zosmf.ErrVariablesRequired
	}

	_, err := c.httpClient.Do(ctx, zosmf.NewVariableDeleteRequest(sysplex, system, names))
	if err != nil {
		return fmt.Errorf("deleting variables: %w", err)
	}

	return nil
}

// Symbols implements zosmf.VariablesClient.Symbols.
func (c *VariablesClient) Symbols(ctx context.Context) ([]zosmf.Symbol, error) {
	resp, err := c.httpClient.Do(ctx, zosmf.NewSymbolListRequest())
	if err != nil {
		return nil, fmt.Errorf("listing symbols: %w", err)
	}

	var list zosmf.SymbolList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, &zosmf.DecodeError{URL: resp.URL, Err: err}
	}

	return list.Items, nil
}
