package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	zosmfhttp "github.com/wmcgee3/z-osmf-go/internal/http"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

const workflowsRoot = "/zosmf/workflow/rest/1.0"

// WorkflowsClient implements zosmf.WorkflowsClient.
type WorkflowsClient struct {
	httpClient *zosmfhttp.Client
}

// NewWorkflowsClient creates a new workflows client.
func NewWorkflowsClient(httpClient *zosmfhttp.Client) *WorkflowsClient {
	return &WorkflowsClient{httpClient: httpClient}
}

// List implements zosmf.WorkflowsClient.List.
func (c *WorkflowsClient) List() zosmf.WorkflowListBuilder {
	return zosmf.NewWorkflowListBuilder(c.httpClient)
}

// Create implements zosmf.WorkflowsClient.Create.
func (c *WorkflowsClient) Create(name, definitionFile, system, owner string) zosmf.WorkflowCreateBuilder {
	return zosmf.NewWorkflowCreateBuilder(c.httpClient, name, definitionFile, system, owner)
}

// Properties implements zosmf.WorkflowsClient.Properties.
func (c *WorkflowsClient) Properties(key string) zosmf.WorkflowPropertiesBuilder {
	return zosmf.NewWorkflowPropertiesBuilder(c.httpClient, key)
}

// Start implements zosmf.WorkflowsClient.Start.
func (c *WorkflowsClient) Start(key string) zosmf.WorkflowStartBuilder {
	return zosmf.NewWorkflowStartBuilder(c.httpClient, key)
}

// Cancel implements zosmf.WorkflowsClient.Cancel.
func (c *WorkflowsClient) Cancel(ctx context.Context, key string) (*zosmf.WorkflowCancelResult, error) {
	req := &zosmf.Request{
		Method: http.MethodPut,
		Path:   workflowInstancePath(key) + "/operations/cancel",
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("canceling workflow %s: %w", key, err)
	}

	var result zosmf.WorkflowCancelResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, &zosmf.DecodeError{URL: resp.URL, Err: err}
	}

	return &result, nil
}

// Delete implements zosmf.WorkflowsClient.Delete.
func (c *WorkflowsClient) Delete(ctx context.Context, key string) error {
	_, err := c.httpClient.Delete(ctx, workflowInstancePath(key))
	if err != nil {
		return fmt.Errorf("deleting workflow %s: %w", key, err)
	}

	return nil
}

// Archive implements zosmf.WorkflowsClient.Archive.
func (c *WorkflowsClient) Archive(ctx context.Context, key string) (*zosmf.WorkflowArchiveResult, error) {
	req := &zosmf.Request{
		Method: http.MethodPost,
		Path:   workflowInstancePath(key) + "/operations/archive",
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("archiving workflow %s: %w", key, err)
	}

	var result zosmf.WorkflowArchiveResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, &zosmf.DecodeError{URL: resp.URL, Err: err}
	}

	return &result, nil
}

// ListArchived implements zosmf.WorkflowsClient.ListArchived.
func (c *WorkflowsClient) ListArchived() zosmf.ArchivedWorkflowListBuilder {
	return zosmf.NewArchivedWorkflowListBuilder(c.httpClient)
}

// PropertiesArchived implements zosmf.WorkflowsClient.PropertiesArchived.
func (c *WorkflowsClient) PropertiesArchived(key string) zosmf.WorkflowPropertiesBuilder {
	return zosmf.NewArchivedWorkflowPropertiesBuilder(c.httpClient, key)
}

// DeleteArchived implements zosmf.WorkflowsClient.DeleteArchived.
func (c *WorkflowsClient) DeleteArchived(ctx context.Context, key string) error {
	_, err := c.httpClient.Delete(ctx, workflowsRoot+"/archivedworkflows/"+url.PathEscape(key))
	if err != nil {
		return fmt.Errorf("deleting archived workflow %s: %w", key, err)
	}

	return nil
}

func workflowInstancePath(key string) string {
	return workflowsRoot + "/workflows/" + url.PathEscape(key)
}
