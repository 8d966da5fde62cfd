package client

import (
	"context"
	"fmt"
	"net/http"

	zosmfhttp "github.com/wmcgee3/z-osmf-go/internal/http"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// DatasetsClient implements zosmf.DatasetsClient.
type DatasetsClient struct {
	httpClient *zosmfhttp.Client
}

// NewDatasetsClient creates a new datasets client.
func NewDatasetsClient(httpClient *zosmfhttp.Client) *DatasetsClient {
	return &DatasetsClient{httpClient: httpClient}
}

// List implements zosmf.DatasetsClient.List.
func (c *DatasetsClient) List(pattern string) zosmf.DatasetListBuilder {
	return zosmf.NewDatasetListBuilder(c.httpClient, pattern)
}

// Members implements zosmf.DatasetsClient.Members.
func (c *DatasetsClient) Members(dataset string) zosmf.MemberListBuilder {
	return zosmf.NewMemberListBuilder(c.httpClient, dataset)
}

// Read implements zosmf.DatasetsClient.Read.
func (c *DatasetsClient) Read(dataset string) zosmf.DatasetReadBuilder {
	return zosmf.NewDatasetReadBuilder(c.httpClient, dataset)
}

// Write implements zosmf.DatasetsClient.Write.
func (c *DatasetsClient) Write(dataset string, data []byte) zosmf.DatasetWriteBuilder {
	return zosmf.NewDatasetWriteBuilder(c.httpClient, dataset, data)
}

// Create implements zosmf.DatasetsClient.Create.
func (c *DatasetsClient) Create(ctx context.Context, dataset string, attrs *zosmf.DatasetCreateRequest) error {
	_, err := c.httpClient.Post(ctx, zosmf.DatasetPath("", dataset, ""), attrs)
	if err != nil {
		return fmt.Errorf("creating dataset %s: %w", dataset, err)
	}

	return nil
}

// Delete implements zosmf.DatasetsClient.Delete.
func (c *DatasetsClient) Delete(dataset string) zosmf.DatasetDeleteBuilder {
	return zosmf.NewDatasetDeleteBuilder(c.httpClient, dataset)
}

// Rename implements zosmf.DatasetsClient.Rename. The request is addressed to
// the new name; the old name rides in the body.
func (c *DatasetsClient) Rename(ctx context.Context, from, to string) error {
	req := &zosmf.Request{
		Method: http.MethodPut,
		Path:   zosmf.DatasetPath("", to, ""),
		Body: map[string]interface{}{
			"request":      "rename",
			"from-dataset": map[string]string{"dsn": from},
		},
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("renaming dataset %s to %s: %w", from, to, err)
	}

	return nil
}

// Migrate implements zosmf.DatasetsClient.Migrate.
func (c *DatasetsClient) Migrate(dataset string) zosmf.DatasetMigrateBuilder {
	return zosmf.NewDatasetMigrateBuilder(c.httpClient, dataset)
}

// Recall implements zosmf.DatasetsClient.Recall.
func (c *DatasetsClient) Recall(dataset string) zosmf.DatasetRecallBuilder {
	return zosmf.NewDatasetRecallBuilder(c.httpClient, dataset)
}

// Copy implements zosmf.DatasetsClient.Copy.
func (c *DatasetsClient) Copy(from, to string) zosmf.DatasetCopyBuilder {
	return zosmf.NewDatasetCopyBuilder(c.httpClient, from, to)
}
