package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	zosmfhttp "github.com/wmcgee3/z-osmf-go/internal/http"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// FilesClient implements zosmf.FilesClient.
type FilesClient struct {
	httpClient *zosmfhttp.Client
}

// NewFilesClient creates a new USS files client.
func NewFilesClient(httpClient *zosmfhttp.Client) *FilesClient {
	return &FilesClient{httpClient: httpClient}
}

// List implements zosmf.FilesClient.List.
func (c *FilesClient) List(path string) zosmf.FileListBuilder {
	return zosmf.NewFileListBuilder(c.httpClient, path)
}

// Read implements zosmf.FilesClient.Read.
func (c *FilesClient) Read(path string) zosmf.FileReadBuilder {
	return zosmf.NewFileReadBuilder(c.httpClient, path)
}

// Write implements zosmf.FilesClient.Write.
func (c *FilesClient) Write(path string, data []byte) zosmf.FileWriteBuilder {
	return zosmf.NewFileWriteBuilder(c.httpClient, path, data)
}

// Create implements zosmf.FilesClient.Create.
func (c *FilesClient) Create(ctx context.Context, path string, attrs *zosmf.FileCreateRequest) error {
	if path == "" {
		return zosmf.ErrPathRequired
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req := &zosmf.Request{
		Method: http.MethodPost,
		Path:   "/zosmf/restfiles/fs" + path,
		Body:   attrs,
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	return nil
}

// Delete implements zosmf.FilesClient.Delete.
func (c *FilesClient) Delete(path string) zosmf.FileDeleteBuilder {
	return zosmf.NewFileDeleteBuilder(c.httpClient, path)
}

// ChangeMode implements zosmf.FilesClient.ChangeMode.
func (c *FilesClient) ChangeMode(path, mode string) zosmf.FileChangeModeBuilder {
	return zosmf.NewFileChangeModeBuilder(c.httpClient, path, mode)
}

// ChangeOwner implements zosmf.FilesClient.ChangeOwner.
func (c *FilesClient) ChangeOwner(path, owner string) zosmf.FileChangeOwnerBuilder {
	return zosmf.NewFileChangeOwnerBuilder(c.httpClient, path, owner)
}

// SetTag implements zosmf.FilesClient.SetTag.
func (c *FilesClient) SetTag(path string) zosmf.FileSetTagBuilder {
	return zosmf.NewFileSetTagBuilder(c.httpClient, path)
}

// RemoveTag implements zosmf.FilesClient.RemoveTag.
func (c *FilesClient) RemoveTag(path string) zosmf.FileRemoveTagBuilder {
	return zosmf.NewFileRemoveTagBuilder(c.httpClient, path)
}

// ListTags implements zosmf.FilesClient.ListTags.
func (c *FilesClient) ListTags(path string) zosmf.FileListTagsBuilder {
	return zosmf.NewFileListTagsBuilder(c.httpClient, path)
}

// Copy implements zosmf.FilesClient.Copy.
func (c *FilesClient) Copy(from, to string) zosmf.FileCopyBuilder {
	return zosmf.NewFileCopyBuilder(c.httpClient, from, to)
}

// Rename implements zosmf.FilesClient.Rename.
func (c *FilesClient) Rename(from, to string) zosmf.FileRenameBuilder {
	return zosmf.NewFileRenameBuilder(c.httpClient, from, to)
}

// Link implements zosmf.FilesClient.Link.
func (c *FilesClient) Link(source, target string) zosmf.FileLinkBuilder {
	return zosmf.NewFileLinkBuilder(c.httpClient, source, target)
}

// Unlink implements zosmf.FilesClient.Unlink.
func (c *FilesClient) Unlink(ctx context.Context, path string) error {
	if path == "" {
		return zosmf.ErrPathRequired
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req := &zosmf.Request{
		Method: http.MethodPut,
		Path:   "/zosmf/restfiles/fs" + path,
		Body:   map[string]string{"request": "unlink"},
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("unlinking %s: %w", path, err)
	}

	return nil
}
