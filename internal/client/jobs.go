package client

import (
	zosmfhttp "github.com/wmcgee3/z-osmf-go/internal/http"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// JobsClient implements zosmf.JobsClient.
type JobsClient struct {
	httpClient *zosmfhttp.Client
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(httpClient *zosmfhttp.Client) *JobsClient {
	return &JobsClient{httpClient: httpClient}
}

// List implements zosmf.JobsClient.List.
func (c *JobsClient) List() zosmf.JobListBuilder {
	return zosmf.NewJobListBuilder(c.httpClient)
}

// Status implements zosmf.JobsClient.Status.
func (c *JobsClient) Status(id zosmf.JobIdentifier) zosmf.JobStatusBuilder {
	return zosmf.NewJobStatusBuilder(c.httpClient, id)
}

// Submit implements zosmf.JobsClient.Submit.
func (c *JobsClient) Submit(source zosmf.JobSource) zosmf.JobSubmitBuilder {
	return zosmf.NewJobSubmitBuilder(c.httpClient, source)
}

// Files implements zosmf.JobsClient.Files.
func (c *JobsClient) Files(id zosmf.JobIdentifier) zosmf.JobFilesBuilder {
	return zosmf.NewJobFilesBuilder(c.httpClient, id)
}

// ReadFile implements zosmf.JobsClient.ReadFile.
func (c *JobsClient) ReadFile(id zosmf.JobIdentifier, file zosmf.JobFileID) zosmf.JobFileReadBuilder {
	return zosmf.NewJobFileReadBuilder(c.httpClient, id, file)
}

// Cancel implements zosmf.JobsClient.Cancel.
func (c *JobsClient) Cancel(id zosmf.JobIdentifier) zosmf.JobFeedbackBuilder {
	return zosmf.NewJobFeedbackBuilder(c.httpClient, id, "cancel")
}

// Hold implements zosmf.JobsClient.Hold.
func (c *JobsClient) Hold(id zosmf.JobIdentifier) zosmf.JobFeedbackBuilder {
	return zosmf.NewJobFeedbackBuilder(c.httpClient, id, "hold")
}

// Release implements zosmf.JobsClient.Release.
func (c *JobsClient) Release(id zosmf.JobIdentifier) zosmf.JobFeedbackBuilder {
	return zosmf.NewJobFeedbackBuilder(c.httpClient, id, "release")
}

// ChangeClass implements zosmf.JobsClient.ChangeClass.
func (c *JobsClient) ChangeClass(id zosmf.JobIdentifier, class rune) zosmf.JobFeedbackBuilder {
	return zosmf.NewJobClassBuilder(c.httpClient, id, class)
}

// CancelAndPurge implements zosmf.JobsClient.CancelAndPurge.
func (c *JobsClient) CancelAndPurge(id zosmf.JobIdentifier) zosmf.JobPurgeBuilder {
	return zosmf.NewJobPurgeBuilder(c.httpClient, id)
}
