package zosmf

import (
	"context"
	"net/http"
	"time"
)

// Client is the top-level handle for a z/OSMF instance.
//
// A Client is created once, authenticated with Login, and then shared for
// read-only use across goroutines. Login and Logout mutate the stored session
// credential and must not race with in-flight requests.
type Client interface {
	// Login authenticates with z/OSMF using basic credentials and stores the
	// returned session cookie for subsequent requests.
	Login(ctx context.Context, username, password string) error

	// Logout invalidates the session server-side and clears the stored cookie.
	//
	// Logging out before an action has completed, like immediately after
	// submitting a job, can cause the action to fail.
	Logout(ctx context.Context) error

	// Info retrieves information about the z/OSMF instance.
	Info(ctx context.Context) (*Info, error)

	Datasets() DatasetsClient
	Files() FilesClient
	Jobs() JobsClient
	Variables() VariablesClient
	Workflows() WorkflowsClient
}

// DatasetsClient provides access to the z/OSMF dataset services
// (/zosmf/restfiles/ds).
type DatasetsClient interface {
	// List returns a builder for listing catalogued datasets matching the
	// given name pattern (the dslevel query parameter).
	List(pattern string) DatasetListBuilder

	// Members returns a builder for listing the members of a partitioned
	// dataset.
	Members(dataset string) MemberListBuilder

	// Read returns a builder for retrieving dataset content.
	Read(dataset string) DatasetReadBuilder

	// Write returns a builder for replacing dataset content.
	Write(dataset string, data []byte) DatasetWriteBuilder

	// Create allocates a new dataset.
	Create(ctx context.Context, dataset string, attrs *DatasetCreateRequest) error

	// Delete returns a builder for removing a dataset or member.
	Delete(dataset string) DatasetDeleteBuilder

	// Rename renames a dataset.
	Rename(ctx context.Context, from, to string) error

	// Migrate returns a builder for migrating a dataset out of primary
	// storage.
	Migrate(dataset string) DatasetMigrateBuilder

	// Recall returns a builder for recalling a migrated dataset.
	Recall(dataset string) DatasetRecallBuilder

	// Copy returns a builder for copying a dataset or member into another
	// dataset.
	Copy(from, to string) DatasetCopyBuilder
}

// FilesClient provides access to the z/OSMF USS file services
// (/zosmf/restfiles/fs).
type FilesClient interface {
	// List returns a builder for listing files and directories under a path.
	List(path string) FileListBuilder

	// Read returns a builder for retrieving file content.
	Read(path string) FileReadBuilder

	// Write returns a builder for replacing file content.
	Write(path string, data []byte) FileWriteBuilder

	// Create creates a file or directory.
	Create(ctx context.Context, path string, attrs *FileCreateRequest) error

	// Delete returns a builder for removing a file or directory.
	Delete(path string) FileDeleteBuilder

	// ChangeMode returns a builder for changing file permissions (chmod).
	ChangeMode(path, mode string) FileChangeModeBuilder

	// ChangeOwner returns a builder for changing file ownership (chown).
	ChangeOwner(path, owner string) FileChangeOwnerBuilder

	// SetTag, RemoveTag, and ListTags manage file tags (chtag).
	SetTag(path string) FileSetTagBuilder
	RemoveTag(path string) FileRemoveTagBuilder
	ListTags(path string) FileListTagsBuilder

	// Copy returns a builder for copying a file or directory.
	Copy(from, to string) FileCopyBuilder

	// Rename returns a builder for moving a file or directory.
	Rename(from, to string) FileRenameBuilder

	// Link returns a builder for creating a symbolic or hard link.
	Link(source, target string) FileLinkBuilder

	// Unlink removes a symbolic link without following it.
	Unlink(ctx context.Context, path string) error
}

// JobsClient provides access to the z/OSMF job services
// (/zosmf/restjobs/jobs).
type JobsClient interface {
	// List returns a builder for listing jobs. Owner defaults to the
	// authenticated user server-side; pass "*" to list all owners.
	List() JobListBuilder

	// Status returns a builder for retrieving the status of one job.
	Status(id JobIdentifier) JobStatusBuilder

	// Submit returns a builder for submitting JCL to the internal reader.
	Submit(source JobSource) JobSubmitBuilder

	// Files returns a builder for listing a job's spool files.
	Files(id JobIdentifier) JobFilesBuilder

	// ReadFile returns a builder for reading one spool file's records.
	ReadFile(id JobIdentifier, file JobFileID) JobFileReadBuilder

	// Cancel, Hold, and Release request the corresponding state change and
	// return the server's feedback document.
	Cancel(id JobIdentifier) JobFeedbackBuilder
	Hold(id JobIdentifier) JobFeedbackBuilder
	Release(id JobIdentifier) JobFeedbackBuilder

	// ChangeClass moves the job to another message class.
	ChangeClass(id JobIdentifier, class rune) JobFeedbackBuilder

	// CancelAndPurge cancels the job and purges its output.
	CancelAndPurge(id JobIdentifier) JobPurgeBuilder
}

// VariablesClient provides a narrow key-value interface over the z/OSMF
// system variable services (/zosmf/variables/rest/1.0).
type VariablesClient interface {
	// List returns a builder for listing the variables of a system.
	List(system SystemID) VariableListBuilder

	// Create defines or updates variables on a system.
	Create(ctx context.Context, sysplex, system string, variables []NewVariable) error

	// Delete removes variables from a system by name.
	Delete(ctx context.Context, sysplex, system string, names []string) error

	// Symbols lists the static system symbols of the local system.
	Symbols(ctx context.Context) ([]Symbol, error)
}

// WorkflowsClient provides access to the z/OSMF workflow services
// (/zosmf/workflow/rest/1.0).
type WorkflowsClient interface {
	// List returns a builder for listing workflow instances.
	List() WorkflowListBuilder

	// Create returns a builder registering a workflow instance from a
	// definition file on the given system for the given owner.
	Create(name, definitionFile, system, owner string) WorkflowCreateBuilder

	// Properties returns a builder for retrieving one workflow instance.
	Properties(key string) WorkflowPropertiesBuilder

	// Start returns a builder that starts or resumes automated processing.
	Start(key string) WorkflowStartBuilder

	// Cancel stops an in-progress workflow.
	Cancel(ctx context.Context, key string) (*WorkflowCancelResult, error)

	// Delete removes a workflow instance.
	Delete(ctx context.Context, key string) error

	// Archive moves a completed or canceled workflow to the archive.
	Archive(ctx context.Context, key string) (*WorkflowArchiveResult, error)

	// ListArchived returns a builder for listing archived workflows.
	ListArchived() ArchivedWorkflowListBuilder

	// PropertiesArchived returns a builder for retrieving one archived
	// workflow.
	PropertiesArchived(key string) WorkflowPropertiesBuilder

	// DeleteArchived removes an archived workflow.
	DeleteArchived(ctx context.Context, key string) error
}

// Logger is the logging interface consumed by the client. Implementations
// adapt whatever logging library the application uses.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a zosmf.Client.
//
// # Authentication
//
// Login/Logout manage a session cookie. If Username and Password are set,
// requests made before Login (or after the session expires) fall back to
// HTTP basic auth. There is no automatic refresh: an expired session surfaces
// as an authentication error and the caller re-authenticates.
//
// # Timeouts, retries, and TLS
//
// Per-request timeouts are controlled via the context passed to client
// methods. The transport performs no retries unless RetryMax is set, and
// never retries authentication failures. SkipTLSVerify is only honored when
// the environment variable ZOSMF_DEV_MODE is set to "true" or "1"; do not use
// it in production.
type Config struct {
	// BaseURL is the z/OSMF endpoint, e.g. "https://zosmf.example.com".
	// A trailing slash is trimmed; "https://" is assumed if no scheme is
	// present.
	BaseURL string

	// Username and Password enable basic-auth fallback for requests issued
	// without an established session.
	Username string
	Password string

	// CertificatePath optionally points at a PEM bundle to trust in addition
	// to the system roots.
	CertificatePath string

	// SkipTLSVerify disables certificate verification (dev mode only).
	SkipTLSVerify bool

	// Retry tuning for the underlying transport. Zero values mean no retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// HTTPClient overrides the underlying HTTP client. Connection pooling,
	// proxies, and socket timeouts are configured here.
	HTTPClient *http.Client

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// Logger receives debug/error logging. Nil disables logging.
	Logger Logger
}
