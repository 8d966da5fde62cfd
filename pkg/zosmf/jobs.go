package zosmf

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Job describes a batch job as reported by the z/OSMF job services. The
// exec-data fields are only populated when the request asked for them.
type Job struct {
	ID               string `json:"jobid"                       yaml:"jobid"`
	Name             string `json:"jobname"                     yaml:"jobname"`
	Owner            string `json:"owner"                       yaml:"owner"`
	Subsystem        string `json:"subsystem,omitempty"         yaml:"subsystem,omitempty"`
	Status           string `json:"status,omitempty"            yaml:"status,omitempty"`
	Type             string `json:"type,omitempty"              yaml:"type,omitempty"`
	Class            string `json:"class"                       yaml:"class"`
	ReturnCode       string `json:"retcode,omitempty"           yaml:"retcode,omitempty"`
	URL              string `json:"url"                         yaml:"url"`
	FilesURL         string `json:"files-url"                   yaml:"files-url"`
	Correlator       string `json:"job-correlator,omitempty"    yaml:"job-correlator,omitempty"`
	Phase            int    `json:"phase"                       yaml:"phase"`
	PhaseName        string `json:"phase-name"                  yaml:"phase-name"`
	ReasonNotRunning string `json:"reason-not-running,omitempty" yaml:"reason-not-running,omitempty"`

	ExecSystem    string `json:"exec-system,omitempty"    yaml:"exec-system,omitempty"`
	ExecMember    string `json:"exec-member,omitempty"    yaml:"exec-member,omitempty"`
	ExecSubmitted string `json:"exec-submitted,omitempty" yaml:"exec-submitted,omitempty"`
	ExecStarted   string `json:"exec-started,omitempty"   yaml:"exec-started,omitempty"`
	ExecEnded     string `json:"exec-ended,omitempty"     yaml:"exec-ended,omitempty"`
}

// Job status values reported by z/OSMF.
const (
	JobStatusInput  = "INPUT"
	JobStatusActive = "ACTIVE"
	JobStatusOutput = "OUTPUT"
)

// Identifier returns the name/id identifier of the job.
func (j *Job) Identifier() JobIdentifier {
	return JobID(j.Name, j.ID)
}

// JobList is the response of a job list operation. z/OSMF returns a bare
// array; item order matches the server response.
type JobList struct {
	Items []Job `json:"items" yaml:"items"`
}

// JobIdentifier addresses one job, either by name and id or by its job
// correlator.
type JobIdentifier struct {
	name       string
	id         string
	correlator string
}

// JobID identifies a job by its name and id, e.g. ("TESTJOB", "JOB00023").
func JobID(name, id string) JobIdentifier {
	return JobIdentifier{name: name, id: id}
}

// JobCorrelator identifies a job by its correlator.
func JobCorrelator(correlator string) JobIdentifier {
	return JobIdentifier{correlator: correlator}
}

// Valid reports whether the identifier addresses a job.
func (j JobIdentifier) Valid() bool {
	return j.correlator != "" || (j.name != "" && j.id != "")
}

// String renders the identifier as the path segment z/OSMF expects.
func (j JobIdentifier) String() string {
	if j.correlator != "" {
		return url.PathEscape(j.correlator)
	}

	return url.PathEscape(j.name) + "/" + url.PathEscape(j.id)
}

// JobFile describes one spool file of a job.
type JobFile struct {
	ID           int    `json:"id"                 yaml:"id"`
	DDName       string `json:"ddname"             yaml:"ddname"`
	StepName     string `json:"stepname,omitempty" yaml:"stepname,omitempty"`
	ProcStep     string `json:"procstep,omitempty" yaml:"procstep,omitempty"`
	Class        string `json:"class"              yaml:"class"`
	RecordFormat string `json:"recfm"              yaml:"recfm"`
	RecordLength int    `json:"lrecl"              yaml:"lrecl"`
	ByteCount    int    `json:"byte-count"         yaml:"byte-count"`
	RecordCount  int    `json:"record-count"       yaml:"record-count"`
	RecordsURL   string `json:"records-url"        yaml:"records-url"`
	JobID        string `json:"jobid"              yaml:"jobid"`
	JobName      string `json:"jobname"            yaml:"jobname"`
	Subsystem    string `json:"subsystem,omitempty" yaml:"subsystem,omitempty"`
}

// JobFileList is the response of a spool file list operation.
type JobFileList struct {
	Items []JobFile `json:"items" yaml:"items"`
}

// JobFileID addresses one spool file, either by numeric id or the job's JCL.
type JobFileID struct {
	id  int
	jcl bool
}

// SpoolFileID addresses a spool file by id.
func SpoolFileID(id int) JobFileID {
	return JobFileID{id: id}
}

// JCLFileID addresses the job's input JCL.
func JCLFileID() JobFileID {
	return JobFileID{jcl: true}
}

// String renders the file id as a path segment.
func (f JobFileID) String() string {
	if f.jcl {
		return "JCL"
	}

	return strconv.Itoa(f.id)
}

// SpoolContent is the result of a spool file read.
type SpoolContent struct {
	Data          []byte
	TransactionID string
}

// String returns the records as text.
func (c *SpoolContent) String() string {
	return string(c.Data)
}

// JobFeedback is the server's response to a job hold/release/cancel/class
// request.
type JobFeedback struct {
	JobID         string `json:"jobid"                    yaml:"jobid"`
	JobName       string `json:"jobname"                  yaml:"jobname"`
	OriginalJobID string `json:"original-jobid,omitempty" yaml:"original-jobid,omitempty"`
	Owner         string `json:"owner"                    yaml:"owner"`
	Member        string `json:"member"                   yaml:"member"`
	SystemName    string `json:"sysname"                  yaml:"sysname"`
	Correlator    string `json:"job-correlator"           yaml:"job-correlator"`
	Status        string `json:"status"                   yaml:"status"`
	InternalCode  string `json:"internal-code,omitempty"  yaml:"internal-code,omitempty"`
	Message       string `json:"message,omitempty"        yaml:"message,omitempty"`
}

// JobSource is the source of JCL for a submit operation: inline text, a
// dataset, or a USS file.
type JobSource struct {
	jcl     []byte
	dataset string
	file    string
}

// JCLSource submits inline JCL text.
func JCLSource(jcl string) JobSource {
	return JobSource{jcl: []byte(jcl)}
}

// DatasetSource submits the JCL stored in a dataset, e.g. "SYS1.JCL(MYJOB)".
func DatasetSource(dataset string) JobSource {
	return JobSource{dataset: dataset}
}

// FileSource submits the JCL stored in a USS file.
func FileSource(path string) JobSource {
	return JobSource{file: path}
}

// JobRecordFormat is the record format of submitted inline JCL.
type JobRecordFormat string

const (
	JobRecordFormatFixed    JobRecordFormat = "F"
	JobRecordFormatVariable JobRecordFormat = "V"
)

const jobsRoot = "/zosmf/restjobs/jobs"

// JobListBuilder configures a job list operation.
type JobListBuilder struct {
	req Builder[JobList]
}

// NewJobListBuilder creates a job list builder.
func NewJobListBuilder(exec Executor) JobListBuilder {
	return JobListBuilder{
		req: NewBuilder[JobList](exec, http.MethodGet, jobsRoot).Parser(parseJobList),
	}
}

// Owner filters jobs by owning user; "*" matches all owners.
func (b JobListBuilder) Owner(owner string) JobListBuilder {
	b.req = b.req.Query("owner", owner)

	return b
}

// Prefix filters jobs by name prefix; "*" is a wildcard.
func (b JobListBuilder) Prefix(prefix string) JobListBuilder {
	b.req = b.req.Query("prefix", prefix)

	return b
}

// JobID filters to a single job id.
func (b JobListBuilder) JobID(id string) JobListBuilder {
	b.req = b.req.Query("jobid", id)

	return b
}

// MaxJobs caps the number of returned jobs.
func (b JobListBuilder) MaxJobs(n int) JobListBuilder {
	b.req = b.req.QueryInt("max-jobs", n)

	return b
}

// UserCorrelator filters jobs by the user portion of the job correlator.
func (b JobListBuilder) UserCorrelator(correlator string) JobListBuilder {
	b.req = b.req.Query("user-correlator", correlator)

	return b
}

// ActiveOnly restricts the listing to jobs that are currently executing.
func (b JobListBuilder) ActiveOnly() JobListBuilder {
	b.req = b.req.Query("status", "active")

	return b
}

// ExecData includes execution timing data for each job.
func (b JobListBuilder) ExecData() JobListBuilder {
	b.req = b.req.Query("exec-data", "Y")

	return b
}

// Execute issues the list request.
func (b JobListBuilder) Execute(ctx context.Context) (*JobList, error) {
	return b.req.Execute(ctx)
}

func parseJobList(resp *Response) (*JobList, error) {
	items, err := ParseJSON[[]Job](resp)
	if err != nil {
		return nil, err
	}

	return &JobList{Items: *items}, nil
}

// JobStatusBuilder configures a job status request.
type JobStatusBuilder struct {
	req Builder[Job]
	id  JobIdentifier
}

// NewJobStatusBuilder creates a status builder for the given job.
func NewJobStatusBuilder(exec Executor, id JobIdentifier) JobStatusBuilder {
	return JobStatusBuilder{
		req: NewBuilder[Job](exec, http.MethodGet, jobsRoot+"/"+id.String()),
		id:  id,
	}
}

// ExecData includes execution timing data in the response.
func (b JobStatusBuilder) ExecData() JobStatusBuilder {
	b.req = b.req.Query("exec-data", "Y")

	return b
}

// StepData includes step completion data in the response.
func (b JobStatusBuilder) StepData() JobStatusBuilder {
	b.req = b.req.Query("step-data", "Y")

	return b
}

// Execute issues the status request.
func (b JobStatusBuilder) Execute(ctx context.Context) (*Job, error) {
	if !b.id.Valid() {
		return nil, ErrInvalidJobID
	}

	return b.req.Execute(ctx)
}

// JobSubmitBuilder configures a job submit operation.
type JobSubmitBuilder struct {
	req     Builder[Job]
	source  JobSource
	symbols map[string]string
}

// NewJobSubmitBuilder creates a submit builder for the given JCL source.
func NewJobSubmitBuilder(exec Executor, source JobSource) JobSubmitBuilder {
	return JobSubmitBuilder{
		req:    NewBuilder[Job](exec, http.MethodPut, jobsRoot),
		source: source,
	}
}

// MessageClass sets the message class of the submitted job.
func (b JobSubmitBuilder) MessageClass(class rune) JobSubmitBuilder {
	b.req = b.req.Header("X-IBM-Intrdr-Class", string(class))

	return b
}

// RecordFormat declares the record format of inline JCL.
func (b JobSubmitBuilder) RecordFormat(format JobRecordFormat) JobSubmitBuilder {
	b.req = b.req.Header("X-IBM-Intrdr-Recfm", string(format))

	return b
}

// RecordLength declares the record length of inline JCL.
func (b JobSubmitBuilder) RecordLength(length int) JobSubmitBuilder {
	b.req = b.req.HeaderInt("X-IBM-Intrdr-Lrecl", length)

	return b
}

// UserCorrelator attaches a user correlator to the job.
func (b JobSubmitBuilder) UserCorrelator(correlator string) JobSubmitBuilder {
	b.req = b.req.Header("X-IBM-User-Correlator", correlator)

	return b
}

// Encoding declares the encoding of the JCL source.
func (b JobSubmitBuilder) Encoding(encoding string) JobSubmitBuilder {
	b.req = b.req.Header("X-IBM-Intrdr-File-Encoding", encoding)

	return b
}

// Symbol sets one JCL substitution symbol. May be called repeatedly; the
// last value per name wins.
func (b JobSubmitBuilder) Symbol(name, value string) JobSubmitBuilder {
	symbols := make(map[string]string, len(b.symbols)+1)
	for k, v := range b.symbols {
		symbols[k] = v
	}

	symbols[name] = value
	b.symbols = symbols

	return b
}

// Execute submits the job and returns its initial status document.
func (b JobSubmitBuilder) Execute(ctx context.Context) (*Job, error) {
	req := b.req
	for name, value := range b.symbols {
		req = req.Header("X-IBM-JCL-Symbol-"+name, value)
	}

	switch {
	case b.source.jcl != nil:
		req = req.RawBody("text/plain", b.source.jcl)
	case b.source.dataset != "":
		req = req.JSONBody(map[string]string{"file": "//'" + b.source.dataset + "'"})
	case b.source.file != "":
		req = req.JSONBody(map[string]string{"file": b.source.file})
	default:
		return nil, ErrJCLRequired
	}

	return req.Execute(ctx)
}

// JobFilesBuilder configures a spool file list operation.
type JobFilesBuilder struct {
	req Builder[JobFileList]
	id  JobIdentifier
}

// NewJobFilesBuilder creates a spool file list builder for the given job.
func NewJobFilesBuilder(exec Executor, id JobIdentifier) JobFilesBuilder {
	return JobFilesBuilder{
		req: NewBuilder[JobFileList](exec, http.MethodGet, jobsRoot+"/"+id.String()+"/files").
			Parser(parseJobFileList),
		id: id,
	}
}

// Execute issues the list request.
func (b JobFilesBuilder) Execute(ctx context.Context) (*JobFileList, error) {
	if !b.id.Valid() {
		return nil, ErrInvalidJobID
	}

	return b.req.Execute(ctx)
}

func parseJobFileList(resp *Response) (*JobFileList, error) {
	items, err := ParseJSON[[]JobFile](resp)
	if err != nil {
		return nil, err
	}

	return &JobFileList{Items: *items}, nil
}

// JobFileReadBuilder configures a spool file read operation.
type JobFileReadBuilder struct {
	req Builder[SpoolContent]
	id  JobIdentifier
}

// NewJobFileReadBuilder creates a read builder for one spool file of the
// given job.
func NewJobFileReadBuilder(exec Executor, id JobIdentifier, file JobFileID) JobFileReadBuilder {
	path := jobsRoot + "/" + id.String() + "/files/" + file.String() + "/records"

	return JobFileReadBuilder{
		req: NewBuilder[SpoolContent](exec, http.MethodGet, path).Parser(parseSpoolContent),
		id:  id,
	}
}

// RecordRange limits the read to a range of records.
func (b JobFileReadBuilder) RecordRange(rng RecordRange) JobFileReadBuilder {
	b.req = b.req.Header("X-IBM-Record-Range", string(rng))

	return b
}

// Search filters returned records to those containing the given text.
func (b JobFileReadBuilder) Search(text string) JobFileReadBuilder {
	b.req = b.req.Query("search", text)

	return b
}

// SearchRegex filters returned records with a regular expression.
func (b JobFileReadBuilder) SearchRegex(pattern string) JobFileReadBuilder {
	b.req = b.req.Query("research", pattern)

	return b
}

// Encoding declares the encoding for the returned records.
func (b JobFileReadBuilder) Encoding(encoding string) JobFileReadBuilder {
	b.req = b.req.Query("fileEncoding", encoding)

	return b
}

// MaxReturnSize caps the number of returned bytes.
func (b JobFileReadBuilder) MaxReturnSize(n int) JobFileReadBuilder {
	b.req = b.req.QueryInt("maxreturnsize", n)

	return b
}

// Execute issues the read request.
func (b JobFileReadBuilder) Execute(ctx context.Context) (*SpoolContent, error) {
	if !b.id.Valid() {
		return nil, ErrInvalidJobID
	}

	return b.req.Execute(ctx)
}

func parseSpoolContent(resp *Response) (*SpoolContent, error) {
	return &SpoolContent{
		Data:          resp.Body,
		TransactionID: resp.TransactionID(),
	}, nil
}

// JobFeedbackBuilder configures a hold, release, cancel, or change-class
// request. The four operations share one wire shape: a PUT with a small JSON
// body, answered by a feedback document.
type JobFeedbackBuilder struct {
	req  Builder[JobFeedback]
	id   JobIdentifier
	body map[string]string
}

// NewJobFeedbackBuilder creates a feedback builder issuing the given request
// verb ("hold", "release", "cancel") against the job.
func NewJobFeedbackBuilder(exec Executor, id JobIdentifier, request string) JobFeedbackBuilder {
	return JobFeedbackBuilder{
		req:  NewBuilder[JobFeedback](exec, http.MethodPut, jobsRoot+"/"+id.String()),
		id:   id,
		body: map[string]string{"request": request, "version": "2.0"},
	}
}

// NewJobClassBuilder creates a feedback builder changing the job's class.
func NewJobClassBuilder(exec Executor, id JobIdentifier, class rune) JobFeedbackBuilder {
	return JobFeedbackBuilder{
		req:  NewBuilder[JobFeedback](exec, http.MethodPut, jobsRoot+"/"+id.String()),
		id:   id,
		body: map[string]string{"class": string(class), "version": "2.0"},
	}
}

// Asynchronous requests version 1.0 processing: the server acknowledges the
// request before carrying it out.
func (b JobFeedbackBuilder) Asynchronous() JobFeedbackBuilder {
	body := make(map[string]string, len(b.body))
	for k, v := range b.body {
		body[k] = v
	}

	body["version"] = "1.0"
	b.body = body

	return b
}

// Execute issues the request.
func (b JobFeedbackBuilder) Execute(ctx context.Context) (*JobFeedback, error) {
	if !b.id.Valid() {
		return nil, ErrInvalidJobID
	}

	return b.req.JSONBody(b.body).Execute(ctx)
}

// JobPurgeBuilder configures a cancel-and-purge request.
type JobPurgeBuilder struct {
	req Builder[JobFeedback]
	id  JobIdentifier
}

// NewJobPurgeBuilder creates a purge builder for the given job.
func NewJobPurgeBuilder(exec Executor, id JobIdentifier) JobPurgeBuilder {
	return JobPurgeBuilder{
		req: NewBuilder[JobFeedback](exec, http.MethodDelete, jobsRoot+"/"+id.String()).
			Header("X-IBM-Job-Modify-Version", "2.0"),
		id: id,
	}
}

// Asynchronous requests version 1.0 processing.
func (b JobPurgeBuilder) Asynchronous() JobPurgeBuilder {
	b.req = b.req.Header("X-IBM-Job-Modify-Version", "1.0")

	return b
}

// Execute issues the purge request.
func (b JobPurgeBuilder) Execute(ctx context.Context) (*JobFeedback, error) {
	if !b.id.Valid() {
		return nil, ErrInvalidJobID
	}

	return b.req.Execute(ctx)
}
