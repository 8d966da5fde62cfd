package zosmf

import (
	"context"
	"net/http"
	"net/url"
)

const workflowsRoot = "/zosmf/workflow/rest/1.0"

// WorkflowCategory classifies a workflow definition.
type WorkflowCategory string

const (
	WorkflowCategoryConfiguration WorkflowCategory = "configuration"
	WorkflowCategoryGeneral       WorkflowCategory = "general"
)

// WorkflowStatus is the execution state of a workflow instance.
type WorkflowStatus string

const (
	WorkflowStatusInProgress           WorkflowStatus = "in-progress"
	WorkflowStatusComplete             WorkflowStatus = "complete"
	WorkflowStatusAutomationInProgress WorkflowStatus = "automation-in-progress"
	WorkflowStatusCanceled             WorkflowStatus = "canceled"
)

// WorkflowAccess is the sharing mode of a workflow instance.
type WorkflowAccess string

const (
	WorkflowAccessPrivate    WorkflowAccess = "Private"
	WorkflowAccessPublic     WorkflowAccess = "Public"
	WorkflowAccessRestricted WorkflowAccess = "Restricted"
)

// Workflow is one entry of a workflow list.
type Workflow struct {
	Name               string         `json:"workflowName"                   yaml:"workflowName"`
	Key                string         `json:"workflowKey"                    yaml:"workflowKey"`
	Description        string         `json:"workflowDescription"            yaml:"workflowDescription"`
	ID                 string         `json:"workflowID"                     yaml:"workflowID"`
	Version            string         `json:"workflowVersion"                yaml:"workflowVersion"`
	DefinitionFileHash string         `json:"workflowDefinitionFileMD5Value" yaml:"workflowDefinitionFileMD5Value"`
	InstanceURI        string         `json:"instanceURI"                    yaml:"instanceURI"`
	Owner              string         `json:"owner"                          yaml:"owner"`
	Vendor             string         `json:"vendor"                         yaml:"vendor"`
	Access             WorkflowAccess `json:"access"                         yaml:"access"`
}

// WorkflowList is the response of a workflow list operation.
type WorkflowList struct {
	Items []Workflow `json:"workflows" yaml:"workflows"`
}

// WorkflowStep is one step of a workflow instance. Nested steps are present
// for parallel step groups.
type WorkflowStep struct {
	Name        string         `json:"name"                  yaml:"name"`
	Title       string         `json:"title"                 yaml:"title"`
	Description string         `json:"description"           yaml:"description"`
	State       string         `json:"state"                 yaml:"state"`
	StepNumber  string         `json:"stepNumber"            yaml:"stepNumber"`
	Optional    bool           `json:"optional"              yaml:"optional"`
	AutoEnable  bool           `json:"autoEnable"            yaml:"autoEnable"`
	UserDefined bool           `json:"userDefined"           yaml:"userDefined"`
	IsRestStep  bool           `json:"isRestStep"            yaml:"isRestStep"`
	Owner       string         `json:"owner,omitempty"       yaml:"owner,omitempty"`
	Assignees   string         `json:"assignees,omitempty"   yaml:"assignees,omitempty"`
	Skills      string         `json:"skills,omitempty"      yaml:"skills,omitempty"`
	Weight      string         `json:"weight,omitempty"      yaml:"weight,omitempty"`
	PrereqSteps []string       `json:"prereqStep,omitempty"  yaml:"prereqStep,omitempty"`
	RunAsUser   string         `json:"runAsUser,omitempty"   yaml:"runAsUser,omitempty"`
	SubmitAs    string         `json:"submitAs,omitempty"    yaml:"submitAs,omitempty"`
	ReturnCode  string         `json:"returnCode,omitempty"  yaml:"returnCode,omitempty"`
	Steps       []WorkflowStep `json:"steps,omitempty"       yaml:"steps,omitempty"`
}

// WorkflowVariable is one name/value pair supplied when creating a workflow.
type WorkflowVariable struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// WorkflowVariableInfo describes one variable of a workflow instance.
type WorkflowVariableInfo struct {
	Name       string `json:"name"            yaml:"name"`
	Scope      string `json:"scope"           yaml:"scope"`
	Type       string `json:"type"            yaml:"type"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	Visibility string `json:"visibility"      yaml:"visibility"`
}

// WorkflowProperties describes one workflow instance. Steps and Variables
// are only populated when the request asked for them.
type WorkflowProperties struct {
	Name                   string                 `json:"workflowName"                    yaml:"workflowName"`
	Key                    string                 `json:"workflowKey"                     yaml:"workflowKey"`
	Description            string                 `json:"workflowDescription"             yaml:"workflowDescription"`
	ID                     string                 `json:"workflowID"                      yaml:"workflowID"`
	Version                string                 `json:"workflowVersion"                 yaml:"workflowVersion"`
	DefinitionFileHash     string                 `json:"workflowDefinitionFileMD5Value"  yaml:"workflowDefinitionFileMD5Value"`
	Vendor                 string                 `json:"vendor"                          yaml:"vendor"`
	Owner                  string                 `json:"owner"                           yaml:"owner"`
	System                 string                 `json:"system"                          yaml:"system"`
	Category               string                 `json:"category"                        yaml:"category"`
	Scope                  string                 `json:"scope"                           yaml:"scope"`
	Status                 WorkflowStatus         `json:"statusName"                      yaml:"statusName"`
	Access                 WorkflowAccess         `json:"access"                          yaml:"access"`
	PercentComplete        int                    `json:"percentComplete"                 yaml:"percentComplete"`
	ContainsParallelSteps  bool                   `json:"containsParallelSteps"           yaml:"containsParallelSteps"`
	DeleteCompletedJobs    bool                   `json:"deleteCompletedJobs"             yaml:"deleteCompletedJobs"`
	AutoDeleteOnCompletion *bool                  `json:"autoDeleteOnCompletion,omitempty" yaml:"autoDeleteOnCompletion,omitempty"`
	AccountInfo            string                 `json:"accountInfo,omitempty"           yaml:"accountInfo,omitempty"`
	JobStatement           string                 `json:"jobStatement,omitempty"          yaml:"jobStatement,omitempty"`
	JobsOutputDirectory    string                 `json:"jobsOutputDirectory,omitempty"   yaml:"jobsOutputDirectory,omitempty"`
	Steps                  []WorkflowStep         `json:"steps,omitempty"                 yaml:"steps,omitempty"`
	Variables              []WorkflowVariableInfo `json:"variables,omitempty"             yaml:"variables,omitempty"`
}

// WorkflowCreateResult is the server's response to a workflow create.
type WorkflowCreateResult struct {
	Key         string `json:"key"         yaml:"key"`
	Description string `json:"description" yaml:"description"`
	ID          string `json:"id"          yaml:"id"`
	Version     string `json:"version"     yaml:"version"`
	Vendor      string `json:"vendor"      yaml:"vendor"`
}

// WorkflowCancelResult is the server's response to a workflow cancel.
type WorkflowCancelResult struct {
	Name string `json:"workflowName" yaml:"workflowName"`
}

// WorkflowArchiveResult is the server's response to a workflow archive.
type WorkflowArchiveResult struct {
	Key string `json:"workflowKey" yaml:"workflowKey"`
}

// ArchivedWorkflow is one entry of an archived workflow list.
type ArchivedWorkflow struct {
	Name string `json:"workflowName"        yaml:"workflowName"`
	Key  string `json:"workflowKey"         yaml:"workflowKey"`
	URI  string `json:"archivedInstanceURI" yaml:"archivedInstanceURI"`
}

// ArchivedWorkflowList is the response of an archived workflow list
// operation.
type ArchivedWorkflowList struct {
	Items []ArchivedWorkflow `json:"archivedWorkflows" yaml:"archivedWorkflows"`
}

func workflowPath(key string) string {
	return workflowsRoot + "/workflows/" + url.PathEscape(key)
}

func archivedWorkflowPath(key string) string {
	return workflowsRoot + "/archivedworkflows/" + url.PathEscape(key)
}

// WorkflowListBuilder configures a workflow list operation.
type WorkflowListBuilder struct {
	req Builder[WorkflowList]
}

// NewWorkflowListBuilder creates a workflow list builder.
func NewWorkflowListBuilder(exec Executor) WorkflowListBuilder {
	return WorkflowListBuilder{
		req: NewBuilder[WorkflowList](exec, http.MethodGet, workflowsRoot+"/workflows"),
	}
}

// Name filters workflows by a name pattern (a regular expression).
func (b WorkflowListBuilder) Name(pattern string) WorkflowListBuilder {
	b.req = b.req.Query("workflowName", pattern)

	return b
}

// Category filters workflows by category.
func (b WorkflowListBuilder) Category(category WorkflowCategory) WorkflowListBuilder {
	b.req = b.req.Query("category", string(category))

	return b
}

// System filters workflows by target system.
func (b WorkflowListBuilder) System(system string) WorkflowListBuilder {
	b.req = b.req.Query("system", system)

	return b
}

// Status filters workflows by execution state.
func (b WorkflowListBuilder) Status(status WorkflowStatus) WorkflowListBuilder {
	b.req = b.req.Query("statusName", string(status))

	return b
}

// Owner filters workflows by owning user.
func (b WorkflowListBuilder) Owner(owner string) WorkflowListBuilder {
	b.req = b.req.Query("owner", owner)

	return b
}

// Vendor filters workflows by vendor.
func (b WorkflowListBuilder) Vendor(vendor string) WorkflowListBuilder {
	b.req = b.req.Query("vendor", vendor)

	return b
}

// Execute issues the list request.
func (b WorkflowListBuilder) Execute(ctx context.Context) (*WorkflowList, error) {
	return b.req.Execute(ctx)
}

type workflowCreateBody struct {
	Name                   string             `json:"workflowName"`
	DefinitionFile         string             `json:"workflowDefinitionFile"`
	System                 string             `json:"system"`
	Owner                  string             `json:"owner"`
	VariableInputFile      string             `json:"variableInputFile,omitempty"`
	Variables              []WorkflowVariable `json:"variables,omitempty"`
	ConflictResolution     string             `json:"resolveGlobalConflictByUsing,omitempty"`
	Comments               string             `json:"comments,omitempty"`
	AssignToOwner          *bool              `json:"assignToOwner,omitempty"`
	AccessType             WorkflowAccess     `json:"accessType,omitempty"`
	AccountInfo            string             `json:"accountInfo,omitempty"`
	JobStatement           string             `json:"jobStatement,omitempty"`
	DeleteCompletedJobs    *bool              `json:"deleteCompletedJobs,omitempty"`
	JobsOutputDirectory    string             `json:"jobsOutputDirectory,omitempty"`
	AutoDeleteOnCompletion *bool              `json:"autoDeleteOnCompletion,omitempty"`
}

// WorkflowCreateBuilder configures a workflow create operation.
type WorkflowCreateBuilder struct {
	req  Builder[WorkflowCreateResult]
	body workflowCreateBody
}

// NewWorkflowCreateBuilder creates a builder registering a workflow instance
// from the given definition file for one system and owner.
func NewWorkflowCreateBuilder(exec Executor, name, definitionFile, system, owner string) WorkflowCreateBuilder {
	return WorkflowCreateBuilder{
		req: NewBuilder[WorkflowCreateResult](exec, http.MethodPost, workflowsRoot+"/workflows"),
		body: workflowCreateBody{
			Name:           name,
			DefinitionFile: definitionFile,
			System:         system,
			Owner:          owner,
		},
	}
}

// VariableInputFile supplies initial variable values from a properties file.
func (b WorkflowCreateBuilder) VariableInputFile(path string) WorkflowCreateBuilder {
	b.body.VariableInputFile = path

	return b
}

// Variable supplies one initial variable value. May be called repeatedly.
func (b WorkflowCreateBuilder) Variable(name, value string) WorkflowCreateBuilder {
	variables := make([]WorkflowVariable, len(b.body.Variables), len(b.body.Variables)+1)
	copy(variables, b.body.Variables)
	b.body.Variables = append(variables, WorkflowVariable{Name: name, Value: value})

	return b
}

// ConflictResolution selects how conflicting global variables are resolved,
// e.g. "outputFileValue", "existingValue", or "leaveConflict".
func (b WorkflowCreateBuilder) ConflictResolution(mode string) WorkflowCreateBuilder {
	b.body.ConflictResolution = mode

	return b
}

// Comments attaches free-form comments to the instance.
func (b WorkflowCreateBuilder) Comments(comments string) WorkflowCreateBuilder {
	b.body.Comments = comments

	return b
}

// AssignToOwner assigns all steps to the owner at create time.
func (b WorkflowCreateBuilder) AssignToOwner() WorkflowCreateBuilder {
	assign := true
	b.body.AssignToOwner = &assign

	return b
}

// AccessType sets the sharing mode of the instance.
func (b WorkflowCreateBuilder) AccessType(access WorkflowAccess) WorkflowCreateBuilder {
	b.body.AccessType = access

	return b
}

// AccountInfo sets the account information for submitted jobs.
func (b WorkflowCreateBuilder) AccountInfo(info string) WorkflowCreateBuilder {
	b.body.AccountInfo = info

	return b
}

// JobStatement sets the JOB statement used for submitted jobs.
func (b WorkflowCreateBuilder) JobStatement(statement string) WorkflowCreateBuilder {
	b.body.JobStatement = statement

	return b
}

// DeleteCompletedJobs purges jobs submitted by the workflow once they
// complete.
func (b WorkflowCreateBuilder) DeleteCompletedJobs() WorkflowCreateBuilder {
	deleteJobs := true
	b.body.DeleteCompletedJobs = &deleteJobs

	return b
}

// JobsOutputDirectory saves submitted job output under the given USS
// directory.
func (b WorkflowCreateBuilder) JobsOutputDirectory(dir string) WorkflowCreateBuilder {
	b.body.JobsOutputDirectory = dir

	return b
}

// AutoDeleteOnCompletion removes the instance once it completes.
func (b WorkflowCreateBuilder) AutoDeleteOnCompletion() WorkflowCreateBuilder {
	autoDelete := true
	b.body.AutoDeleteOnCompletion = &autoDelete

	return b
}

// Execute issues the create request.
func (b WorkflowCreateBuilder) Execute(ctx context.Context) (*WorkflowCreateResult, error) {
	return b.req.JSONBody(b.body).Execute(ctx)
}

// WorkflowPropertiesBuilder configures a workflow properties request.
type WorkflowPropertiesBuilder struct {
	req       Builder[WorkflowProperties]
	steps     bool
	variables bool
}

// NewWorkflowPropertiesBuilder creates a properties builder for the given
// workflow key.
func NewWorkflowPropertiesBuilder(exec Executor, key string) WorkflowPropertiesBuilder {
	return WorkflowPropertiesBuilder{
		req: NewBuilder[WorkflowProperties](exec, http.MethodGet, workflowPath(key)),
	}
}

// NewArchivedWorkflowPropertiesBuilder creates a properties builder for the
// given archived workflow key.
func NewArchivedWorkflowPropertiesBuilder(exec Executor, key string) WorkflowPropertiesBuilder {
	return WorkflowPropertiesBuilder{
		req: NewBuilder[WorkflowProperties](exec, http.MethodGet, archivedWorkflowPath(key)),
	}
}

// Steps includes per-step data in the response.
func (b WorkflowPropertiesBuilder) Steps() WorkflowPropertiesBuilder {
	b.steps = true

	return b
}

// Variables includes variable data in the response.
func (b WorkflowPropertiesBuilder) Variables() WorkflowPropertiesBuilder {
	b.variables = true

	return b
}

// Execute issues the properties request.
func (b WorkflowPropertiesBuilder) Execute(ctx context.Context) (*WorkflowProperties, error) {
	req := b.req
	if returnData := workflowReturnData(b.steps, b.variables); returnData != "" {
		req = req.Query("returnData", returnData)
	}

	return req.Execute(ctx)
}

func workflowReturnData(steps, variables bool) string {
	switch {
	case steps && variables:
		return "steps,variables"
	case steps:
		return "steps"
	case variables:
		return "variables"
	default:
		return ""
	}
}

// WorkflowConflictResolution selects how variable conflicts are resolved
// when starting a workflow.
type WorkflowConflictResolution string

const (
	WorkflowConflictOutputFileValue WorkflowConflictResolution = "outputFileValue"
	WorkflowConflictExistingValue   WorkflowConflictResolution = "existingValue"
	WorkflowConflictLeaveConflict   WorkflowConflictResolution = "leaveConflict"
)

type workflowStartBody struct {
	ConflictResolution WorkflowConflictResolution `json:"resolveConflictByUsing,omitempty"`
	StepName           string                     `json:"stepName,omitempty"`
	PerformSubsequent  *bool                      `json:"performSubsequent,omitempty"`
	NotificationURL    string                     `json:"notificationUrl,omitempty"`
}

// WorkflowStartBuilder configures a workflow start operation.
type WorkflowStartBuilder struct {
	req  Builder[struct{}]
	body workflowStartBody
}

// NewWorkflowStartBuilder creates a start builder for the given workflow
// key. By default automation starts at the first automatable step and
// performs subsequent steps.
func NewWorkflowStartBuilder(exec Executor, key string) WorkflowStartBuilder {
	return WorkflowStartBuilder{
		req: NewBuilder[struct{}](exec, http.MethodPut, workflowPath(key)+"/operations/start").
			Parser(ParseNone),
	}
}

// ConflictResolution selects how variable conflicts are resolved.
func (b WorkflowStartBuilder) ConflictResolution(mode WorkflowConflictResolution) WorkflowStartBuilder {
	b.body.ConflictResolution = mode

	return b
}

// Step starts automation at the given step instead of the first one.
func (b WorkflowStartBuilder) Step(name string) WorkflowStartBuilder {
	b.body.StepName = name

	return b
}

// StepOnly runs only the selected step, without performing subsequent
// automatable steps.
func (b WorkflowStartBuilder) StepOnly(name string) WorkflowStartBuilder {
	subsequent := false
	b.body.StepName = name
	b.body.PerformSubsequent = &subsequent

	return b
}

// NotificationURL registers a URL notified when processing ends.
func (b WorkflowStartBuilder) NotificationURL(notifyURL string) WorkflowStartBuilder {
	b.body.NotificationURL = notifyURL

	return b
}

// Execute issues the start request.
func (b WorkflowStartBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}

// ArchivedWorkflowListBuilder configures an archived workflow list
// operation.
type ArchivedWorkflowListBuilder struct {
	req Builder[ArchivedWorkflowList]
}

// NewArchivedWorkflowListBuilder creates an archived workflow list builder.
func NewArchivedWorkflowListBuilder(exec Executor) ArchivedWorkflowListBuilder {
	return ArchivedWorkflowListBuilder{
		req: NewBuilder[ArchivedWorkflowList](exec, http.MethodGet, workflowsRoot+"/archivedworkflows"),
	}
}

// Ascending orders entries by archive time, oldest first.
func (b ArchivedWorkflowListBuilder) Ascending() ArchivedWorkflowListBuilder {
	b.req = b.req.Query("Orderby", "Asc")

	return b
}

// Descending orders entries by archive time, newest first.
func (b ArchivedWorkflowListBuilder) Descending() ArchivedWorkflowListBuilder {
	b.req = b.req.Query("Orderby", "Desc")

	return b
}

// DomainView lists all archived workflows of the domain instead of the
// caller's own.
func (b ArchivedWorkflowListBuilder) DomainView() ArchivedWorkflowListBuilder {
	b.req = b.req.Query("View", "Domain")

	return b
}

// Execute issues the list request.
func (b ArchivedWorkflowListBuilder) Execute(ctx context.Context) (*ArchivedWorkflowList, error) {
	return b.req.Execute(ctx)
}
