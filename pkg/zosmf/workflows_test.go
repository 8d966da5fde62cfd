package zosmf_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

func TestWorkflowListBuilder(t *testing.T) {
	t.Parallel()
	t.Run("query shape", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"workflows":[]}`)}

		list, err := zosmf.NewWorkflowListBuilder(exec).
			Name("provision.*").
			Category(zosmf.WorkflowCategoryConfiguration).
			System("SY1").
			Status(zosmf.WorkflowStatusInProgress).
			Owner("USER1").
			Vendor("IBM").
			Execute(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list.Items)

		req := exec.requests[0]
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/zosmf/workflow/rest/1.0/workflows", req.Path)
		assert.Equal(t, "provision.*", req.Query.Get("workflowName"))
		assert.Equal(t, "configuration", req.Query.Get("category"))
		assert.Equal(t, "SY1", req.Query.Get("system"))
		assert.Equal(t, "in-progress", req.Query.Get("statusName"))
		assert.Equal(t, "USER1", req.Query.Get("owner"))
		assert.Equal(t, "IBM", req.Query.Get("vendor"))
	})

	t.Run("decodes entries", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{
			"workflows": [
				{
					"workflowName": "provision-db",
					"workflowKey": "d043b5f1-adab-48e7-b7c3-d41cd95fa4b0",
					"workflowDescription": "Provision a database",
					"workflowVersion": "1.0",
					"owner": "USER1",
					"vendor": "IBM",
					"access": "Public"
				}
			]
		}`)}

		list, err := zosmf.NewWorkflowListBuilder(exec).Execute(context.Background())
		require.NoError(t, err)

		require.Len(t, list.Items, 1)
		assert.Equal(t, "provision-db", list.Items[0].Name)
		assert.Equal(t, "d043b5f1-adab-48e7-b7c3-d41cd95fa4b0", list.Items[0].Key)
		assert.Equal(t, zosmf.WorkflowAccessPublic, list.Items[0].Access)
	})
}

func TestWorkflowCreateBuilder(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{response: jsonResponse(`{
		"key": "d043b5f1-adab-48e7-b7c3-d41cd95fa4b0",
		"description": "Provision a database",
		"version": "1.0",
		"vendor": "IBM"
	}`)}

	result, err := zosmf.NewWorkflowCreateBuilder(exec,
		"provision-db", "/usr/lpp/workflow/provision.xml", "SY1", "USER1").
		Variable("DB_NAME", "TESTDB").
		Variable("DB_SIZE", "small").
		Comments("initial provisioning").
		AssignToOwner().
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "d043b5f1-adab-48e7-b7c3-d41cd95fa4b0", result.Key)

	req := exec.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/zosmf/workflow/rest/1.0/workflows", req.Path)

	body := marshaledBody(t, req)
	assert.Equal(t, "provision-db", body["workflowName"])
	assert.Equal(t, "/usr/lpp/workflow/provision.xml", body["workflowDefinitionFile"])
	assert.Equal(t, "SY1", body["system"])
	assert.Equal(t, "USER1", body["owner"])
	assert.Equal(t, "initial provisioning", body["comments"])
	assert.Equal(t, true, body["assignToOwner"])

	variables, ok := body["variables"].([]interface{})
	require.True(t, ok)
	require.Len(t, variables, 2)

	first, ok := variables[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "DB_NAME", first["name"])
	assert.Equal(t, "TESTDB", first["value"])
}

func TestWorkflowPropertiesBuilder(t *testing.T) {
	t.Parallel()
	t.Run("without return data", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{
			"workflowName": "provision-db",
			"workflowKey": "key-1",
			"statusName": "in-progress",
			"percentComplete": 40
		}`)}

		properties, err := zosmf.NewWorkflowPropertiesBuilder(exec, "key-1").
			Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, zosmf.WorkflowStatusInProgress, properties.Status)
		assert.Equal(t, 40, properties.PercentComplete)

		req := exec.requests[0]
		assert.Equal(t, "/zosmf/workflow/rest/1.0/workflows/key-1", req.Path)
		assert.Empty(t, req.Query.Get("returnData"))
	})

	t.Run("steps and variables", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{
			"workflowName": "provision-db",
			"workflowKey": "key-1",
			"statusName": "complete",
			"percentComplete": 100,
			"steps": [
				{"name": "allocate", "state": "Complete", "stepNumber": "1"}
			],
			"variables": [
				{"name": "DB_NAME", "scope": "instance", "type": "string", "value": "TESTDB"}
			]
		}`)}

		properties, err := zosmf.NewWorkflowPropertiesBuilder(exec, "key-1").
			Steps().
			Variables().
			Execute(context.Background())
		require.NoError(t, err)

		require.Len(t, properties.Steps, 1)
		assert.Equal(t, "allocate", properties.Steps[0].Name)
		require.Len(t, properties.Variables, 1)
		assert.Equal(t, "TESTDB", properties.Variables[0].Value)

		assert.Equal(t, "steps,variables", exec.requests[0].Query.Get("returnData"))
	})

	t.Run("archived instance path", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"workflowKey":"key-1"}`)}

		_, err := zosmf.NewArchivedWorkflowPropertiesBuilder(exec, "key-1").
			Steps().
			Execute(context.Background())
		require.NoError(t, err)

		req := exec.requests[0]
		assert.Equal(t, "/zosmf/workflow/rest/1.0/archivedworkflows/key-1", req.Path)
		assert.Equal(t, "steps", req.Query.Get("returnData"))
	})
}

func TestWorkflowStartBuilder(t *testing.T) {
	t.Parallel()
	t.Run("full automation", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{}

		err := zosmf.NewWorkflowStartBuilder(exec, "key-1").
			ConflictResolution(zosmf.WorkflowConflictExistingValue).
			Execute(context.Background())
		require.NoError(t, err)

		req := exec.requests[0]
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/zosmf/workflow/rest/1.0/workflows/key-1/operations/start", req.Path)

		body := marshaledBody(t, req)
		assert.Equal(t, "existingValue", body["resolveConflictByUsing"])
		assert.NotContains(t, body, "stepName")
		assert.NotContains(t, body, "performSubsequent")
	})

	t.Run("single step only", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{}

		err := zosmf.NewWorkflowStartBuilder(exec, "key-1").
			StepOnly("allocate").
			Execute(context.Background())
		require.NoError(t, err)

		body := marshaledBody(t, exec.requests[0])
		assert.Equal(t, "allocate", body["stepName"])
		assert.Equal(t, false, body["performSubsequent"])
	})
}

func TestArchivedWorkflowListBuilder(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{response: jsonResponse(`{
		"archivedWorkflows": [
			{
				"workflowName": "provision-db",
				"workflowKey": "key-1",
				"archivedInstanceURI": "/zosmf/workflow/rest/1.0/archivedworkflows/key-1"
			}
		]
	}`)}

	list, err := zosmf.NewArchivedWorkflowListBuilder(exec).
		Descending().
		DomainView().
		Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Items, 1)
	assert.Equal(t, "provision-db", list.Items[0].Name)

	req := exec.requests[0]
	assert.Equal(t, "/zosmf/workflow/rest/1.0/archivedworkflows", req.Path)
	assert.Equal(t, "Desc", req.Query.Get("Orderby"))
	assert.Equal(t, "Domain", req.Query.Get("View"))
}
