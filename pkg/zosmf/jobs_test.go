package zosmf_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

func TestJobIdentifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TESTJOB/JOB00023", zosmf.JobID("TESTJOB", "JOB00023").String())
	assert.Equal(t, "J0000023SY1.....C0ABCDEF", zosmf.JobCorrelator("J0000023SY1.....C0ABCDEF").String())

	assert.True(t, zosmf.JobID("TESTJOB", "JOB00023").Valid())
	assert.True(t, zosmf.JobCorrelator("J0000023SY1").Valid())
	assert.False(t, zosmf.JobID("TESTJOB", "").Valid())
	assert.False(t, zosmf.JobIdentifier{}.Valid())
}

func TestJobFileID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2", zosmf.SpoolFileID(2).String())
	assert.Equal(t, "JCL", zosmf.JCLFileID().String())
}

func TestJobListBuilder(t *testing.T) {
	t.Parallel()
	t.Run("query shape", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`[]`)}

		list, err := zosmf.NewJobListBuilder(exec).
			Owner("*").
			Prefix("TEST*").
			MaxJobs(100).
			ActiveOnly().
			ExecData().
			Execute(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list.Items)

		req := exec.requests[0]
		assert.Equal(t, "/zosmf/restjobs/jobs", req.Path)
		assert.Equal(t, "*", req.Query.Get("owner"))
		assert.Equal(t, "TEST*", req.Query.Get("prefix"))
		assert.Equal(t, "100", req.Query.Get("max-jobs"))
		assert.Equal(t, "active", req.Query.Get("status"))
		assert.Equal(t, "Y", req.Query.Get("exec-data"))
	})

	t.Run("decodes the bare array in server order", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`[
			{"jobid": "JOB00023", "jobname": "TESTJOB", "owner": "USER1", "status": "ACTIVE"},
			{"jobid": "JOB00011", "jobname": "OTHERJOB", "owner": "USER2", "status": "ACTIVE"}
		]`)}

		list, err := zosmf.NewJobListBuilder(exec).Owner("*").ActiveOnly().Execute(context.Background())
		require.NoError(t, err)

		require.Len(t, list.Items, 2)
		assert.Equal(t, "JOB00023", list.Items[0].ID)
		assert.Equal(t, "JOB00011", list.Items[1].ID)
		assert.Equal(t, zosmf.JobStatusActive, list.Items[0].Status)
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"not":"an array"}`)}

		_, err := zosmf.NewJobListBuilder(exec).Execute(context.Background())
		require.Error(t, err)

		decodeErr := &zosmf.DecodeError{}
		require.ErrorAs(t, err, &decodeErr)
	})
}

func TestJobStatusBuilder(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{response: jsonResponse(`{
		"jobid": "JOB00023",
		"jobname": "TESTJOB",
		"owner": "USER1",
		"status": "OUTPUT",
		"retcode": "CC 0000",
		"exec-system": "SY1"
	}`)}

	job, err := zosmf.NewJobStatusBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023")).
		ExecData().
		StepData().
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "CC 0000", job.ReturnCode)
	assert.Equal(t, "SY1", job.ExecSystem)
	assert.Equal(t, zosmf.JobID("TESTJOB", "JOB00023"), job.Identifier())

	req := exec.requests[0]
	assert.Equal(t, "/zosmf/restjobs/jobs/TESTJOB/JOB00023", req.Path)
	assert.Equal(t, "Y", req.Query.Get("exec-data"))
	assert.Equal(t, "Y", req.Query.Get("step-data"))
}

func TestJobBuilders_InvalidIdentifier(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	none := zosmf.JobIdentifier{}

	_, err := zosmf.NewJobStatusBuilder(exec, none).Execute(context.Background())
	require.ErrorIs(t, err, zosmf.ErrInvalidJobID)

	_, err = zosmf.NewJobFilesBuilder(exec, none).Execute(context.Background())
	require.ErrorIs(t, err, zosmf.ErrInvalidJobID)

	_, err = zosmf.NewJobFileReadBuilder(exec, none, zosmf.SpoolFileID(2)).Execute(context.Background())
	require.ErrorIs(t, err, zosmf.ErrInvalidJobID)

	_, err = zosmf.NewJobFeedbackBuilder(exec, none, "cancel").Execute(context.Background())
	require.ErrorIs(t, err, zosmf.ErrInvalidJobID)

	_, err = zosmf.NewJobPurgeBuilder(exec, none).Execute(context.Background())
	require.ErrorIs(t, err, zosmf.ErrInvalidJobID)

	assert.Empty(t, exec.requests)
}

func TestJobSubmitBuilder(t *testing.T) {
	t.Parallel()
	t.Run("inline JCL goes as text", func(t *testing.T) {
		t.Parallel()

		jcl := "//TESTJOB JOB (ACCT),'TEST'\n//STEP1 EXEC PGM=IEFBR14\n"
		exec := &fakeExecutor{response: jsonResponse(`{"jobid":"JOB00024","jobname":"TESTJOB","owner":"USER1"}`)}

		job, err := zosmf.NewJobSubmitBuilder(exec, zosmf.JCLSource(jcl)).
			MessageClass('A').
			RecordFormat(zosmf.JobRecordFormatFixed).
			RecordLength(80).
			UserCorrelator("mytag").
			Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "JOB00024", job.ID)

		req := exec.requests[0]
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/zosmf/restjobs/jobs", req.Path)
		assert.Equal(t, []byte(jcl), req.RawBody)
		assert.Equal(t, "text/plain", req.ContentType)
		assert.Equal(t, "A", req.Headers.Get("X-IBM-Intrdr-Class"))
		assert.Equal(t, "F", req.Headers.Get("X-IBM-Intrdr-Recfm"))
		assert.Equal(t, "80", req.Headers.Get("X-IBM-Intrdr-Lrecl"))
		assert.Equal(t, "mytag", req.Headers.Get("X-IBM-User-Correlator"))
	})

	t.Run("dataset source goes as a JSON reference", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"jobid":"JOB00025","jobname":"TESTJOB","owner":"USER1"}`)}

		_, err := zosmf.NewJobSubmitBuilder(exec, zosmf.DatasetSource("SYS1.JCLLIB(MYJOB)")).
			Execute(context.Background())
		require.NoError(t, err)

		req := exec.requests[0]
		body, ok := req.Body.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "//'SYS1.JCLLIB(MYJOB)'", body["file"])
		assert.Nil(t, req.RawBody)
	})

	t.Run("file source keeps the USS path", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"jobid":"JOB00026","jobname":"TESTJOB","owner":"USER1"}`)}

		_, err := zosmf.NewJobSubmitBuilder(exec, zosmf.FileSource("/u/user1/myjob.jcl")).
			Execute(context.Background())
		require.NoError(t, err)

		body, ok := exec.requests[0].Body.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "/u/user1/myjob.jcl", body["file"])
	})

	t.Run("symbols become headers", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"jobid":"JOB00027","jobname":"TESTJOB","owner":"USER1"}`)}

		_, err := zosmf.NewJobSubmitBuilder(exec, zosmf.JCLSource("//JOB")).
			Symbol("ENV", "DEV").
			Symbol("ENV", "PROD").
			Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "PROD", exec.requests[0].Headers.Get("X-IBM-JCL-Symbol-ENV"))
	})

	t.Run("empty source is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := zosmf.NewJobSubmitBuilder(&fakeExecutor{}, zosmf.JobSource{}).Execute(context.Background())
		require.ErrorIs(t, err, zosmf.ErrJCLRequired)
	})
}

func TestJobFilesBuilder(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{response: jsonResponse(`[
		{"id": 2, "ddname": "JESMSGLG", "class": "H", "record-count": 17},
		{"id": 3, "ddname": "JESJCL", "class": "H", "record-count": 8}
	]`)}

	list, err := zosmf.NewJobFilesBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023")).
		Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Items, 2)
	assert.Equal(t, "JESMSGLG", list.Items[0].DDName)
	assert.Equal(t, 17, list.Items[0].RecordCount)
	assert.Equal(t, "/zosmf/restjobs/jobs/TESTJOB/JOB00023/files", exec.requests[0].Path)
}

func TestJobFileReadBuilder(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{response: &zosmf.Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"X-Ibm-Txid": []string{"txid-5"}},
		Body:       []byte("J E S 2  J O B  L O G\n"),
	}}

	content, err := zosmf.NewJobFileReadBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023"), zosmf.SpoolFileID(2)).
		Search("IEF142I").
		MaxReturnSize(1024).
		RecordRange(zosmf.NewRecordRange(0, 99)).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "J E S 2  J O B  L O G\n", content.String())
	assert.Equal(t, "txid-5", content.TransactionID)

	req := exec.requests[0]
	assert.Equal(t, "/zosmf/restjobs/jobs/TESTJOB/JOB00023/files/2/records", req.Path)
	assert.Equal(t, "IEF142I", req.Query.Get("search"))
	assert.Equal(t, "1024", req.Query.Get("maxreturnsize"))
	assert.Equal(t, "0-99", req.Headers.Get("X-IBM-Record-Range"))
}

func TestJobFileReadBuilder_JCL(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{response: jsonResponse("//TESTJOB JOB")}

	_, err := zosmf.NewJobFileReadBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023"), zosmf.JCLFileID()).
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/zosmf/restjobs/jobs/TESTJOB/JOB00023/files/JCL/records", exec.requests[0].Path)
}

func TestJobFeedbackBuilder(t *testing.T) {
	t.Parallel()

	feedbackBody := `{"jobid":"JOB00023","jobname":"TESTJOB","owner":"USER1","status":"0","job-correlator":"J23"}`

	tests := []struct {
		name     string
		build    func(exec zosmf.Executor) zosmf.JobFeedbackBuilder
		expected map[string]string
	}{
		{
			name: "cancel",
			build: func(exec zosmf.Executor) zosmf.JobFeedbackBuilder {
				return zosmf.NewJobFeedbackBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023"), "cancel")
			},
			expected: map[string]string{"request": "cancel", "version": "2.0"},
		},
		{
			name: "hold",
			build: func(exec zosmf.Executor) zosmf.JobFeedbackBuilder {
				return zosmf.NewJobFeedbackBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023"), "hold")
			},
			expected: map[string]string{"request": "hold", "version": "2.0"},
		},
		{
			name: "release asynchronous",
			build: func(exec zosmf.Executor) zosmf.JobFeedbackBuilder {
				return zosmf.NewJobFeedbackBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023"), "release").
					Asynchronous()
			},
			expected: map[string]string{"request": "release", "version": "1.0"},
		},
		{
			name: "change class",
			build: func(exec zosmf.Executor) zosmf.JobFeedbackBuilder {
				return zosmf.NewJobClassBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023"), 'A')
			},
			expected: map[string]string{"class": "A", "version": "2.0"},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			exec := &fakeExecutor{response: jsonResponse(feedbackBody)}

			feedback, err := testCase.build(exec).Execute(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "JOB00023", feedback.JobID)

			req := exec.requests[0]
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "/zosmf/restjobs/jobs/TESTJOB/JOB00023", req.Path)

			body, ok := req.Body.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, testCase.expected, body)
		})
	}
}

func TestJobPurgeBuilder(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{response: jsonResponse(`{"jobid":"JOB00023","jobname":"TESTJOB","owner":"USER1","status":"0"}`)}

	feedback, err := zosmf.NewJobPurgeBuilder(exec, zosmf.JobID("TESTJOB", "JOB00023")).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TESTJOB", feedback.JobName)

	req := exec.requests[0]
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/zosmf/restjobs/jobs/TESTJOB/JOB00023", req.Path)
	assert.Equal(t, "2.0", req.Headers.Get("X-IBM-Job-Modify-Version"))
}
