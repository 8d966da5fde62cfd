package zosmf_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// fakeExecutor records the requests it receives and returns canned responses.
type fakeExecutor struct {
	requests []*zosmf.Request
	response *zosmf.Response
	err      error
}

func (e *fakeExecutor) Do(ctx context.Context, req *zosmf.Request) (*zosmf.Response, error) {
	e.requests = append(e.requests, req)

	if e.err != nil {
		return nil, e.err
	}

	if e.response != nil {
		return e.response, nil
	}

	return &zosmf.Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{},
		Body:       []byte("{}"),
	}, nil
}

func jsonResponse(body string) *zosmf.Response {
	return &zosmf.Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{},
		Body:       []byte(body),
	}
}

// marshaledBody round-trips a request body through JSON so tests can assert
// on the wire shape.
func marshaledBody(t *testing.T, req *zosmf.Request) map[string]interface{} {
	t.Helper()

	data, err := json.Marshal(req.Body)
	require.NoError(t, err)

	var body map[string]interface{}

	require.NoError(t, json.Unmarshal(data, &body))

	return body
}

func TestBuilder_StateIndependence(t *testing.T) {
	t.Parallel()

	base := zosmf.NewBuilder[struct{}](nil, http.MethodGet, "/test").Query("shared", "yes")

	first := base.Query("branch", "one").Header("X-Branch", "one")
	second := base.Query("branch", "two")

	firstReq := first.Request()
	secondReq := second.Request()
	baseReq := base.Request()

	assert.Equal(t, "one", firstReq.Query.Get("branch"))
	assert.Equal(t, "two", secondReq.Query.Get("branch"))
	assert.Empty(t, baseReq.Query.Get("branch"))

	assert.Equal(t, "one", firstReq.Headers.Get("X-Branch"))
	assert.Empty(t, secondReq.Headers.Get("X-Branch"))

	assert.Equal(t, "yes", firstReq.Query.Get("shared"))
	assert.Equal(t, "yes", secondReq.Query.Get("shared"))
}

func TestBuilder_LastValueWins(t *testing.T) {
	t.Parallel()

	builder := zosmf.NewBuilder[struct{}](nil, http.MethodGet, "/test").
		Query("key", "first").
		Query("key", "second").
		Header("X-Key", "first").
		Header("X-Key", "second")

	req := builder.Request()

	assert.Equal(t, []string{"second"}, req.Query["key"])
	assert.Equal(t, []string{"second"}, req.Headers["X-Key"])
}

func TestBuilder_OmittedParametersAbsent(t *testing.T) {
	t.Parallel()

	req := zosmf.NewBuilder[struct{}](nil, http.MethodGet, "/test").Request()

	assert.Empty(t, req.Query)
	assert.Empty(t, req.Headers)
	assert.Nil(t, req.Body)
	assert.Nil(t, req.RawBody)
}

func TestBuilder_Execute(t *testing.T) {
	t.Parallel()
	t.Run("decodes JSON by default", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"name":"value"}`)}

		result, err := zosmf.NewBuilder[map[string]string](exec, http.MethodGet, "/test").
			Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "value", (*result)["name"])

		require.Len(t, exec.requests, 1)
		assert.Equal(t, http.MethodGet, exec.requests[0].Method)
		assert.Equal(t, "/test", exec.requests[0].Path)
	})

	t.Run("requires an executor", func(t *testing.T) {
		t.Parallel()

		_, err := zosmf.NewBuilder[struct{}](nil, http.MethodGet, "/test").Execute(context.Background())
		require.ErrorIs(t, err, zosmf.ErrExecutorRequired)
	})

	t.Run("uses a custom parser", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse("not json at all")}

		result, err := zosmf.NewBuilder[string](exec, http.MethodGet, "/test").
			Parser(func(resp *zosmf.Response) (*string, error) {
				body := string(resp.Body)

				return &body, nil
			}).
			Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "not json at all", *result)
	})

	t.Run("reports malformed JSON as a decode error", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{response: jsonResponse(`{"truncated":`)}

		_, err := zosmf.NewBuilder[map[string]string](exec, http.MethodGet, "/test").
			Execute(context.Background())
		require.Error(t, err)

		decodeErr := &zosmf.DecodeError{}
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("sends JSON bodies with content type", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{}

		_, err := zosmf.NewBuilder[struct{}](exec, http.MethodPost, "/test").
			JSONBody(map[string]string{"key": "value"}).
			Parser(zosmf.ParseNone).
			Execute(context.Background())
		require.NoError(t, err)

		require.Len(t, exec.requests, 1)
		assert.Equal(t, "application/json", exec.requests[0].ContentType)
		assert.NotNil(t, exec.requests[0].Body)
		assert.Nil(t, exec.requests[0].RawBody)
	})

	t.Run("raw body replaces JSON body", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{}

		_, err := zosmf.NewBuilder[struct{}](exec, http.MethodPut, "/test").
			JSONBody(map[string]string{"key": "value"}).
			RawBody("text/plain", []byte("//JOB1 JOB")).
			Parser(zosmf.ParseNone).
			Execute(context.Background())
		require.NoError(t, err)

		require.Len(t, exec.requests, 1)
		assert.Nil(t, exec.requests[0].Body)
		assert.Equal(t, []byte("//JOB1 JOB"), exec.requests[0].RawBody)
		assert.Equal(t, "text/plain", exec.requests[0].ContentType)
	})
}

func TestResponse_HeaderAccessors(t *testing.T) {
	t.Parallel()

	resp := &zosmf.Response{
		Headers: http.Header{
			"Etag":              []string{"B5C2D4E3"},
			"X-Ibm-Txid":        []string{"txid-123"},
			"X-Ibm-Session-Ref": []string{"ref-456"},
		},
	}

	assert.Equal(t, "B5C2D4E3", resp.Etag())
	assert.Equal(t, "txid-123", resp.TransactionID())
	assert.Equal(t, "ref-456", resp.SessionRef())
}
