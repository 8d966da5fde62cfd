package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zosmfhttp "github.com/wmcgee3/z-osmf-go/internal/http"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// MockSession for testing.
type MockSession struct {
	cookie string
}

func (s *MockSession) Cookie() (string, bool) {
	return s.cookie, s.cookie != ""
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request with session cookie", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/zosmf/info", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "LtpaToken2=abc123", request.Header.Get("Cookie"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_, hasCSRF := request.Header["X-Csrf-Zosmf-Header"]
			assert.True(t, hasCSRF)

			_ = json.NewEncoder(writer).Encode(map[string]string{"zosmf_version": "29"})
		}))
		defer server.Close()

		session := &MockSession{cookie: "LtpaToken2=abc123"}
		client := zosmfhttp.NewClient(server.URL, session)

		req := &zosmf.Request{
			Method: "GET",
			Path:   "/zosmf/info",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "29", result["zosmf_version"])
	})

	t.Run("falls back to basic auth without a session", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			username, password, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "USER1", username)
			assert.Equal(t, "secret", password)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, &MockSession{}, zosmfhttp.WithBasicAuth("USER1", "secret"))

		resp, err := client.Get(context.Background(), "/zosmf/info", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/zosmf/restjobs/jobs", request.URL.Path)
			assert.Equal(t, "owner=%2A", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil)

		req := &zosmf.Request{
			Method: "GET",
			Path:   "/zosmf/restjobs/jobs",
			Query:  url.Values{"owner": []string{"*"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("JSON body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "hmigrate", body["request"])

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil)

		req := &zosmf.Request{
			Method: "PUT",
			Path:   "/zosmf/restfiles/ds/MY.DATA",
			Body:   map[string]string{"request": "hmigrate"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("raw body keeps its content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "text/plain", request.Header.Get("Content-Type"))
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil)

		req := &zosmf.Request{
			Method:      "PUT",
			Path:        "/zosmf/restjobs/jobs",
			RawBody:     []byte("//TESTJOB JOB\n"),
			ContentType: "text/plain",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response decodes the z/OSMF error body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"category": 4,
				"rc":       8,
				"reason":   16,
				"message":  "data set not found",
			})
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/zosmf/restfiles/ds/SYS1.NOPE", nil)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		zosmfErr := &zosmf.Error{}
		require.ErrorAs(t, err, &zosmfErr)
		assert.Equal(t, 404, zosmfErr.StatusCode)
		assert.Equal(t, 8, zosmfErr.ReturnCode)
		assert.Equal(t, "data set not found", zosmfErr.Message)
		assert.True(t, zosmf.IsNotFound(err))
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		t.Parallel()

		client := zosmfhttp.NewClient("http://127.0.0.1:1", nil)

		_, err := client.Get(context.Background(), "/zosmf/info", nil)
		require.Error(t, err)

		transportErr := &zosmf.TransportError{}
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "base", request.Header.Get("X-IBM-Attributes"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil)

		req := &zosmf.Request{
			Method:  "GET",
			Path:    "/zosmf/restfiles/ds",
			Headers: http.Header{"X-Ibm-Attributes": []string{"base"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("explicit Authorization header wins over configured credentials", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			username, password, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "ALICE", username)
			assert.Equal(t, "alice-pw", password)
			assert.Empty(t, request.Header.Get("Cookie"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		session := &MockSession{cookie: "LtpaToken2=stale"}
		client := zosmfhttp.NewClient(server.URL, session, zosmfhttp.WithBasicAuth("CONFIGUSER", "config-pw"))

		header := http.Header{}
		(&http.Request{Header: header}).SetBasicAuth("ALICE", "alice-pw")

		req := &zosmf.Request{
			Method:  "POST",
			Path:    "/zosmf/services/authenticate",
			Headers: header,
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("multi-valued request header keeps all values", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, []string{"one", "two"}, request.Header.Values("X-Custom"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil)

		req := &zosmf.Request{
			Method:  "GET",
			Path:    "/zosmf/restfiles/ds",
			Headers: http.Header{"X-Custom": []string{"one", "two"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := zosmfhttp.NewClient(server.URL, nil, zosmfhttp.WithLogger(logger), zosmfhttp.WithDebug(true))

		req := &zosmf.Request{
			Method: "GET",
			Path:   "/zosmf/info",
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("interceptors run around the request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "injected", request.Header.Get("X-Extra"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		chain := zosmf.NewInterceptorChain()
		chain.AddRequestInterceptor(zosmf.HeaderInterceptor("X-Extra", "injected"))

		var observed int

		chain.AddResponseInterceptor(func(ctx context.Context, req *zosmf.Request, resp *zosmf.Response) error {
			observed = resp.StatusCode

			return nil
		})

		client := zosmfhttp.NewClient(server.URL, nil, zosmfhttp.WithInterceptors(chain))

		_, err := client.Get(context.Background(), "/zosmf/info", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, observed)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil,
			zosmfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry authentication failures", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil,
			zosmfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, 1, attempts) // Should not retry
		assert.True(t, zosmf.IsAuthError(err))
	})

	t.Run("does not retry by default", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := zosmfhttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*zosmfhttp.Client, context.Context) (*zosmf.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *zosmfhttp.Client, ctx context.Context) (*zosmf.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *zosmfhttp.Client, ctx context.Context) (*zosmf.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *zosmfhttp.Client, ctx context.Context) (*zosmf.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *zosmfhttp.Client, ctx context.Context) (*zosmf.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := zosmfhttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}
