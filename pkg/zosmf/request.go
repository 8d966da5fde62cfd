package zosmf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Request represents a single HTTP exchange to be issued against z/OSMF.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Headers     http.Header
	Body        interface{} // JSON-encoded unless RawBody is set
	RawBody     []byte
	ContentType string
}

// Response represents the raw result of a Request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	URL        string
}

// Etag returns the Etag header, if the server sent one.
func (r *Response) Etag() string {
	return r.Headers.Get("Etag")
}

// TransactionID returns the X-IBM-Txid header, if the server sent one.
func (r *Response) TransactionID() string {
	return r.Headers.Get("X-IBM-Txid")
}

// SessionRef returns the X-IBM-Session-Ref header, if the server sent one.
func (r *Response) SessionRef() string {
	return r.Headers.Get("X-IBM-Session-Ref")
}

// Executor issues a Request and returns the Response. The transport in
// internal/http implements this; tests substitute fakes.
type Executor interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// ParseFunc decodes a Response into the operation's result type.
type ParseFunc[T any] func(*Response) (*T, error)

// Builder accumulates the optional query parameters, headers, and body for
// one operation and executes it exactly once.
//
// Builders are values: every setter returns a new builder and never mutates
// the receiver, so deriving two requests from one base builder is safe. An
// omitted setter leaves the corresponding query parameter or header absent
// from the request; setting the same key twice keeps the last value.
type Builder[T any] struct {
	exec        Executor
	method      string
	path        string
	query       url.Values
	headers     http.Header
	body        interface{}
	rawBody     []byte
	contentType string
	parse       ParseFunc[T]
}

// NewBuilder creates a builder for the given method and path. The result is
// decoded from JSON unless a custom parser is installed with Parser.
func NewBuilder[T any](exec Executor, method, path string) Builder[T] {
	return Builder[T]{
		exec:   exec,
		method: method,
		path:   path,
	}
}

// Query returns a builder with the query parameter set. The last value wins.
func (b Builder[T]) Query(key, value string) Builder[T] {
	query := cloneValues(b.query)
	query.Set(key, value)
	b.query = query

	return b
}

// QueryInt returns a builder with an integer query parameter set.
func (b Builder[T]) QueryInt(key string, value int) Builder[T] {
	return b.Query(key, strconv.Itoa(value))
}

// Header returns a builder with the header set. The last value wins.
func (b Builder[T]) Header(key, value string) Builder[T] {
	headers := cloneHeader(b.headers)
	headers.Set(key, value)
	b.headers = headers

	return b
}

// HeaderInt returns a builder with an integer header set.
func (b Builder[T]) HeaderInt(key string, value int) Builder[T] {
	return b.Header(key, strconv.Itoa(value))
}

// JSONBody returns a builder whose request body is the JSON encoding of body.
func (b Builder[T]) JSONBody(body interface{}) Builder[T] {
	b.body = body
	b.rawBody = nil
	b.contentType = "application/json"

	return b
}

// RawBody returns a builder whose request body is sent verbatim with the
// given content type.
func (b Builder[T]) RawBody(contentType string, data []byte) Builder[T] {
	b.body = nil
	b.rawBody = data
	b.contentType = contentType

	return b
}

// Parser returns a builder that decodes responses with fn instead of the
// default JSON decoding.
func (b Builder[T]) Parser(fn ParseFunc[T]) Builder[T] {
	b.parse = fn

	return b
}

// Path returns the request path the builder will use.
func (b Builder[T]) Path() string {
	return b.path
}

// Request materializes the accumulated state into a Request without
// executing it.
func (b Builder[T]) Request() *Request {
	return &Request{
		Method:      b.method,
		Path:        b.path,
		Query:       cloneValues(b.query),
		Headers:     cloneHeader(b.headers),
		Body:        b.body,
		RawBody:     b.rawBody,
		ContentType: b.contentType,
	}
}

// Execute issues the request and decodes the response.
func (b Builder[T]) Execute(ctx context.Context) (*T, error) {
	if b.exec == nil {
		return nil, ErrExecutorRequired
	}

	resp, err := b.exec.Do(ctx, b.Request())
	if err != nil {
		return nil, err
	}

	if b.parse != nil {
		return b.parse(resp)
	}

	return ParseJSON[T](resp)
}

// ParseJSON decodes a response body as JSON into T. A failure to decode is a
// DecodeError, never a silently defaulted value.
func ParseJSON[T any](resp *Response) (*T, error) {
	var result T

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, &DecodeError{URL: resp.URL, Err: err}
	}

	return &result, nil
}

// ParseNone discards the response body. Used by operations whose success is
// conveyed entirely by the status code.
func ParseNone(resp *Response) (*struct{}, error) {
	return &struct{}{}, nil
}

func cloneValues(values url.Values) url.Values {
	cloned := make(url.Values, len(values))
	for key, vals := range values {
		cloned[key] = append([]string(nil), vals...)
	}

	return cloned
}

func cloneHeader(headers http.Header) http.Header {
	cloned := make(http.Header, len(headers))
	for key, vals := range headers {
		cloned[key] = append([]string(nil), vals...)
	}

	return cloned
}
