package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// HTTPClient drives an http.Handler in-process.
type HTTPClient struct {
	handler http.Handler
	token   string
}

func NewHTTPClient(handler http.Handler, token string) *HTTPClient {
	return &HTTPClient{handler: handler, token: token}
}

type Request struct {
	Method      string
	Path        string
	Body        any
	Headers     map[string]string
	QueryParams map[string]string
}

type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Envelope is the decoded shape every API reply shares.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Details   []string        `json:"details"`
	Timestamp string          `json:"timestamp"`
}

// Do performs req. A string or []byte body is sent verbatim, anything else
// as JSON.
func (c *HTTPClient) Do(req Request) (*Response, error) {
	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case string:
		body = strings.NewReader(b)
	case []byte:
		body = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, body)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if len(req.QueryParams) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.QueryParams {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, httpReq)

	return &Response{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
		Headers:    w.Header(),
	}, nil
}

func (c *HTTPClient) GET(path string, query ...map[string]string) (*Response, error) {
	req := Request{Method: http.MethodGet, Path: path}
	if len(query) > 0 {
		req.QueryParams = query[0]
	}
	return c.Do(req)
}

func (c *HTTPClient) POST(path string, body any) (*Response, error) {
	return c.Do(Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *HTTPClient) PUT(path string, body any) (*Response, error) {
	return c.Do(Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *HTTPClient) DELETE(path string, query ...map[string]string) (*Response, error) {
	req := Request{Method: http.MethodDelete, Path: path}
	if len(query) > 0 {
		req.QueryParams = query[0]
	}
	return c.Do(req)
}

// Envelope decodes the response body.
func (r *Response) Envelope() (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(r.Body, &env)
	return env, err
}

// DecodeData decodes the envelope's data member into target.
func (r *Response) DecodeData(target any) error {
	env, err := r.Envelope()
	if err != nil {
		return err
	}
	return json.Unmarshal(env.Data, target)
}
