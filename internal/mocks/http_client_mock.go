package mocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sync"
	"time"
)

// HTTPClientInterface defines the interface for HTTP clients used by the application
type HTTPClientInterface interface {
	Do(req *http.Request) (*http.Response, error)
}

// MockHTTPClient fakes the Telegram Bot API over HTTP. Responses are keyed by
// API method (the last path segment, e.g. "sendMessage"); getMe answers with
// a bot user unless configured otherwise.
type MockHTTPClient struct {
	mu sync.RWMutex

	requests []CapturedRequest

	results map[string]json.RawMessage
	apiErrs map[string]apiError
	errors  map[string]error
}

// CapturedRequest represents a captured HTTP request for verification
type CapturedRequest struct {
	APIMethod string
	URL       *url.URL
	Form      url.Values
	Timestamp time.Time
}

type apiError struct {
	code        int
	description string
	retryAfter  int
}

type apiResponse struct {
	Ok          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

// ErrNetwork is returned by SimulateNetworkError
var ErrNetwork = errors.New("network unreachable")

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	m := &MockHTTPClient{
		results: make(map[string]json.RawMessage),
		apiErrs: make(map[string]apiError),
		errors:  make(map[string]error),
	}
	m.results["getMe"] = json.RawMessage(`{"id":1,"is_bot":true,"first_name":"Remind","username":"remind_bot"}`)
	return m
}

// Do implements the HTTPClientInterface.Do method
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	form := url.Values{}
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(body))
		form, _ = url.ParseQuery(string(body))
	}

	method := path.Base(req.URL.Path)
	m.requests = append(m.requests, CapturedRequest{
		APIMethod: method,
		URL:       req.URL,
		Form:      form,
		Timestamp: time.Now(),
	})

	if err, ok := m.errors[method]; ok {
		return nil, err
	}

	resp := apiResponse{Ok: true, Result: json.RawMessage(`true`)}
	status := http.StatusOK
	if e, ok := m.apiErrs[method]; ok {
		resp = apiResponse{ErrorCode: e.code, Description: e.description}
		if e.retryAfter > 0 {
			resp.Parameters = &struct {
				RetryAfter int `json:"retry_after,omitempty"`
			}{RetryAfter: e.retryAfter}
		}
		status = e.code
	} else if result, ok := m.results[method]; ok {
		resp.Result = result
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("mock response: %w", err)
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}

// SetResult makes apiMethod succeed with the given JSON result
func (m *MockHTTPClient) SetResult(apiMethod, resultJSON string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[apiMethod] = json.RawMessage(resultJSON)
	delete(m.apiErrs, apiMethod)
	delete(m.errors, apiMethod)
}

// SetAPIError makes apiMethod answer ok=false with the given error code
func (m *MockHTTPClient) SetAPIError(apiMethod string, code int, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiErrs[apiMethod] = apiError{code: code, description: description}
}

// SimulateRateLimit answers apiMethod with 429 and a retry_after hint
func (m *MockHTTPClient) SimulateRateLimit(apiMethod string, retryAfter int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiErrs[apiMethod] = apiError{
		code:        http.StatusTooManyRequests,
		description: fmt.Sprintf("Too Many Requests: retry after %d", retryAfter),
		retryAfter:  retryAfter,
	}
}

// SimulateNetworkError fails apiMethod at the transport level
func (m *MockHTTPClient) SimulateNetworkError(apiMethod string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[apiMethod] = ErrNetwork
}

// GetRequests returns all captured requests
func (m *MockHTTPClient) GetRequests() []CapturedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]CapturedRequest(nil), m.requests...)
}

// GetRequestsFor returns the captured requests for one API method
func (m *MockHTTPClient) GetRequestsFor(apiMethod string) []CapturedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []CapturedRequest
	for _, r := range m.requests {
		if r.APIMethod == apiMethod {
			out = append(out, r)
		}
	}
	return out
}

// GetLastRequest returns the most recent request, nil when none
func (m *MockHTTPClient) GetLastRequest() *CapturedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return nil
	}
	last := m.requests[len(m.requests)-1]
	return &last
}

// Reset clears captured requests and configured failures
func (m *MockHTTPClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.apiErrs = make(map[string]apiError)
	m.errors = make(map[string]error)
}
