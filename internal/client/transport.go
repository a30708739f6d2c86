package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"
	"github.com/hbjsyndicate/syndicate-api/internal/models"
)

const (
	contactPath = "/api/contact"
	healthPath  = "/api/health"

	defaultHTTPTimeout = 30 * time.Second
	maxResponseSize    = 1 << 20
)

// Result is the server's answer to one submission. Success is false for
// every non-2xx answer.
type Result struct {
	Success bool
	Status  int
	Message string
	Errors  []string
}

// Transport carries a submission to the server. An error means no answer
// was received at all.
type Transport interface {
	Submit(ctx context.Context, s models.Submission) (*Result, error)
}

// contactReply covers every body the contact endpoint can answer with
type contactReply struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Error   string   `json:"error"`
}

// HTTPTransport talks JSON to the contact API
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport for the API at baseURL. A nil client
// gets a default one with a 30s timeout.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Submit implements Transport.
func (t *HTTPTransport) Submit(ctx context.Context, s models.Submission) (*Result, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+contactPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", contactPath, err)
	}
	defer resp.Body.Close()

	result := &Result{
		Status:  resp.StatusCode,
		Success: resp.StatusCode >= 200 && resp.StatusCode < 300,
	}

	// An undecodable body still counts as an answer
	var reply contactReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&reply); err == nil {
		result.Message = reply.Message
		if result.Message == "" {
			result.Message = reply.Error
		}
		result.Errors = reply.Errors
		result.Success = result.Success && reply.Success
	}
	return result, nil
}

// Health fetches the health endpoint
func (t *HTTPTransport) Health(ctx context.Context) (*common.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+healthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", healthPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", healthPath, resp.StatusCode)
	}

	var health common.HealthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &health, nil
}
