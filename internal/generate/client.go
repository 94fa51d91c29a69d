package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"planfairy/internal/domain"
	"planfairy/internal/render"
)

// FileText is one extracted-text attachment sent with a generation request.
type FileText struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Request is the JSON body sent to POST /v1/plan.
type Request struct {
	PlanType           domain.PlanType  `json:"planType"`
	Form               *domain.PlanForm `json:"form"`
	FilesText          []FileText       `json:"filesText"`
	CustomInstructions string           `json:"customInstructions,omitempty"`
}

// Response holds the generated HTML fragment returned by the plan service.
type Response struct {
	HTML string `json:"html"`
}

// Client provides access to the remote plan-generation service.
type Client interface {
	// GeneratePlan sends a form snapshot and returns the generated fragment.
	GeneratePlan(ctx context.Context, req Request) (*Response, error)

	// Available checks whether the plan service is reachable.
	Available(ctx context.Context) bool
}

// planClient implements Client against the planserver HTTP API.
type planClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client that talks to the configured plan service.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &planClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *planClient) GeneratePlan(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, req)
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				PlanType:  req.PlanType,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			resp.HTML = EnsureMarkup(resp.HTML)
			return resp, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout, and don't retry
		// requests the service itself rejected.
		if ctx.Err() != nil {
			break
		}
		var up *UpstreamError
		if errors.As(err, &up) && up.Status >= 400 && up.Status < 500 {
			break
		}
	}

	c.observer.OnCallComplete(CallEvent{
		PlanType:  req.PlanType,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(classify(ctx, lastErr)),
	})

	return nil, classify(ctx, lastErr)
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var up *UpstreamError
	if errors.As(err, &up) {
		return up
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}

func (c *planClient) doRequest(ctx context.Context, req Request) (*Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/v1/plan"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

func (c *planClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/healthz"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// EnsureMarkup defends against a service reply that contains no markup at
// all: plain text is wrapped in a heading plus an escaped, line-broken
// paragraph instead of being rendered raw.
func EnsureMarkup(html string) string {
	if strings.Contains(html, "<") {
		return html
	}
	return "<h1>Generated Plan</h1><p>" + render.MultilineHTML(html) + "</p>"
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
