package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/talia-baeva/slotline/internal/domain"
)

// Client provides access to the booking platform's onboarding API.
type Client interface {
	// StartSignup creates a registration session for the given plan.
	StartSignup(ctx context.Context, req SignupRequest) (*domain.RegistrationSession, error)

	// ValidateRegistration checks a token with the backend. An invalid token
	// is a normal outcome, not an error; only transport and server failures
	// return a non-nil error.
	ValidateRegistration(ctx context.Context, token string) (*ValidationResult, error)

	// ListPlans fetches all available plans, following pagination.
	ListPlans(ctx context.Context) ([]domain.Plan, error)

	// CompleteOnboarding submits the assembled draft as one atomic request.
	CompleteOnboarding(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}

// Config holds the HTTP client parameters.
type Config struct {
	BaseURL    string
	TimeoutMs  int
	MaxRetries int // applies to idempotent GETs only
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://api.slotline.app",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// httpClient implements Client over the platform's REST API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client talking to cfg.BaseURL.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
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

func (c *httpClient) StartSignup(ctx context.Context, req SignupRequest) (*domain.RegistrationSession, error) {
	// Signup is sent at most once per invocation; a retry could mint a second
	// token for the same email.
	var out signupResponse
	status, err := c.call(ctx, "signup", http.MethodPost, "/signup", req, &out, 0)
	if err != nil {
		return nil, err
	}
	if status == http.StatusConflict {
		return nil, fmt.Errorf("plan %s: %w", req.PlanID, ErrPlanUnavailable)
	}
	if err := classifyStatus(status); err != nil {
		return nil, err
	}
	return &domain.RegistrationSession{
		Token:     out.RegistrationToken,
		ExpiresAt: out.ExpiresAt,
		Plan:      out.SelectedPlan.toDomain().Summary(),
	}, nil
}

func (c *httpClient) ValidateRegistration(ctx context.Context, token string) (*ValidationResult, error) {
	var out validationResponse
	path := "/registration/" + url.PathEscape(token)
	status, err := c.call(ctx, "validate", http.MethodGet, path, nil, &out, c.cfg.MaxRetries)
	if err != nil {
		return nil, err
	}
	// Any 4xx verdict on a token means "not valid", never a failure: the
	// caller falls back to starting over.
	if status >= 400 && status < 500 {
		return &ValidationResult{Valid: false}, nil
	}
	if err := classifyStatus(status); err != nil {
		return nil, err
	}
	res := &ValidationResult{Valid: out.IsValid}
	if out.SelectedPlan != nil {
		summary := out.SelectedPlan.toDomain().Summary()
		res.Plan = &summary
	}
	if out.ExpiresAt != nil {
		res.ExpiresAt = *out.ExpiresAt
	}
	return res, nil
}

func (c *httpClient) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	page := 1
	for {
		var out planListResponse
		path := fmt.Sprintf("/plans?page=%d", page)
		status, err := c.call(ctx, "list_plans", http.MethodGet, path, nil, &out, c.cfg.MaxRetries)
		if err != nil {
			return nil, err
		}
		if err := classifyStatus(status); err != nil {
			return nil, err
		}
		for _, dto := range out.Plans {
			plans = append(plans, dto.toDomain())
		}
		if out.NextPage == nil || *out.NextPage <= page {
			break
		}
		page = *out.NextPage
	}
	return plans, nil
}

func (c *httpClient) CompleteOnboarding(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	// Never retried: the backend applies this all-or-nothing, and a blind
	// resend after an ambiguous failure could consume the token twice.
	var out CompletionResult
	status, err := c.call(ctx, "complete", http.MethodPost, "/onboarding/complete", req, &out, 0)
	if err != nil {
		return nil, err
	}
	if status == http.StatusGone || status == http.StatusConflict {
		return nil, ErrTokenConsumed
	}
	if err := classifyStatus(status); err != nil {
		return nil, err
	}
	return &out, nil
}

// classifyStatus maps a non-2xx status onto the error taxonomy. 2xx maps to
// nil.
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 500:
		return fmt.Errorf("status %d: %w", status, ErrServer)
	default:
		return fmt.Errorf("status %d: %w", status, ErrValidationRejected)
	}
}

// call performs one HTTP round trip, decoding a 2xx body into out and
// reporting a CallEvent. Transport failures are retried up to maxRetries
// times and surface as ErrNetwork. Non-2xx statuses are returned to the
// caller for classification; out is left untouched for them.
func (c *httpClient) call(ctx context.Context, op, method, path string, body, out any, maxRetries int) (int, error) {
	start := time.Now()

	timeout := time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	var status int
	attempts := 1 + maxRetries

	for i := 0; i < attempts; i++ {
		status, lastErr = c.doRequest(ctx, method, path, body, out)
		if lastErr == nil {
			c.observer.OnCallComplete(CallEvent{
				Op:        op,
				Status:    status,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   status < 400,
				ErrorCode: statusCode(status),
			})
			return status, nil
		}
		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	c.observer.OnCallComplete(CallEvent{
		Op:        op,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: "network",
	})
	return 0, fmt.Errorf("%w: %v", ErrNetwork, lastErr)
}

func statusCode(status int) string {
	if status < 400 {
		return ""
	}
	return fmt.Sprintf("http_%d", status)
}

func (c *httpClient) doRequest(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 && out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return 0, fmt.Errorf("decoding response: %w", err)
		}
	}
	return httpResp.StatusCode, nil
}
