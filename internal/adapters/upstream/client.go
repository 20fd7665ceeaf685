package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"

	"github.com/Tarush5253/swasthya-setu/internal/config"
	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

var upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "swasthyasetu_upstream_requests_total",
	Help: "Upstream backend calls by endpoint and outcome.",
}, []string{"endpoint", "outcome"})

// Client talks to the upstream REST backend. Every call goes through a
// circuit breaker; failures map onto the gateway's error taxonomy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

var _ ports.UpstreamClient = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cb:         config.NewCircuitBreaker("Upstream-API"),
	}
}

// Available reports whether the breaker is letting calls through.
func (c *Client) Available() bool {
	return c.cb.State() != gobreaker.StateOpen
}

type userEnvelope struct {
	User *domain.User `json:"user"`
}

type authEnvelope struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) Verify(ctx context.Context, token string) (*domain.User, error) {
	var env userEnvelope
	if err := c.do(ctx, "verify", http.MethodGet, "/auth/verify", token, nil, &env, http.StatusOK); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("verify response missing user")
	}
	return env.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	body := map[string]any{"email": email, "password": password, "role": role}
	var env authEnvelope
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", body, &env, http.StatusOK); err != nil {
		return "", nil, err
	}
	if env.Token == "" || env.User == nil {
		return "", nil, fmt.Errorf("login response missing token or user")
	}
	return env.Token, env.User, nil
}

func (c *Client) Register(ctx context.Context, params ports.RegisterParams) (string, *domain.User, error) {
	var env authEnvelope
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", params, &env, http.StatusCreated, http.StatusOK); err != nil {
		return "", nil, err
	}
	if env.Token == "" || env.User == nil {
		return "", nil, fmt.Errorf("register response missing token or user")
	}
	return env.Token, env.User, nil
}

func (c *Client) Hospitals(ctx context.Context) ([]domain.Hospital, error) {
	var hospitals []domain.Hospital
	if err := c.do(ctx, "hospitals", http.MethodGet, "/hospitals", "", nil, &hospitals, http.StatusOK); err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (c *Client) BloodBanks(ctx context.Context) ([]domain.BloodBank, error) {
	var banks []domain.BloodBank
	if err := c.do(ctx, "blood_banks", http.MethodGet, "/blood-banks", "", nil, &banks, http.StatusOK); err != nil {
		return nil, err
	}
	return banks, nil
}

func (c *Client) UpdateBeds(ctx context.Context, token, hospitalID string, beds domain.BedUpdate) (*domain.Hospital, error) {
	body := map[string]any{"beds": beds}
	var hospital domain.Hospital
	path := "/hospitals/" + hospitalID + "/beds"
	if err := c.do(ctx, "update_beds", http.MethodPut, path, token, body, &hospital, http.StatusOK); err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (c *Client) UpdateStock(ctx context.Context, token, bloodBankID string, stock domain.BloodStock) (*domain.BloodBank, error) {
	body := map[string]any{"stock": stock}
	var bank domain.BloodBank
	path := "/blood-banks/" + bloodBankID + "/stock"
	if err := c.do(ctx, "update_stock", http.MethodPatch, path, token, body, &bank, http.StatusOK); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (c *Client) CreateBedRequest(ctx context.Context, token, hospitalID string, params ports.BedRequestParams) (*domain.BedRequest, error) {
	var created domain.BedRequest
	path := "/requests/" + hospitalID
	if err := c.do(ctx, "create_bed_request", http.MethodPost, path, token, params, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) CreateBloodRequest(ctx context.Context, token, bloodBankID string, params ports.BloodRequestParams) (*domain.BloodRequest, error) {
	var created domain.BloodRequest
	path := "/requests/blood-requests/" + bloodBankID
	if err := c.do(ctx, "create_blood_request", http.MethodPost, path, token, params, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) HospitalBedRequests(ctx context.Context, token string) ([]domain.BedRequest, error) {
	var requests []domain.BedRequest
	if err := c.do(ctx, "bed_requests", http.MethodGet, "/requests/hospital-bed-requests", token, nil, &requests, http.StatusOK); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) HospitalBloodRequests(ctx context.Context, token string) ([]domain.BloodRequest, error) {
	var requests []domain.BloodRequest
	if err := c.do(ctx, "blood_requests", http.MethodGet, "/requests/hospital-blood-requests", token, nil, &requests, http.StatusOK); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) UpdateBedRequestStatus(ctx context.Context, token, requestID string, status domain.RequestStatus) (*domain.BedRequest, error) {
	body := map[string]any{"status": status}
	var updated domain.BedRequest
	path := "/requests/bed-requests/" + requestID
	if err := c.do(ctx, "bed_request_status", http.MethodPatch, path, token, body, &updated, http.StatusOK); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) UpdateBloodRequestStatus(ctx context.Context, token, requestID string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	body := map[string]any{"status": status}
	var updated domain.BloodRequest
	path := "/requests/blood-requests/" + requestID
	if err := c.do(ctx, "blood_request_status", http.MethodPatch, path, token, body, &updated, http.StatusOK); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) History(ctx context.Context, token string) ([]domain.HistoryEntry, error) {
	var history []domain.HistoryEntry
	if err := c.do(ctx, "history", http.MethodGet, "/requests/history", token, nil, &history, http.StatusOK); err != nil {
		return nil, err
	}
	return history, nil
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type httpResult struct {
	status int
	body   []byte
}

// do runs one upstream call. Transport failures and an open breaker map to
// ErrUpstreamUnavailable; any unexpected status maps to UpstreamError with
// the backend's message field when present. Only transport failures feed the
// breaker: a decoded HTTP response is a breaker success whatever its status,
// so a run of bad credentials from one user never cuts everyone off.
func (c *Client) do(ctx context.Context, endpoint, method, path, token string, body, out any, wantStatuses ...int) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			return nil, err
		}
		return httpResult{status: resp.StatusCode, body: buf.Bytes()}, nil
	})
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit open", ports.ErrUpstreamUnavailable)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ports.ErrUpstreamUnavailable, err)
	}

	res := result.(httpResult)
	for _, want := range wantStatuses {
		if res.status != want {
			continue
		}
		upstreamRequests.WithLabelValues(endpoint, "ok").Inc()
		if out == nil {
			return nil
		}
		if len(res.body) == 0 {
			return fmt.Errorf("empty response body")
		}
		if err := json.Unmarshal(res.body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	upstreamRequests.WithLabelValues(endpoint, "error").Inc()
	var env messageEnvelope
	_ = json.Unmarshal(res.body, &env)
	if env.Message == "" {
		env.Message = http.StatusText(res.status)
	}
	return &ports.UpstreamError{StatusCode: res.status, Message: env.Message}
}
