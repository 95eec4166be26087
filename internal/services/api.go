// Reservation API client
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/shared"
)

const (
	defaultBaseURL = "http://localhost:8000"

	loginPath        = "/login"
	registerPath     = "/register"
	reservationsPath = "/reservations"
	availabilityPath = "/reservations/check-availability"
	securePath       = "/api/secure/reservations"

	apiKeyHeader    = "X-API-Key"
	requestIDHeader = "X-Request-ID"
)

// ReservationService is the HTTP client for the coworking reservation API.
type ReservationService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewReservationService creates a client for the API at baseURL.
//
// apiKey is only required for the API-key endpoints ([ReservationService.SecureReserve],
// [ReservationService.ListReservations], [ReservationService.GetReservation]).
func NewReservationService(baseURL, apiKey string, client *http.Client) *ReservationService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ReservationService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}
}

// BaseURL returns the API root this client talks to.
func (s *ReservationService) BaseURL() string { return s.baseURL }

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
}

// OK reports whether the status is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v. A body that is not the expected JSON is
// [shared.ErrMalformedResponse].
func (r *APIResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	return nil
}

// APIError is a non-2xx response. Detail carries the server's "detail" message when present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// Unwrap classifies the error: always [shared.ErrServer], plus [shared.ErrAuthFailed] for 401/403.
func (e *APIError) Unwrap() []error {
	errs := []error{shared.ErrServer}
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		errs = append(errs, shared.ErrAuthFailed)
	}
	return errs
}

// DetailOf returns the server detail carried by err, if any.
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// authFunc decorates a request with credentials.
type authFunc func(*http.Request)

func bearer(token string) authFunc {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (s *ReservationService) withAPIKey(req *http.Request) {
	req.Header.Set(apiKeyHeader, s.apiKey)
}

// Do sends a request with an optional JSON body and returns the raw response.
//
// Transport failures are wrapped with [shared.ErrNetwork]; the status code is not interpreted.
func (s *ReservationService) Do(ctx context.Context, method, path string, body any, auth authFunc) (*APIResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != nil {
		auth(req)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrNetwork, err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
		RequestID:  requestID,
	}, nil
}

// call performs Do and converts non-2xx responses into an [APIError].
func (s *ReservationService) call(ctx context.Context, method, path string, body any, auth authFunc) (*APIResponse, error) {
	resp, err := s.Do(ctx, method, path, body, auth)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return resp, &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(resp.Body)}
	}
	return resp, nil
}

// parseDetail extracts the "detail" field of an error body.
//
// Validation errors carry a list of {msg} objects; their messages are joined.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return detail
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// Login exchanges credentials for an access token.
func (s *ReservationService) Login(ctx context.Context, creds models.Credentials) (string, error) {
	resp, err := s.call(ctx, http.MethodPost, loginPath, creds, nil)
	if err != nil {
		return "", err
	}

	var body models.LoginResponse
	if err := resp.Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: login response has no access_token", shared.ErrServer)
	}

	return body.AccessToken, nil
}

// Register creates an account.
func (s *ReservationService) Register(ctx context.Context, creds models.Credentials) error {
	_, err := s.call(ctx, http.MethodPost, registerPath, creds, nil)
	return err
}

// CheckAvailability returns per-seat availability for date.
func (s *ReservationService) CheckAvailability(ctx context.Context, token, date string) ([]models.SeatAvailability, error) {
	path := availabilityPath + "?" + url.Values{"reservation_date": {date}}.Encode()

	resp, err := s.call(ctx, http.MethodGet, path, nil, bearer(token))
	if err != nil {
		return nil, err
	}

	var seats []models.SeatAvailability
	if err := resp.Decode(&seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// Reserve submits a bearer-authenticated reservation.
func (s *ReservationService) Reserve(ctx context.Context, token string, req models.ReservationRequest) error {
	_, err := s.call(ctx, http.MethodPost, reservationsPath, req, bearer(token))
	return err
}

// SecureReserve submits an API-key authenticated reservation.
func (s *ReservationService) SecureReserve(ctx context.Context, req models.SecureReservationRequest) error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: api key is not configured", shared.ErrMissingCredentials)
	}
	_, err := s.call(ctx, http.MethodPost, securePath, req, s.withAPIKey)
	return err
}

// ListReservations returns reservations matching filter (API key).
func (s *ReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: api key is not configured", shared.ErrMissingCredentials)
	}

	query := url.Values{}
	if filter.UserName != "" {
		query.Set("user_name", filter.UserName)
	}
	if filter.SeatNumber > 0 {
		query.Set("seat_number", strconv.Itoa(filter.SeatNumber))
	}
	if filter.ReservationDate != "" {
		query.Set("reservation_date", filter.ReservationDate)
	}

	path := securePath
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := s.call(ctx, http.MethodGet, path, nil, s.withAPIKey)
	if err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	if err := resp.Decode(&reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetReservation fetches a single reservation by ID (API key).
func (s *ReservationService) GetReservation(ctx context.Context, id int) (*models.Reservation, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: api key is not configured", shared.ErrMissingCredentials)
	}

	resp, err := s.call(ctx, http.MethodGet, fmt.Sprintf("%s/%d", securePath, id), nil, s.withAPIKey)
	if err != nil {
		return nil, notFound(err)
	}

	var reservation models.Reservation
	if err := resp.Decode(&reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation deletes one of the caller's reservations (bearer).
func (s *ReservationService) CancelReservation(ctx context.Context, token string, id int) (string, error) {
	resp, err := s.call(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", reservationsPath, id), nil, bearer(token))
	if err != nil {
		return "", notFound(err)
	}

	var body models.MessageResponse
	if err := resp.Decode(&body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// Ping calls the API root and returns its welcome message.
func (s *ReservationService) Ping(ctx context.Context) (string, error) {
	resp, err := s.call(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return "", err
	}

	var body models.MessageResponse
	if err := resp.Decode(&body); err != nil {
		return "", err
	}
	return body.Message, nil
}

func notFound(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", shared.ErrReservationNotFound, err)
	}
	return err
}
