package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/shared"
	tu "github.com/desertthunder/cowork/internal/testing"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestReservationService(t *testing.T) {
	ctx := context.Background()

	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewReservationService("http://example.com/", "key", customClient)

			if srv.BaseURL() != "http://example.com" {
				t.Errorf("expected trailing slash trimmed, got %s", srv.BaseURL())
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL and Nil Client", func(t *testing.T) {
			srv := NewReservationService("", "", nil)

			if srv.BaseURL() != defaultBaseURL {
				t.Errorf("expected default baseURL, got %s", srv.BaseURL())
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})
	})

	t.Run("Do", func(t *testing.T) {
		t.Run("Sets Request ID And Content Type", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get(requestIDHeader) == "" {
					t.Error("expected request id header")
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected json content type, got %s", r.Header.Get("Content-Type"))
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "", nil)
			resp, err := srv.Do(ctx, http.MethodPost, "/x", map[string]string{"a": "b"}, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.RequestID == "" {
				t.Error("expected response to carry the request id")
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewReservationService("http://example.com", "", nil)
			_, err := srv.Do(ctx, http.MethodGet, "/test\x00invalid", nil, nil)

			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Transport Failure Is A Network Error", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			srv := NewReservationService("http://example.com", "", client)

			_, err := srv.Do(ctx, http.MethodGet, "/", nil, nil)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Body Read Failure Is A Network Error", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}
			srv := NewReservationService("http://example.com", "", client)

			_, err := srv.Do(ctx, http.MethodGet, "/", nil, nil)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			canceled, cancel := context.WithCancel(ctx)
			cancel()

			srv := NewReservationService(server.URL, "", nil)
			if _, err := srv.Do(canceled, http.MethodGet, "/", nil, nil); err == nil {
				t.Error("expected error for canceled context")
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Success Returns Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/login" {
					t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
				}
				var creds models.Credentials
				json.NewDecoder(r.Body).Decode(&creds)
				if creds.Username != "ana" || creds.Password != "pw" {
					t.Errorf("unexpected credentials %+v", creds)
				}
				writeJSON(w, http.StatusOK, map[string]string{"access_token": "abc", "token_type": "bearer"})
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "", nil)
			token, err := srv.Login(ctx, models.Credentials{Username: "ana", Password: "pw"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "abc" {
				t.Errorf("expected token abc, got %s", token)
			}
		})

		t.Run("Unauthorized Carries Detail", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid username or password"})
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "", nil)
			_, err := srv.Login(ctx, models.Credentials{Username: "ana", Password: "bad"})

			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			if !errors.Is(err, shared.ErrServer) {
				t.Errorf("expected ErrServer, got %v", err)
			}
			if DetailOf(err) != "Invalid username or password" {
				t.Errorf("unexpected detail %q", DetailOf(err))
			}
		})

		t.Run("Undecodable Success Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				io.WriteString(w, "<html>maintenance</html>")
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "", nil)
			_, err := srv.Login(ctx, models.Credentials{Username: "ana", Password: "pw"})
			if !errors.Is(err, shared.ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
			if errors.Is(err, shared.ErrServer) {
				t.Errorf("expected no ErrServer for a 2xx response, got %v", err)
			}
		})

		t.Run("Missing Token Is A Server Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{})
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "", nil)
			if _, err := srv.Login(ctx, models.Credentials{}); !errors.Is(err, shared.ErrServer) {
				t.Errorf("expected ErrServer, got %v", err)
			}
		})
	})

	t.Run("Register", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var creds models.Credentials
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Username == "taken" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Username already taken"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
		}))
		defer server.Close()

		srv := NewReservationService(server.URL, "", nil)
		if err := srv.Register(ctx, models.Credentials{Username: "new"}); err != nil {
			t.Errorf("expected success, got %v", err)
		}

		err := srv.Register(ctx, models.Credentials{Username: "taken"})
		if DetailOf(err) != "Username already taken" {
			t.Errorf("expected detail, got %v", err)
		}
		if errors.Is(err, shared.ErrAuthFailed) {
			t.Error("400 should not be classified as auth failure")
		}
	})

	t.Run("CheckAvailability", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/reservations/check-availability" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("reservation_date") != "2025-03-01" {
				t.Errorf("unexpected date %s", r.URL.Query().Get("reservation_date"))
			}
			if r.Header.Get("Authorization") != "Bearer abc" {
				t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
			}
			writeJSON(w, http.StatusOK, []map[string]any{
				{"seat_number": 1, "available": true},
				{"seat_number": 2, "available": false},
			})
		}))
		defer server.Close()

		srv := NewReservationService(server.URL, "", nil)
		seats, err := srv.CheckAvailability(ctx, "abc", "2025-03-01")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(seats) != 2 || seats[1].SeatNumber != 2 || seats[1].Available {
			t.Errorf("unexpected seats %+v", seats)
		}
	})

	t.Run("Reserve", func(t *testing.T) {
		t.Run("Conflict Carries Detail", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req models.ReservationRequest
				json.NewDecoder(r.Body).Decode(&req)
				if req.SeatNumber != 5 || req.ReservationDate != "2025-03-01" {
					t.Errorf("unexpected body %+v", req)
				}
				writeJSON(w, http.StatusConflict, map[string]string{"detail": "Seat taken"})
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "", nil)
			err := srv.Reserve(ctx, "abc", models.ReservationRequest{SeatNumber: 5, ReservationDate: "2025-03-01"})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != http.StatusConflict || apiErr.Detail != "Seat taken" {
				t.Errorf("unexpected error %+v", apiErr)
			}
		})

		t.Run("Non JSON Error Has Empty Detail", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				io.WriteString(w, "<html>bad gateway</html>")
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "", nil)
			err := srv.Reserve(ctx, "abc", models.ReservationRequest{SeatNumber: 1, ReservationDate: "2025-03-01"})
			if !errors.Is(err, shared.ErrServer) {
				t.Errorf("expected ErrServer, got %v", err)
			}
			if DetailOf(err) != "" {
				t.Errorf("expected empty detail, got %q", DetailOf(err))
			}
		})
	})

	t.Run("SecureReserve", func(t *testing.T) {
		t.Run("Sends API Key", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/secure/reservations" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("X-API-Key") != "k-1" {
					t.Errorf("unexpected api key %q", r.Header.Get("X-API-Key"))
				}
				if r.Header.Get("Authorization") != "" {
					t.Error("api key path must not send a bearer token")
				}
				var req models.SecureReservationRequest
				json.NewDecoder(r.Body).Decode(&req)
				if req.UserName != "ana" {
					t.Errorf("unexpected body %+v", req)
				}
				writeJSON(w, http.StatusOK, map[string]any{"id": 1})
			}))
			defer server.Close()

			srv := NewReservationService(server.URL, "k-1", nil)
			err := srv.SecureReserve(ctx, models.SecureReservationRequest{UserName: "ana", SeatNumber: 2, ReservationDate: "2025-03-01"})
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Requires API Key", func(t *testing.T) {
			srv := NewReservationService("http://example.com", "", nil)
			err := srv.SecureReserve(ctx, models.SecureReservationRequest{})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("ListReservations Encodes Filters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("user_name") != "ana" || q.Get("seat_number") != "3" || q.Get("reservation_date") != "" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 9, "user_name": "ana", "seat_number": "3", "reservation_date": "2025-03-01"},
			})
		}))
		defer server.Close()

		srv := NewReservationService(server.URL, "k", nil)
		list, err := srv.ListReservations(ctx, models.ReservationFilter{UserName: "ana", SeatNumber: 3})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(list) != 1 || list[0].ID != 9 || list[0].SeatNumber.Int() != 3 {
			t.Errorf("unexpected reservations %+v", list)
		}
	})

	t.Run("GetReservation Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/secure/reservations/42" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Reservation not found"})
		}))
		defer server.Close()

		srv := NewReservationService(server.URL, "k", nil)
		_, err := srv.GetReservation(ctx, 42)
		if !errors.Is(err, shared.ErrReservationNotFound) {
			t.Errorf("expected ErrReservationNotFound, got %v", err)
		}
	})

	t.Run("CancelReservation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/reservations/7" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer abc" {
				t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled successfully"})
		}))
		defer server.Close()

		srv := NewReservationService(server.URL, "", nil)
		msg, err := srv.CancelReservation(ctx, "abc", 7)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if msg != "Reservation cancelled successfully" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Coworking Space API!"})
		}))
		defer server.Close()

		srv := NewReservationService(server.URL, "", nil)
		msg, err := srv.Ping(ctx)
		if err != nil || msg != "Welcome to the Coworking Space API!" {
			t.Errorf("unexpected ping result %q (%v)", msg, err)
		}
	})
}

func TestParseDetail(t *testing.T) {
	tt := []struct {
		name string
		body string
		want string
	}{
		{name: "string detail", body: `{"detail": "Seat taken"}`, want: "Seat taken"},
		{name: "validation list", body: `{"detail": [{"msg": "field required"}, {"msg": "bad date"}]}`, want: "field required; bad date"},
		{name: "no detail", body: `{"message": "x"}`, want: ""},
		{name: "not json", body: `oops`, want: ""},
		{name: "empty", body: ``, want: ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseDetail([]byte(tc.body)); got != tc.want {
				t.Errorf("parseDetail() = %q, want %q", got, tc.want)
			}
		})
	}
}
