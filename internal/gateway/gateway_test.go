package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lmicro/gomero/internal/shared"
)

func TestGatewayLogin(t *testing.T) {
	t.Run("session handshake", func(t *testing.T) {
		var sawCSRF string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/token":
				json.NewEncoder(w).Encode(map[string]any{"data": "csrf-123"})
			case "/login":
				sawCSRF = r.Header.Get("X-CSRFToken")

				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				if body["username"] != "demo" || body["password"] != "secret" {
					t.Errorf("unexpected credentials: %v", body)
				}

				json.NewEncoder(w).Encode(map[string]any{
					"eventContext": map[string]any{
						"sessionUuid": "session-abc",
						"userId":      7,
						"groupId":     3,
					},
				})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		if err := gw.Login(context.Background(), "demo", "secret"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if sawCSRF != "csrf-123" {
			t.Errorf("expected CSRF token on login request, got %q", sawCSRF)
		}

		if !gw.Connected() {
			t.Error("expected gateway to be connected")
		}

		if gw.UserID() != 7 || gw.GroupID() != 3 {
			t.Errorf("unexpected session context: user %d group %d", gw.UserID(), gw.GroupID())
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		gw := New(Opts{})

		err := gw.Login(context.Background(), "", "")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("rejected credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/token" {
				json.NewEncoder(w).Encode(map[string]any{"data": "csrf"})
				return
			}
			http.Error(w, `{"message":"bad password"}`, http.StatusForbidden)
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		err := gw.Login(context.Background(), "demo", "wrong")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}

		if gw.Connected() {
			t.Error("gateway should not be connected after failed login")
		}
	})

	t.Run("empty session in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/token" {
				json.NewEncoder(w).Encode(map[string]any{"data": "csrf"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"eventContext": map[string]any{}})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		if err := gw.Login(context.Background(), "demo", "secret"); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})
}

func TestGatewaySession(t *testing.T) {
	t.Run("session token header", func(t *testing.T) {
		var sawToken string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawToken = r.Header.Get("X-Session-Token")
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}, "meta": map[string]int{"totalCount": 0}})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})
		gw.SetSessionToken("imported-session")

		if _, err := gw.Browser().Projects(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if sawToken != "imported-session" {
			t.Errorf("expected session token header, got %q", sawToken)
		}
	})

	t.Run("logout clears state", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})
		gw.SetSessionToken("session")

		if err := gw.Logout(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gw.Connected() {
			t.Error("expected gateway to be disconnected after logout")
		}
	})

	t.Run("logout without session is a no-op", func(t *testing.T) {
		gw := New(Opts{BaseURL: "http://localhost:1"})

		if err := gw.Logout(context.Background()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestErrorMapping(t *testing.T) {
	newServer := func(status int, body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, body, status)
		}))
	}

	t.Run("401 maps to AccessError with ErrSessionExpired", func(t *testing.T) {
		server := newServer(http.StatusUnauthorized, "")
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})
		_, err := gw.Browser().Projects(context.Background())

		var accessErr *AccessError
		if !errors.As(err, &accessErr) {
			t.Fatalf("expected AccessError, got %T: %v", err, err)
		}
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired cause, got %v", err)
		}
	})

	t.Run("403 maps to AccessError with ErrAccessDenied", func(t *testing.T) {
		server := newServer(http.StatusForbidden, "")
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})
		_, err := gw.Browser().Projects(context.Background())

		if !errors.Is(err, shared.ErrAccessDenied) {
			t.Errorf("expected ErrAccessDenied cause, got %v", err)
		}
	})

	t.Run("404 maps to AccessError with ErrNotFound", func(t *testing.T) {
		server := newServer(http.StatusNotFound, "")
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})
		_, err := gw.Browser().Project(context.Background(), 99)

		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound cause, got %v", err)
		}
	})

	t.Run("500 maps to ServerError with message", func(t *testing.T) {
		server := newServer(http.StatusInternalServerError, `{"message":"database on fire"}`)
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})
		_, err := gw.Browser().Projects(context.Background())

		var serverErr *ServerError
		if !errors.As(err, &serverErr) {
			t.Fatalf("expected ServerError, got %T: %v", err, err)
		}
		if serverErr.Message != "database on fire" {
			t.Errorf("expected extracted message, got %q", serverErr.Message)
		}
		if !errors.Is(err, shared.ErrGatewayRequest) {
			t.Errorf("expected ErrGatewayRequest cause, got %v", err)
		}
	})

	t.Run("connection failure maps to ServiceError", func(t *testing.T) {
		gw := New(Opts{BaseURL: "http://127.0.0.1:1"})
		_, err := gw.Browser().Projects(context.Background())

		var serviceErr *ServiceError
		if !errors.As(err, &serviceErr) {
			t.Fatalf("expected ServiceError, got %T: %v", err, err)
		}
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable cause, got %v", err)
		}
	})
}
