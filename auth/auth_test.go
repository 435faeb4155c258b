package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zinescan/config"
)

func userinfoServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"sub": "creator-1"}`))
		case "Bearer legacy-token":
			// Some providers use "id" instead of "sub"
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "creator-2"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestHTTPVerifier_ValidToken(t *testing.T) {
	server := userinfoServer()
	defer server.Close()

	verifier := NewHTTPVerifier(config.AuthConfig{UserinfoURL: server.URL, TimeoutSeconds: 2})

	profileID, err := verifier.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if profileID != "creator-1" {
		t.Errorf("profileID = %q, want creator-1", profileID)
	}
}

func TestHTTPVerifier_IDFieldFallback(t *testing.T) {
	server := userinfoServer()
	defer server.Close()

	verifier := NewHTTPVerifier(config.AuthConfig{UserinfoURL: server.URL, TimeoutSeconds: 2})

	profileID, err := verifier.Verify(context.Background(), "legacy-token")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if profileID != "creator-2" {
		t.Errorf("profileID = %q, want creator-2", profileID)
	}
}

func TestHTTPVerifier_RejectedToken(t *testing.T) {
	server := userinfoServer()
	defer server.Close()

	verifier := NewHTTPVerifier(config.AuthConfig{UserinfoURL: server.URL, TimeoutSeconds: 2})

	_, err := verifier.Verify(context.Background(), "bad-token")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestHTTPVerifier_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	verifier := NewHTTPVerifier(config.AuthConfig{UserinfoURL: server.URL, TimeoutSeconds: 2})

	_, err := verifier.Verify(context.Background(), "any")
	if err == nil {
		t.Fatal("expected error on provider failure")
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Error("a provider outage is not the same as an invalid token")
	}
}
