package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zinescan/auth"
)

func protectedEcho(t *testing.T, wantProfile string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := ProfileID(r.Context())
		if !ok {
			t.Error("profile id missing from context inside protected handler")
		}
		if profileID != wantProfile {
			t.Errorf("profile id = %q, want %q", profileID, wantProfile)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestCreatorAuth_ValidToken(t *testing.T) {
	verifier := auth.VerifierFunc(func(_ context.Context, token string) (string, error) {
		if token != "good-token" {
			return "", auth.ErrUnauthenticated
		}
		return "creator-1", nil
	})

	handler := NewCreatorAuth(verifier).Protect(protectedEcho(t, "creator-1"))

	req := httptest.NewRequest("GET", "/api/analytics", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCreatorAuth_Rejections(t *testing.T) {
	verifier := auth.VerifierFunc(func(_ context.Context, token string) (string, error) {
		if token == "good-token" {
			return "creator-1", nil
		}
		return "", auth.ErrUnauthenticated
	})

	handler := NewCreatorAuth(verifier).Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run for rejected requests")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"MissingHeader", ""},
		{"NotBearer", "Basic dXNlcjpwYXNz"},
		{"MalformedHeader", "Bearer"},
		{"BadToken", "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/analytics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestCreatorAuth_ProviderFailure(t *testing.T) {
	verifier := auth.VerifierFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("provider unreachable")
	})

	handler := NewCreatorAuth(verifier).Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run when verification errors")
	}))

	req := httptest.NewRequest("GET", "/api/analytics", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
