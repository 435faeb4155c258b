package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"zinescan/config"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier resolves a bearer token to the creator's profile id. The identity
// provider is hosted elsewhere; this service never stores credentials.
type Verifier interface {
	Verify(ctx context.Context, token string) (profileID string, err error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token string) (string, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}

// HTTPVerifier asks the provider's userinfo endpoint who the token belongs
// to. Any non-200 answer is treated as unauthenticated.
type HTTPVerifier struct {
	userinfoURL string
	client      *http.Client
}

var _ Verifier = (*HTTPVerifier)(nil)

func NewHTTPVerifier(cfg config.AuthConfig) *HTTPVerifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPVerifier{
		userinfoURL: cfg.UserinfoURL,
		client:      &http.Client{Timeout: timeout},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userinfoURL, nil)
	if err != nil {
		return "", fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Sub string `json:"sub"`
		ID  string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding userinfo response: %w", err)
	}

	profileID := body.Sub
	if profileID == "" {
		profileID = body.ID
	}
	if profileID == "" {
		return "", ErrUnauthenticated
	}
	return profileID, nil
}
