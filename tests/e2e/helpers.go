// Package e2e provides end-to-end testing utilities for the Garden API.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gardenhq/gardenapi/internal/core/auth"
	"github.com/gardenhq/gardenapi/internal/shell/api"
	"github.com/gardenhq/gardenapi/internal/shell/store"
)

// =============================================================================
// Server Setup
// =============================================================================

// StartServer boots the full API over an in-memory database, seeded with
// the demo fixture, and returns its base URL.
func StartServer(t *testing.T) string {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, store.Seed(t.Context(), s))

	handler := api.SetupAPI(api.APIConfig{
		Store:  s,
		Tokens: auth.NewTokenIssuer([]byte("e2e-secret"), time.Hour),
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

// =============================================================================
// HTTP Helpers
// =============================================================================

// Request performs an HTTP request with an optional bearer token and
// JSON body, decodes the response into out (when non-nil), and returns
// the status code.
func Request(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// Login authenticates against the seeded fixture and returns a bearer
// token.
func Login(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	status := Request(t, "POST", baseURL+"/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
