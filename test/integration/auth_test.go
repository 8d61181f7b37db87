package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	} `json:"user"`
}

func (app *TestApp) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := app.Client.Post(app.Server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// TestAuthFlow covers the full lifecycle: register, duplicate register,
// login, authenticated request, refresh rotation, replay of the consumed
// token.
func TestAuthFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	creds := map[string]string{"email": "lifter@example.com", "password": "secret1"}

	// Step 1: register
	resp := app.postJSON(t, "/api/auth/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "User created successfully", created["message"])
	assert.NotEmpty(t, created["userId"])

	// Step 2: registering the same email again fails
	resp = app.postJSON(t, "/api/auth/register", creds)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Step 3: login returns a token pair and the user summary
	resp = app.postJSON(t, "/api/auth/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tokens := decodeJSON[tokenPairResponse](t, resp)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	require.NotNil(t, tokens.User)
	assert.Equal(t, "lifter@example.com", tokens.User.Email)

	// Step 4: the access token opens protected routes
	req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/api/users/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "lifter@example.com", me["email"])

	// Step 5: refresh rotates the token pair
	resp = app.postJSON(t, "/api/auth/refresh-token", map[string]string{"refreshToken": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := decodeJSON[tokenPairResponse](t, resp)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old ledger row is revoked, the new one is live with a 7 day expiry.
	var revoked bool
	err = app.DB.QueryRow("SELECT revoked FROM refresh_tokens WHERE token = $1", tokens.RefreshToken).Scan(&revoked)
	require.NoError(t, err)
	assert.True(t, revoked)

	var expiresAt time.Time
	err = app.DB.QueryRow("SELECT expires_at FROM refresh_tokens WHERE token = $1 AND revoked = false", rotated.RefreshToken).Scan(&expiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	// Step 6: replaying the consumed token is forbidden
	resp = app.postJSON(t, "/api/auth/refresh-token", map[string]string{"refreshToken": tokens.RefreshToken})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The rotated token still works afterwards.
	resp = app.postJSON(t, "/api/auth/refresh-token", map[string]string{"refreshToken": rotated.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginRejections(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.postJSON(t, "/api/auth/register", map[string]string{"email": "lifter@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Wrong password and unknown email get the same answer.
	for _, creds := range []map[string]string{
		{"email": "lifter@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "secret1"},
	} {
		resp = app.postJSON(t, "/api/auth/login", creds)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeJSON[map[string]string](t, resp)
		assert.Equal(t, "Invalid credentials", body["error"])
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	for _, creds := range []map[string]string{
		{"email": "not-an-email", "password": "secret1"},
		{"email": "lifter@example.com", "password": "short"},
		{"email": "", "password": "secret1"},
	} {
		resp := app.postJSON(t, "/api/auth/register", creds)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "creds %v", creds)
		resp.Body.Close()
	}
}

func TestRefreshRejections(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Missing token
	resp := app.postJSON(t, "/api/auth/refresh-token", map[string]string{})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Never-issued token
	resp = app.postJSON(t, "/api/auth/refresh-token", map[string]string{"refreshToken": "never-issued"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Expired ledger row: age the stored token directly in the database.
	resp = app.postJSON(t, "/api/auth/register", map[string]string{"email": "lifter@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = app.postJSON(t, "/api/auth/login", map[string]string{"email": "lifter@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tokens := decodeJSON[tokenPairResponse](t, resp)

	_, err := app.DB.Exec("UPDATE refresh_tokens SET expires_at = NOW() - INTERVAL '1 minute' WHERE token = $1", tokens.RefreshToken)
	require.NoError(t, err)

	resp = app.postJSON(t, "/api/auth/refresh-token", map[string]string{"refreshToken": tokens.RefreshToken})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "Forbidden", body["error"])
}

// TestConcurrentRefresh submits the same refresh token from several clients
// at once. The row lock inside the rotation transaction lets exactly one
// request win; the rest get the uniform 403.
func TestConcurrentRefresh(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.postJSON(t, "/api/auth/register", map[string]string{"email": "lifter@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = app.postJSON(t, "/api/auth/login", map[string]string{"email": "lifter@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tokens := decodeJSON[tokenPairResponse](t, resp)

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	statuses := make(chan int, n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]string{"refreshToken": tokens.RefreshToken})
			resp, err := app.Client.Post(app.Server.URL+"/api/auth/refresh-token", "application/json", bytes.NewReader(body))
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for status := range statuses {
		counts[status]++
	}

	assert.Equal(t, 1, counts[http.StatusOK], "statuses: %v", counts)
	assert.Equal(t, n-1, counts[http.StatusForbidden], "statuses: %v", counts)
}

func TestProtectedRouteRejections(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// No Authorization header
	resp, err := app.Client.Get(app.Server.URL + "/api/users/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage bearer token
	req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/api/users/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// A refresh token must not open protected routes.
	resp = app.postJSON(t, "/api/auth/register", map[string]string{"email": "lifter@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = app.postJSON(t, "/api/auth/login", map[string]string{"email": "lifter@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tokens := decodeJSON[tokenPairResponse](t, resp)

	req, err = http.NewRequest(http.MethodGet, app.Server.URL+"/api/users/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
