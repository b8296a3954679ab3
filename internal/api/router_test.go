package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook-be/internal/auth"
	"github.com/finbook/finbook-be/internal/database"
	"github.com/finbook/finbook-be/internal/services"
	"github.com/finbook/finbook-be/internal/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	hub := websocket.NewHub()
	go hub.Run()

	events := services.NewEventService(db, hub)
	router := NewRouter(Deps{
		Tokens:         auth.NewTokenManager("test-secret", time.Minute),
		Hub:            hub,
		AllowedOrigins: []string{"http://localhost:3000"},
		Users:          services.NewUserService(db),
		Transactions:   services.NewTransactionService(db, events),
		Categories:     services.NewCategoryService(db, events),
		Budgets:        services.NewBudgetService(db, events),
		Goals:          services.NewGoalService(db, events),
		Events:         events,
		Summary:        services.NewSummaryService(db),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// do sends a JSON request, optionally authenticated, and decodes the JSON
// response body into out when out is non-nil.
func do(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerAndLogin(t *testing.T, srv *httptest.Server, email, password string) (token, userID string) {
	t.Helper()

	resp := do(t, srv, http.MethodPost, "/api/v1/users", "", map[string]string{
		"email": email, "name": "Test", "password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		UserID      string `json:"user_id"`
	}
	resp = do(t, srv, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": email, "password": password,
	}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "bearer", login.TokenType)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken, login.UserID
}

func TestLoginFailuresAreUniform(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "alice@example.com", "pw123")

	wrongPassword := do(t, srv, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": "alice@example.com", "password": "oops",
	}, nil)
	unknownEmail := do(t, srv, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": "carol@example.com", "password": "pw123",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/v1/transactions", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/v1/transactions", "not-a-real-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredTokenRejected(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "alice@example.com", "pw123")

	// The verifier shares the test signing key, so this token is valid in
	// every way except its lifetime.
	expired, err := auth.NewTokenManager("test-secret", time.Minute).IssueFor("some-user", -time.Second)
	require.NoError(t, err)

	resp := do(t, srv, http.MethodGet, "/api/v1/transactions", expired, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTransactionLifecycleAcrossUsers(t *testing.T) {
	srv := newTestServer(t)
	aliceToken, aliceID := registerAndLogin(t, srv, "alice@example.com", "pw123")
	bobToken, _ := registerAndLogin(t, srv, "bob@example.com", "pw456")

	var txn struct {
		ID         string  `json:"id"`
		UserID     string  `json:"userId"`
		CategoryID *string `json:"categoryId"`
		Amount     float64 `json:"amount"`
	}
	resp := do(t, srv, http.MethodPost, "/api/v1/transactions", aliceToken, map[string]interface{}{
		"date": "2024-03-01", "description": "Groceries", "amount": -42.50,
	}, &txn)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, aliceID, txn.UserID)
	assert.Nil(t, txn.CategoryID)

	// The owner can fetch it.
	resp = do(t, srv, http.MethodGet, "/api/v1/transactions/"+txn.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Another user gets a plain 404, not a 403.
	resp = do(t, srv, http.MethodGet, "/api/v1/transactions/"+txn.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, srv, http.MethodDelete, "/api/v1/transactions/"+txn.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete once, then again.
	resp = do(t, srv, http.MethodDelete, "/api/v1/transactions/"+txn.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodDelete, "/api/v1/transactions/"+txn.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoryConflictMapsTo400(t *testing.T) {
	srv := newTestServer(t)
	token, _ := registerAndLogin(t, srv, "alice@example.com", "pw123")

	resp := do(t, srv, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Food"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Food"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBudgetInvalidStateMapsTo400(t *testing.T) {
	srv := newTestServer(t)
	token, _ := registerAndLogin(t, srv, "alice@example.com", "pw123")

	var budget struct {
		ID string `json:"id"`
	}
	resp := do(t, srv, http.MethodPost, "/api/v1/budgets", token, map[string]string{
		"name": "January", "startDate": "2024-01-01", "endDate": "2024-01-31",
	}, &budget)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/api/v1/budgets/"+budget.ID, token, map[string]string{
		"startDate": "2024-02-01",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMalformedBodyMapsTo422(t *testing.T) {
	srv := newTestServer(t)
	token, _ := registerAndLogin(t, srv, "alice@example.com", "pw123")

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/transactions", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestActivityFeedEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token, _ := registerAndLogin(t, srv, "alice@example.com", "pw123")

	resp := do(t, srv, http.MethodPost, "/api/v1/goals", token, map[string]string{"name": "Emergency fund"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var feed []struct {
		Type string `json:"type"`
	}
	resp = do(t, srv, http.MethodGet, "/api/v1/events", token, nil, &feed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, feed)
	assert.Equal(t, "goal.create", feed[0].Type)
}
