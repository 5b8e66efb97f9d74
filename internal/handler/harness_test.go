package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/audit"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/config"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/router"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-test-secret"

type env struct {
	repo   *repository.InMem
	engine *gin.Engine
}

// newEnv builds the real router on top of the in-memory repository.
func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWithAudit(t, nil)
}

func newEnvWithAudit(t *testing.T, auditStore *audit.Store) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpireHours = 1
	cfg.Security.BcryptCost = bcrypt.MinCost

	repo := repository.NewInMem()
	return &env{repo: repo, engine: router.Setup(cfg, repo, auditStore)}
}

// createUser seeds a user directly in the store and returns it with a valid
// bearer token.
func (e *env) createUser(t *testing.T, name, email, role string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, e.repo.Create(context.Background(), user))

	token, err := util.GenerateToken(testSecret, user.ID.Hex(), user.Email, user.Role, time.Hour)
	require.NoError(t, err)
	return user, token
}

// do performs a request against the engine. body is JSON-marshalled when
// non-nil; token, when non-empty, rides the Authorization header.
func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response envelope.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

// dataList pulls the "data" array out of a decoded envelope.
func dataList(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	list, ok := body["data"].([]interface{})
	require.True(t, ok, "data is not a list: %v", body)
	return list
}

func addExpense(t *testing.T, e *env, token, text string, amount float64, createdAt string) []interface{} {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/expenses", token, gin.H{
		"text":      text,
		"amount":    amount,
		"createdAt": createdAt,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	return dataList(t, decode(t, w))
}
