package handler_test

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/audit"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	e := newEnv(t)
	_, userToken := e.createUser(t, "Ada", "ada@example.com", models.RoleUser)

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/admin/users"},
		{http.MethodDelete, "/api/admin/users/65b000000000000000000000"},
		{http.MethodGet, "/api/admin/expenses"},
		{http.MethodDelete, "/api/admin/users/65b000000000000000000000/expenses/65b000000000000000000001"},
		{http.MethodGet, "/api/admin/logs"},
	}

	for _, p := range paths {
		w := e.do(t, p.method, p.path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s with user token", p.method, p.path)

		w = e.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without token", p.method, p.path)
	}
}

func TestAdminListUsers_ExcludesCallerAndPasswords(t *testing.T) {
	e := newEnv(t)
	admin, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	e.createUser(t, "Ada", "ada@example.com", models.RoleUser)
	e.createUser(t, "Bob", "bob@example.com", models.RoleUser)

	w := e.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 2.0, body["count"])

	for _, item := range dataList(t, body) {
		u := item.(map[string]interface{})
		assert.NotEqual(t, admin.ID.Hex(), u["_id"])
		assert.NotContains(t, u, "password")
	}
}

func TestAdminDeleteUser_CascadesAndDisappears(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	ada, adaToken := e.createUser(t, "Ada", "ada@example.com", models.RoleUser)

	addExpense(t, e, adaToken, "Coffee", 150, "2024-01-05")

	w := e.do(t, http.MethodDelete, "/api/admin/users/"+ada.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// gone from the user listing
	w = e.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, decode(t, w)), 0)

	// and the embedded expenses went with it
	w = e.do(t, http.MethodGet, "/api/admin/expenses", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, decode(t, w)), 0)

	// second delete 404s
	w = e.do(t, http.MethodDelete, "/api/admin/users/"+ada.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminListExpenses_FlattenedSortedAndAnnotated(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	ada, adaToken := e.createUser(t, "Ada", "ada@example.com", models.RoleUser)
	_, bobToken := e.createUser(t, "Bob", "bob@example.com", models.RoleUser)

	addExpense(t, e, adaToken, "Coffee", 150, "2024-01-05")
	addExpense(t, e, bobToken, "Rent", 900, "2024-03-01")
	addExpense(t, e, adaToken, "Book", 30, "2024-02-10")

	w := e.do(t, http.MethodGet, "/api/admin/expenses", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataList(t, decode(t, w))
	require.Len(t, list, 3)

	// strictly date-descending
	texts := make([]string, 0, 3)
	owners := map[string]bool{}
	for _, item := range list {
		row := item.(map[string]interface{})
		texts = append(texts, row["text"].(string))
		owners[row["userEmail"].(string)] = true
		assert.NotEmpty(t, row["userId"])
		assert.NotEmpty(t, row["userName"])
	}
	assert.Equal(t, []string{"Rent", "Book", "Coffee"}, texts)

	// every user with at least one expense shows up
	assert.True(t, owners["ada@example.com"])
	assert.True(t, owners["bob@example.com"])

	// rows carry the owner's id
	first := list[0].(map[string]interface{})
	assert.NotEqual(t, ada.ID.Hex(), first["userId"])
}

func TestAdminDeleteUserExpense(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	ada, adaToken := e.createUser(t, "Ada", "ada@example.com", models.RoleUser)

	list := addExpense(t, e, adaToken, "Coffee", 150, "2024-01-05")
	expenseID := list[0].(map[string]interface{})["_id"].(string)

	w := e.do(t, http.MethodDelete, "/api/admin/users/"+ada.ID.Hex()+"/expenses/"+expenseID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// owner sees it gone
	w = e.do(t, http.MethodGet, "/api/expenses", adaToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, decode(t, w)), 0)
}

func TestAdminDeleteUserExpense_AbsentExpenseIsNoOp(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	ada, _ := e.createUser(t, "Ada", "ada@example.com", models.RoleUser)

	w := e.do(t, http.MethodDelete, "/api/admin/users/"+ada.ID.Hex()+"/expenses/65b000000000000000000000", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminDeleteUserExpense_AbsentUser(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)

	w := e.do(t, http.MethodDelete, "/api/admin/users/65b000000000000000000000/expenses/65b000000000000000000001", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminAuditLogs_RecordsMutations(t *testing.T) {
	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)

	e := newEnvWithAudit(t, store)
	_, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	ada, adaToken := e.createUser(t, "Ada", "ada@example.com", models.RoleUser)

	addExpense(t, e, adaToken, "Coffee", 150, "2024-01-05")

	w := e.do(t, http.MethodGet, "/api/admin/logs", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataList(t, decode(t, w))
	require.Len(t, list, 1)

	rec := list[0].(map[string]interface{})
	assert.Equal(t, "POST", rec["method"])
	assert.Equal(t, "/api/expenses", rec["path"])
	assert.Equal(t, ada.ID.Hex(), rec["userId"])
	assert.Equal(t, 200.0, rec["status"])
}

func TestAdminAuditLogs_DisabledReturnsNotFound(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.createUser(t, "Root", "root@example.com", models.RoleAdmin)

	w := e.do(t, http.MethodGet, "/api/admin/logs", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
