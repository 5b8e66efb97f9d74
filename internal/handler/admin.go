package handler

import (
	"net/http"
	"strconv"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/audit"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/middleware"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler serves the cross-user management operations. All routes are
// behind the admin guard, which puts the full caller record in the context.
type AdminHandler struct {
	Repo  repository.UserRepository
	Audit *audit.Store
}

func NewAdminHandler(repo repository.UserRepository, auditStore *audit.Store) *AdminHandler {
	return &AdminHandler{Repo: repo, Audit: auditStore}
}

// ListUsers returns every user except the caller, passwords stripped.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusForbidden, "Access denied. Admin role required.")
		return
	}

	users, err := h.Repo.ListOthers(c.Request.Context(), caller.ID)
	if err != nil {
		logrus.Errorf("admin list users: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"count": len(users),
		"data":  users,
	})
}

// DeleteUser removes a user and, through the embedding, all its expenses.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), userID); err != nil {
		if err == repository.ErrNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Errorf("admin delete user: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "User deleted successfully",
	})
}

// ListExpenses returns the flattened cross-user expense view, newest first.
func (h *AdminHandler) ListExpenses(c *gin.Context) {
	rows, err := h.Repo.FlattenExpenses(c.Request.Context())
	if err != nil {
		logrus.Errorf("admin list expenses: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"count": len(rows),
		"data":  rows,
	})
}

// DeleteUserExpense removes a specific expense from a specific user. A
// non-matching expenseId is a silent no-op, mirroring the owner-scoped delete.
func (h *AdminHandler) DeleteUserExpense(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}
	expenseID, err := primitive.ObjectIDFromHex(c.Param("expenseId"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid expense id")
		return
	}

	if _, err := h.Repo.PullExpense(c.Request.Context(), userID, expenseID); err != nil {
		if err == repository.ErrNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Errorf("admin delete expense: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "Expense deleted successfully",
	})
}

// ListAuditLogs returns the most recent audit records, ?limit= bounded.
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	if h.Audit == nil {
		util.Error(c, http.StatusNotFound, "audit trail is disabled")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	records, err := h.Audit.Recent(limit)
	if err != nil {
		logrus.Errorf("admin list audit logs: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"count": len(records),
		"data":  records,
	})
}
