package handler

import (
	"net/http"
	"strings"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/middleware"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseHandler serves the caller-scoped expense operations.
type ExpenseHandler struct {
	Repo repository.UserRepository
}

func NewExpenseHandler(repo repository.UserRepository) *ExpenseHandler {
	return &ExpenseHandler{Repo: repo}
}

type addExpenseReq struct {
	Text      string   `json:"text"`
	Amount    *float64 `json:"amount"`
	CreatedAt string   `json:"createdAt"`
}

// Add appends a transaction to the caller's collection and returns the full
// updated collection.
func (h *ExpenseHandler) Add(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" || req.Amount == nil || req.CreatedAt == "" {
		util.Error(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	createdAt, err := util.ParseDate(req.CreatedAt)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	expense := models.Expense{
		Text:      req.Text,
		Amount:    *req.Amount,
		CreatedAt: createdAt,
	}

	expenses, err := h.Repo.PushExpense(c.Request.Context(), callerID, &expense)
	if err != nil {
		if err == repository.ErrNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Errorf("add expense: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "Expense added successfully",
		"data":    expenses,
	})
}

// List returns the caller's expenses, optionally bounded by
// ?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD. Both bounds are inclusive.
func (h *ExpenseHandler) List(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var filter repository.ExpenseFilter
	if s := c.Query("startDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.Start = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.End = &t
	}

	expenses, err := h.Repo.ListExpenses(c.Request.Context(), callerID, filter)
	if err != nil {
		if err == repository.ErrNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Errorf("list expenses: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "Fetched Expenses successfully",
		"data":    expenses,
	})
}

// Delete removes one expense from the caller's collection. Deleting an id
// that matches nothing still succeeds and returns the unchanged collection.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expenseID, err := primitive.ObjectIDFromHex(c.Param("expenseId"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid expense id")
		return
	}

	expenses, err := h.Repo.PullExpense(c.Request.Context(), callerID, expenseID)
	if err != nil {
		if err == repository.ErrNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Errorf("delete expense: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "Expense Deleted successfully",
		"data":    expenses,
	})
}
