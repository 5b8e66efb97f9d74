package handler

import (
	"net/http"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/middleware"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// IncomeHandler serves the caller-scoped income operations.
type IncomeHandler struct {
	Repo repository.UserRepository
}

func NewIncomeHandler(repo repository.UserRepository) *IncomeHandler {
	return &IncomeHandler{Repo: repo}
}

type incomeReq struct {
	Income *float64 `json:"income"`
}

func (h *IncomeHandler) bindIncome(c *gin.Context) (float64, bool) {
	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Income == nil {
		util.Error(c, http.StatusBadRequest, "A valid income amount is required")
		return 0, false
	}
	if err := util.ValidateIncome(*req.Income); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid income")
		return 0, false
	}
	return *req.Income, true
}

// Get returns the caller's income, 0 if never set.
func (h *IncomeHandler) Get(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.Repo.GetByID(c.Request.Context(), callerID)
	if err != nil {
		logrus.Errorf("get income: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		util.Error(c, http.StatusNotFound, "User not found")
		return
	}

	util.Success(c, util.Response{
		"income": user.Income,
	})
}

// Set performs the one-time income initialization. Stored income of 0 means
// "not set": once it is positive the endpoint rejects further sets and the
// caller must use update instead. A user whose real income is 0 simply stays
// in the unset state; update works for them regardless.
func (h *IncomeHandler) Set(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	income, ok := h.bindIncome(c)
	if !ok {
		return
	}

	user, err := h.Repo.GetByID(c.Request.Context(), callerID)
	if err != nil {
		logrus.Errorf("set income: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		util.Error(c, http.StatusNotFound, "User not found")
		return
	}
	if user.Income > 0 {
		util.Error(c, http.StatusBadRequest, "Income already set. Use update instead.")
		return
	}

	saved, err := h.Repo.SetIncome(c.Request.Context(), callerID, income)
	if err != nil {
		if err == repository.ErrNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Errorf("set income: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "Income saved successfully",
		"income":  saved,
	})
}

// Update unconditionally overwrites the stored income.
func (h *IncomeHandler) Update(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	income, ok := h.bindIncome(c)
	if !ok {
		return
	}

	saved, err := h.Repo.SetIncome(c.Request.Context(), callerID, income)
	if err != nil {
		if err == repository.ErrNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Errorf("update income: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "Income updated successfully",
		"income":  saved,
	})
}
