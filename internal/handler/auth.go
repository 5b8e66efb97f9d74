package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves signup and login, the endpoints that issue bearer tokens.
type AuthHandler struct {
	Repo       repository.UserRepository
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(repo repository.UserRepository, jwtSecret string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		Repo:       repo,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "name, email and password are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
		Expenses: []models.Expense{},
	}
	if err := h.Repo.Create(c.Request.Context(), &user); err != nil {
		if err == repository.ErrDuplicateEmail {
			util.Error(c, http.StatusBadRequest, "User already exists, you can login")
			return
		}
		logrus.Errorf("register: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message": "Signup successful",
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.Repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		logrus.Errorf("login: %v", err)
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		util.Error(c, http.StatusForbidden, "Auth failed, email or password is wrong")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusForbidden, "Auth failed, email or password is wrong")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID.Hex(), user.Email, user.Role, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.Success(c, util.Response{
		"message":  "Login successful",
		"jwtToken": token,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
	})
}
