package middleware

import (
	"net/http"
	"strings"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by the guards.
const (
	claimsKey      = "authClaims"
	callerIDKey    = "callerID"
	currentUserKey = "currentUser"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth validates the bearer token and exposes the decoded claims as
// the caller's identity. It trusts the claims and never touches the store.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "Unauthorized, JWT token is missing or malformed")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Unauthorized, JWT token is wrong or expired")
			c.Abort()
			return
		}

		callerID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Unauthorized, JWT token is wrong or expired")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set(callerIDKey, callerID)
		c.Next()
	}
}

// RequireAdmin validates the bearer token, re-fetches the user record and
// checks its role. On success the full record is the caller context, not just
// the token claims.
func RequireAdmin(jwtSecret string, repo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}

		callerID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}

		user, err := repo.GetByID(c.Request.Context(), callerID)
		if err != nil {
			logrus.Errorf("admin guard: fetch user: %v", err)
			util.Error(c, http.StatusInternalServerError, err.Error())
			c.Abort()
			return
		}
		if user == nil || !user.IsAdmin() {
			util.Error(c, http.StatusForbidden, "Access denied. Admin role required.")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set(callerIDKey, callerID)
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CallerID returns the authenticated caller's user id.
func CallerID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// CurrentUser returns the full user record set by RequireAdmin.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
