package router

import (
	"net/http"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/audit"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/config"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/handler"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/middleware"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"

	"github.com/gin-gonic/gin"
)

// Setup wires the gin engine. auditStore may be nil when the audit trail is
// disabled.
func Setup(cfg *config.Config, repo repository.UserRepository, auditStore *audit.Store) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "PONG")
	})

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// signup/login, unauthenticated
	authHandler := handler.NewAuthHandler(repo, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/signup", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// caller-scoped routes: claims-only guard
	protected := api.Group("", middleware.RequireAuth(jwtSecret), middleware.Audit(auditStore))

	expenseHandler := handler.NewExpenseHandler(repo)
	protected.POST("/expenses", expenseHandler.Add)
	protected.GET("/expenses", expenseHandler.List)
	protected.DELETE("/expenses/:expenseId", expenseHandler.Delete)

	incomeHandler := handler.NewIncomeHandler(repo)
	protected.GET("/user/income", incomeHandler.Get)
	protected.POST("/user/set-income", incomeHandler.Set)
	protected.PUT("/user/update-income", incomeHandler.Update)

	// admin routes: verified-role guard
	adminHandler := handler.NewAdminHandler(repo, auditStore)
	admin := api.Group("/admin", middleware.RequireAdmin(jwtSecret, repo), middleware.Audit(auditStore))
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:userId", adminHandler.DeleteUser)
	admin.GET("/expenses", adminHandler.ListExpenses)
	admin.DELETE("/users/:userId/expenses/:expenseId", adminHandler.DeleteUserExpense)
	admin.GET("/logs", adminHandler.ListAuditLogs)

	return r
}
