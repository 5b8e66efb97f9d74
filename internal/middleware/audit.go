package middleware

import (
	"net/http"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/audit"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Audit records every authenticated mutating request after it completes.
// Failures to write the trail never fail the request.
func Audit(store *audit.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if store == nil {
			return
		}
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			return
		}

		id, ok := CallerID(c)
		if !ok {
			return
		}

		rec := audit.Record{
			UserID: id.Hex(),
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Status: c.Writer.Status(),
			IP:     c.ClientIP(),
		}
		if err := store.Append(&rec); err != nil {
			logrus.Warnf("audit: %v", err)
		}
	}
}
