package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response carries the variable part of a success envelope.
type Response map[string]interface{}

// Success writes the uniform success envelope. Whatever the handler puts in
// resp is merged next to "success": true.
func Success(c *gin.Context, resp Response) {
	body := gin.H{"success": true}
	for k, v := range resp {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error writes the uniform failure envelope.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"message": msg,
	})
}
