package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Helpers for the `{"success": bool, ...}` response shape the frontend
// expects.

func OK(c *gin.Context, data gin.H) {
	out := gin.H{"success": true}
	for k, v := range data {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

func Created(c *gin.Context, data gin.H) {
	out := gin.H{"success": true}
	for k, v := range data {
		out[k] = v
	}
	c.JSON(http.StatusCreated, out)
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"success": false, "message": msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": msg})
}

// ServerError hides details unless dev is true.
func ServerError(c *gin.Context, msg string, err error, dev bool) {
	out := gin.H{"success": false, "message": msg}
	if dev && err != nil {
		out["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, out)
}
