package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the id the auth middleware stored on the request.
// Zero means anonymous: no token was presented on an OptionalAuth route.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userId"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentRole reads the role claim, empty when anonymous.
func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
