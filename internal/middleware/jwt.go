package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/adboard/internal/pkg/jwt"
	"github.com/xxxsen/adboard/internal/pkg/response"
)

const (
	ContextUserIDKey = "current_user_id"
	bearerPrefix     = "Bearer "
)

// JWTAuth rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header. The prefix match is exact.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}
		userID, err := jwt.ParseToken(header[len(bearerPrefix):], secret)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// UserID returns the id bound by JWTAuth.
func UserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}
