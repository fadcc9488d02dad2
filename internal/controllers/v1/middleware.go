package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/michdebow/stash-tracker/internal/auth"
)

// Authenticate verifies the bearer token and stores the user ID for the
// handlers. The user must still exist, tokens of deleted accounts are
// rejected.
//
// OPTIONS requests pass without a token since verb discovery carries no
// user data.
func (co Controller) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{
				Error: errBearerTokenRequired.Error(),
			})
			return
		}

		claims, err := auth.ParseToken(co.jwtSecret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{
				Error: errTokenInvalid.Error(),
			})
			return
		}

		user, err := co.service.User(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{
				Error: errTokenInvalid.Error(),
			})
			return
		}

		c.Set(contextUserID, user.ID)
		c.Next()
	}
}
