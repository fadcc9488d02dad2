// Package v1 implements the v1 JSON API of the stash tracker.
//
// Every handler is a method on Controller so that the service layer and the
// token settings are injected once at startup instead of living in globals.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/michdebow/stash-tracker/internal/services"
)

// Controller holds the dependencies of the v1 handlers.
type Controller struct {
	service   *services.Service
	jwtSecret string
	tokenTTL  time.Duration
}

// NewController returns a Controller using the service for all operations
// and the secret for minting and verifying session tokens.
func NewController(service *services.Service, jwtSecret string, tokenTTL time.Duration) Controller {
	return Controller{
		service:   service,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// contextUserID is the gin context key the authentication middleware stores
// the verified user ID under.
const contextUserID = "userID"

// userID returns the authenticated user set by the middleware. Handlers are
// only reachable through the middleware, so the key is always present.
func userID(c *gin.Context) uuid.UUID {
	return c.MustGet(contextUserID).(uuid.UUID)
}
