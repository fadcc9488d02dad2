// Package healthz implements the health check endpoint.
package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
)

// RegisterRoutes registers the routes for the health check.
func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the health of the API and its database connection
// @Tags			General
// @Success		204
// @Failure		500	{object}	healthResponse
// @Router			/healthz [get]
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, healthResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

type healthResponse struct {
	Error *string `json:"error" example:"database is unreachable"` // The error, if any occurred
}
