package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/services"
)

// RegisterStashRoutes registers the routes for stashes and their ledgers
// with the RouterGroup that is passed.
func (co Controller) RegisterStashRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStashList)
		r.GET("", co.GetStashes)
		r.POST("", co.CreateStash)
	}

	// Stash with ID
	{
		r.OPTIONS("/:id", OptionsStashDetail)
		r.GET("/:id", co.GetStash)
		r.PATCH("/:id", co.UpdateStash)
		r.DELETE("/:id", co.DeleteStash)
	}

	// Ledger of one stash
	{
		r.OPTIONS("/:id/transactions", OptionsTransactionList)
		r.GET("/:id/transactions", co.GetTransactions)
		r.POST("/:id/transactions", co.CreateTransaction)

		r.OPTIONS("/:id/transactions/:transactionId", OptionsTransactionDetail)
		r.DELETE("/:id/transactions/:transactionId", co.DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Stashes
// @Success		204
// @Router			/v1/stashes [options]
func OptionsStashList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Stashes
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/stashes/{id} [options]
func OptionsStashDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get stashes
// @Description	Returns a list of the stashes of the authenticated user
// @Tags			Stashes
// @Produce		json
// @Success		200	{object}	StashListResponse
// @Failure		400	{object}	StashListResponse
// @Failure		500	{object}	StashListResponse
// @Param			name	query	string	false	"Name of the stash contains this string"
// @Router			/v1/stashes [get]
func (co Controller) GetStashes(c *gin.Context) {
	var filter StashQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, StashListResponse{
			Error: &s,
		})
		return
	}

	stashes, err := co.service.Stashes(c.Request.Context(), userID(c), services.StashFilter{
		Name: filter.Name,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Stash, 0, len(stashes))
	for _, stash := range stashes {
		data = append(data, newStash(c, stash))
	}

	c.JSON(http.StatusOK, StashListResponse{Data: data})
}

// @Summary		Get stash
// @Description	Returns a specific stash
// @Tags			Stashes
// @Produce		json
// @Success		200	{object}	StashResponse
// @Failure		400	{object}	StashResponse
// @Failure		404	{object}	StashResponse
// @Failure		500	{object}	StashResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/stashes/{id} [get]
func (co Controller) GetStash(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashResponse{
			Error: &e,
		})
		return
	}

	stash, err := co.service.Stash(c.Request.Context(), userID(c), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashResponse{
			Error: &e,
		})
		return
	}

	data := newStash(c, stash)
	c.JSON(http.StatusOK, StashResponse{Data: &data})
}

// @Summary		Create stash
// @Description	Creates a new stash with a zero balance
// @Tags			Stashes
// @Accept			json
// @Produce		json
// @Success		201		{object}	StashResponse
// @Failure		400		{object}	StashResponse
// @Failure		409		{object}	StashResponse
// @Failure		500		{object}	StashResponse
// @Param			stash	body		StashEditable	true	"Stash"
// @Router			/v1/stashes [post]
func (co Controller) CreateStash(c *gin.Context) {
	var editable StashEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashResponse{
			Error: &e,
		})
		return
	}

	stash, err := co.service.CreateStash(c.Request.Context(), userID(c), editable.Name, editable.Note)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashResponse{
			Error: &e,
		})
		return
	}

	data := newStash(c, stash)
	c.JSON(http.StatusCreated, StashResponse{Data: &data})
}

// @Summary		Rename stash
// @Description	Renames an existing stash. The note and the ledger are not touched.
// @Tags			Stashes
// @Accept			json
// @Produce		json
// @Success		200		{object}	StashResponse
// @Failure		400		{object}	StashResponse
// @Failure		404		{object}	StashResponse
// @Failure		409		{object}	StashResponse
// @Failure		500		{object}	StashResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			stash	body		StashEditable	true	"Stash"
// @Router			/v1/stashes/{id} [patch]
func (co Controller) UpdateStash(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashResponse{
			Error: &e,
		})
		return
	}

	var editable StashEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashResponse{
			Error: &e,
		})
		return
	}

	stash, err := co.service.RenameStash(c.Request.Context(), userID(c), uri.ID.UUID, editable.Name)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StashResponse{
			Error: &e,
		})
		return
	}

	data := newStash(c, stash)
	c.JSON(http.StatusOK, StashResponse{Data: &data})
}

// @Summary		Delete stash
// @Description	Deletes a stash. The ledger is kept so that deletions can be audited.
// @Tags			Stashes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/stashes/{id} [delete]
func (co Controller) DeleteStash(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.service.DeleteStash(c.Request.Context(), userID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
