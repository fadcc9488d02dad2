package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/services"
	"github.com/michdebow/stash-tracker/internal/types"
)

// RegisterBudgetRoutes registers the routes for month budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", co.GetBudgets)
	}

	// Budget for one month
	{
		r.OPTIONS("/:month", OptionsBudgetDetail)
		r.GET("/:month", co.GetBudget)
		r.PUT("/:month", co.UpsertBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/budgets/{month} [options]
func OptionsBudgetDetail(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get budgets
// @Description	Returns a list of the month budgets of the authenticated user
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Param			year	query	int	false	"Only budgets of this year"
// @Param			offset	query	int	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit	query	int	false	"Maximum number of budgets to return. Defaults to 50."
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &s,
		})
		return
	}

	budgets, count, err := co.service.Budgets(c.Request.Context(), userID(c), services.BudgetFilter{
		Year:   filter.Year,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	// Mirrors the default the service applies
	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget
// @Description	Returns the budget for a specific month
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/budgets/{month} [get]
func (co Controller) GetBudget(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget, err := co.service.Budget(c.Request.Context(), userID(c), types.MonthOf(uri.Month))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Set budget
// @Description	Sets the budget for a month. Creates the budget when the month has none yet, otherwise the budgeted amount is replaced and the balance recomputed against the existing expenses.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse	"The budget was updated"
// @Success		201		{object}	BudgetResponse	"The budget was created"
// @Failure		400		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			month	path		string			true	"The month in YYYY-MM format"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{month} [put]
func (co Controller) UpsertBudget(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var editable BudgetEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget, created, err := co.service.UpsertBudget(c.Request.Context(), userID(c), types.MonthOf(uri.Month), editable.BudgetSet)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	responseStatus := http.StatusOK
	if created {
		responseStatus = http.StatusCreated
	}

	data := newBudget(c, budget)
	c.JSON(responseStatus, BudgetResponse{Data: &data})
}
