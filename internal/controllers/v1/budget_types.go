package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/types"
)

type BudgetEditable struct {
	BudgetSet decimal.Decimal `json:"budgetSet" example:"1200.00" minimum:"0.01" multipleOf:"0.01"` // The amount budgeted for the month
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/2024-03"` // The budget itself
}

// Budget is the representation of a month budget in API v1.
type Budget struct {
	models.DefaultModel
	Month types.Month `json:"month" example:"2024-03"` // The month the budget applies to
	BudgetEditable
	CurrentBalance decimal.Decimal `json:"currentBalance" example:"271.93"` // The budgeted amount minus all expenses of the month
	Links          BudgetLinks     `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.MonthBudget) Budget {
	url := c.GetString(string(httputil.ContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		Month:        model.Month,
		BudgetEditable: BudgetEditable{
			BudgetSet: model.BudgetSet,
		},
		CurrentBalance: model.CurrentBalance,
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/v1/budgets/%s", url, model.Month),
		},
	}
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the budget must be larger than zero"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                // The budget data, if the request was successful
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                            // List of budgets
	Error      *string     `json:"error" example:"the specified year is not valid"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                      // Pagination information
}

type BudgetQueryFilter struct {
	Year   int `form:"year"`   // Only budgets of this year
	Offset int `form:"offset"` // The offset of the first budget returned. Defaults to 0.
	Limit  int `form:"limit"`  // Maximum number of budgets to return. Defaults to 50.
}
