package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/types"
	st_uuid "github.com/michdebow/stash-tracker/internal/uuid"
)

type ExpenseEditable struct {
	CategoryID *uuid.UUID `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category. When unset, the category rules decide.

	Amount decimal.Decimal `json:"amount" example:"27.81" minimum:"0.01" multipleOf:"0.01"` // The amount of the expense

	Date        time.Time `json:"date" example:"2024-03-14T00:00:00Z"`         // Date of the expense. The month it budgets against follows from this.
	Description string    `json:"description" example:"Weekly groceries run"` // A description
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/expenses/d430d7c3-d14c-4712-9336-ee56965a6673"` // The expense itself
}

// Expense is the representation of an expense in API v1.
type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Month types.Month  `json:"month" example:"2024-03"` // The month the expense is budgeted against, derived from the date
	Links ExpenseLinks `json:"links"`
}

// newExpense returns the API v1 representation of the resource
func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(httputil.ContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			CategoryID:  model.CategoryID,
			Amount:      model.Amount,
			Date:        model.Date,
			Description: model.Description,
		},
		Month: model.Month,
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
		},
	}
}

type ExpenseResponse struct {
	Error *string  `json:"error" example:"the expense amount must be larger than zero"` // The error, if any occurred
	Data  *Expense `json:"data"`                                                        // The expense data, if the request was successful
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                               // List of expenses
	Error      *string     `json:"error" example:"the month filter cannot be combined with a date range"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                         // Pagination information
}

type ExpenseQueryFilter struct {
	Month    time.Time    `form:"month" time_format:"2006-01" time_utc:"1"` // Only expenses of this month. Cannot be combined with from/until.
	From     time.Time    `form:"from"`                                     // Expenses dated at or after this date. RFC3339 timestamp.
	Until    time.Time    `form:"until"`                                    // Expenses dated at or before this date. RFC3339 timestamp.
	Category st_uuid.UUID `form:"category"`                                 // Only expenses with this category
	Search   string       `form:"search"`                                   // Search for this text in the description
	Sort     string       `form:"sort"`                                     // Sort field, "date" or "amount". Defaults to "date".
	Order    string       `form:"order"`                                    // Sort order, "asc" or "desc". Defaults to "desc".
	Offset   int          `form:"offset"`                                   // The offset of the first expense returned. Defaults to 0.
	Limit    int          `form:"limit"`                                    // Maximum number of expenses to return. Defaults to 50.
}
