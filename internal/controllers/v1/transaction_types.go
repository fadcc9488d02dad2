package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
)

type TransactionEditable struct {
	Type models.TransactionType `json:"type" example:"deposit" enums:"deposit,withdrawal"` // Whether the amount flows into or out of the stash

	// The maximum value is "999999999999999999.99", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.01" multipleOf:"0.01"` // The amount of the transaction

	Description string `json:"description" example:"Payday savings" default:""` // A description
}

type TransactionLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/stashes/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
	Stash string `json:"stash" example:"https://example.com/api/v1/stashes/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                                                  // The stash the transaction belongs to
}

// Transaction is the representation of a ledger entry in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	StashID uuid.UUID        `json:"stashId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the stash
	Links   TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.StashTransaction) Transaction {
	url := c.GetString(string(httputil.ContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Type:        model.Type,
			Amount:      model.Amount,
			Description: model.Description,
		},
		StashID: model.StashID,
		Links: TransactionLinks{
			Self:  fmt.Sprintf("%s/v1/stashes/%s/transactions/%s", url, model.StashID, model.ID),
			Stash: fmt.Sprintf("%s/v1/stashes/%s", url, model.StashID),
		},
	}
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the stash balance does not cover this withdrawal"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                             // The transaction data, if the request was successful
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionQueryFilter struct {
	Type   string    `form:"type"`   // Filter by transaction type
	From   time.Time `form:"from"`   // Transactions created at or after this time. RFC3339 timestamp.
	Until  time.Time `form:"until"`  // Transactions created at or before this time. RFC3339 timestamp.
	Order  string    `form:"order"`  // Sort order by creation time, "asc" or "desc". Defaults to "desc".
	Offset int       `form:"offset"` // The offset of the first transaction returned. Defaults to 0.
	Limit  int       `form:"limit"`  // Maximum number of transactions to return. Defaults to 50.
}
