package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
)

type StashEditable struct {
	Name string `json:"name" example:"Emergency fund"`              // Name of the stash, unique per user
	Note string `json:"note" example:"Three months of rent" default:""` // A longer description
}

type StashLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/stashes/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`              // The stash itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/stashes/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/transactions"` // The ledger of the stash
}

// Stash is the representation of a stash in API v1.
type Stash struct {
	models.DefaultModel
	StashEditable
	CurrentBalance decimal.Decimal `json:"currentBalance" example:"271.93"` // Sum of all deposits minus all withdrawals
	Links          StashLinks      `json:"links"`
}

// newStash returns the API v1 representation of the resource
func newStash(c *gin.Context, model models.Stash) Stash {
	url := c.GetString(string(httputil.ContextURL))

	return Stash{
		DefaultModel: model.DefaultModel,
		StashEditable: StashEditable{
			Name: model.Name,
			Note: model.Note,
		},
		CurrentBalance: model.CurrentBalance,
		Links: StashLinks{
			Self:         fmt.Sprintf("%s/v1/stashes/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/stashes/%s/transactions", url, model.ID),
		},
	}
}

type StashResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Stash  `json:"data"`                                                          // The stash data, if the request was successful
}

type StashListResponse struct {
	Data  []Stash `json:"data"`                                                          // List of stashes
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type StashQueryFilter struct {
	Name string `form:"name"` // Name of the stash contains this string
}
