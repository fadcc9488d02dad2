package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
)

// CategoryRuleEditable holds the rule fields a user may set. The field names
// match the model so update requests translate directly into column selects.
type CategoryRuleEditable struct {
	Priority   uint      `json:"priority" example:"10"`                                          // Lower priority rules are evaluated first
	Match      string    `json:"match" example:"*grocer*"`                                       // Glob pattern matched against the expense description
	CategoryID uuid.UUID `json:"categoryId" example:"a4f5c9e2-52b0-4e81-9f3b-8d20e476c1fa"`      // The category the rule assigns
}

type CategoryRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/category-rules/bba136c1-886e-43fe-9dd4-f33e60ba850a"` // The rule itself
}

// CategoryRule is the API representation of a category rule.
type CategoryRule struct {
	models.DefaultModel
	CategoryRuleEditable
	Links CategoryRuleLinks `json:"links"`
}

func newCategoryRule(c *gin.Context, model models.CategoryRule) CategoryRule {
	url := c.GetString(string(httputil.ContextURL))

	return CategoryRule{
		DefaultModel: model.DefaultModel,
		CategoryRuleEditable: CategoryRuleEditable{
			Priority:   model.Priority,
			Match:      model.Match,
			CategoryID: model.CategoryID,
		},
		Links: CategoryRuleLinks{
			Self: fmt.Sprintf("%s/v1/category-rules/%s", url, model.ID),
		},
	}
}

type CategoryRuleResponse struct {
	Error *string       `json:"error"` // The error, if one occurred
	Data  *CategoryRule `json:"data"`  // The category rule
}

type CategoryRuleListResponse struct {
	Error *string        `json:"error"` // The error, if one occurred
	Data  []CategoryRule `json:"data"`  // List of category rules
}
