package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
)

// Category is the API representation of an expense category. Categories are
// read only, they ship with the instance.
type Category struct {
	models.DefaultModel
	Slug        string        `json:"slug" example:"groceries"`
	Name        string        `json:"name" example:"groceries"`
	DisplayName string        `json:"displayName" example:"Groceries"`
	Links       CategoryLinks `json:"links"`
}

type CategoryLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/categories/d1b7fe70-1dc9-4f8b-87bb-77903765a6b2"` // The category itself
}

func newCategory(c *gin.Context, model models.ExpenseCategory) Category {
	url := c.GetString(string(httputil.ContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		Slug:         model.Slug,
		Name:         model.Name,
		DisplayName:  model.DisplayName,
		Links: CategoryLinks{
			Self: fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
		},
	}
}

type CategoryResponse struct {
	Error *string   `json:"error"` // The error, if one occurred
	Data  *Category `json:"data"`  // The category
}

type CategoryListResponse struct {
	Error *string    `json:"error"` // The error, if one occurred
	Data  []Category `json:"data"`  // List of categories
}
