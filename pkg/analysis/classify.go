package analysis

import (
	"strings"

	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// Classifier maps free-text ticket content to a closed set of issue
// categories via ordered keyword lookup. Classification is a total,
// deterministic function: categories are evaluated in table order and the
// first category with any keyword contained in the text wins; when nothing
// matches the fallback category "other" is returned.
type Classifier struct {
	categories *model.CategoriesConfig
}

// NewClassifier creates a Classifier over the given keyword table. A nil
// config selects the built-in default table.
func NewClassifier(categories *model.CategoriesConfig) *Classifier {
	if categories == nil {
		categories = model.DefaultCategories()
	}
	return &Classifier{categories: categories}
}

// Classify returns the issue category for the ticket's combined summary and
// description text.
func (c *Classifier) Classify(ticket model.Ticket) types.IssueCategoryID {
	return c.ClassifyText(ticket.Text())
}

// ClassifyText returns the issue category for raw text
func (c *Classifier) ClassifyText(text string) types.IssueCategoryID {
	normalized := Normalize(text)

	for _, cat := range c.categories.Categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(normalized, Normalize(kw)) {
				return cat.ID
			}
		}
	}

	return types.CategoryOther
}

// CategoryName returns the display name for a category ID, falling back to
// the raw ID for the "other" bucket and unknown IDs.
func (c *Classifier) CategoryName(id types.IssueCategoryID) string {
	if cat := c.categories.FindCategoryByID(id); cat != nil {
		return cat.Name
	}
	return id.String()
}
