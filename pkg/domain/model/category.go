package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// IssueCategory represents one entry of the classifier keyword table
type IssueCategory struct {
	ID       types.IssueCategoryID `yaml:"id"`       // Unique identifier (e.g. "printer")
	Name     string                `yaml:"name"`     // Display name
	Keywords []string              `yaml:"keywords"` // Substrings that select this category
}

// Validate validates the category
func (c *IssueCategory) Validate() error {
	if c.ID == "" {
		return goerr.New("category ID is required")
	}
	if c.ID == types.CategoryOther {
		return goerr.New("category ID 'other' is reserved for the fallback bucket")
	}
	if c.Name == "" {
		return goerr.New("category name is required")
	}
	if len(c.Keywords) == 0 {
		return goerr.New("category requires at least one keyword",
			goerr.V("id", c.ID))
	}
	for _, kw := range c.Keywords {
		if kw == "" {
			return goerr.New("category keyword must not be empty",
				goerr.V("id", c.ID))
		}
	}
	return nil
}

// CategoriesConfig represents the ordered classifier keyword table. Table
// order is priority order: classification returns the first category with a
// keyword match.
type CategoriesConfig struct {
	Categories []IssueCategory `yaml:"categories"`
}

// Validate validates the categories configuration
func (c *CategoriesConfig) Validate() error {
	if len(c.Categories) == 0 {
		return goerr.New("at least one category is required")
	}

	idMap := make(map[types.IssueCategoryID]bool)
	for i, cat := range c.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category at index",
				goerr.V("index", i),
				goerr.V("id", cat.ID))
		}

		if idMap[cat.ID] {
			return goerr.New("duplicate category ID",
				goerr.V("id", cat.ID))
		}
		idMap[cat.ID] = true
	}

	return nil
}

// FindCategoryByID finds a category by its ID
func (c *CategoriesConfig) FindCategoryByID(id types.IssueCategoryID) *IssueCategory {
	for _, cat := range c.Categories {
		if cat.ID == id {
			result := cat
			return &result
		}
	}
	return nil
}

// DefaultCategories returns the built-in classifier keyword table. The order
// matters: earlier categories win when a ticket matches several keyword sets.
func DefaultCategories() *CategoriesConfig {
	return &CategoriesConfig{
		Categories: []IssueCategory{
			{
				ID:       "email",
				Name:     "Email / Outlook",
				Keywords: []string{"outlook", "email", "mail"},
			},
			{
				ID:       "password",
				Name:     "Password / Login",
				Keywords: []string{"password", "login", "log in", "locked out", "credential"},
			},
			{
				ID:       "printer",
				Name:     "Printer",
				Keywords: []string{"printer", "print", "toner"},
			},
			{
				ID:       "software",
				Name:     "Software",
				Keywords: []string{"software", "install", "application", "update"},
			},
			{
				ID:       "hardware",
				Name:     "Hardware",
				Keywords: []string{"hardware", "laptop", "monitor", "keyboard", "mouse", "screen"},
			},
			{
				ID:       "access",
				Name:     "Access / Permissions",
				Keywords: []string{"access", "permission", "vpn", "shared drive"},
			},
		},
	}
}
