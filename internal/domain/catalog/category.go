package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/essenza/backend/internal/domain/shared"
)

var nameFolder = cases.Fold()

// NormalizeName returns the canonical case-folded form of a category name,
// used for the case-insensitive uniqueness rule.
func NormalizeName(name string) string {
	return nameFolder.String(strings.TrimSpace(name))
}

// Category classifies products by name reference. Categories form a tree via
// ParentID. IsComponent marks raw-material categories usable in production;
// IsFinishedProduct marks categories sellable as an end item (default true
// when absent, for data written before the flag existed).
type Category struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	IsComponent       bool    `json:"isComponent"`
	IsFinishedProduct *bool   `json:"isFinishedProduct,omitempty"`
	ParentID          *string `json:"parentId,omitempty"`
}

// NewCategory creates a new category
func NewCategory(name string, isComponent bool) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Category name cannot be empty")
	}
	return &Category{
		ID:          shared.NewID(),
		Name:        strings.TrimSpace(name),
		IsComponent: isComponent,
	}, nil
}

// SellsFinishedProduct reports whether products in this category can be sold
// or produced as end items
func (c *Category) SellsFinishedProduct() bool {
	if c.IsFinishedProduct == nil {
		return true
	}
	return *c.IsFinishedProduct
}

// NameEquals reports whether the category name matches the given name,
// ignoring case
func (c *Category) NameEquals(name string) bool {
	return NormalizeName(c.Name) == NormalizeName(name)
}

// Clone returns a deep copy of the category
func (c *Category) Clone() *Category {
	out := *c
	if c.IsFinishedProduct != nil {
		v := *c.IsFinishedProduct
		out.IsFinishedProduct = &v
	}
	if c.ParentID != nil {
		v := *c.ParentID
		out.ParentID = &v
	}
	return &out
}
