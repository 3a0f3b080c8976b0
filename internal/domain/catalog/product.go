package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/shared"
)

// Product is a base catalog item. It references its Category by name and owns
// zero or more variants (tracked separately, keyed by ProductID).
type Product struct {
	ID               string           `json:"id"`
	Code             string           `json:"code,omitempty"`
	Name             string           `json:"name"`
	Brand            string           `json:"brand,omitempty"`
	Category         string           `json:"category"`
	Unit             string           `json:"unit"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	AdditionalImages []string         `json:"additionalImages,omitempty"`
	Description      string           `json:"description,omitempty"`
	OlfactoryPyramid string           `json:"olfactoryPyramid,omitempty"`
	EssenceCode      string           `json:"essenceCode,omitempty"`
	IFRALimit        *decimal.Decimal `json:"ifraLimit,omitempty"`
}

// NewProduct creates a new product
func NewProduct(name, category, unit string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot be empty")
	}
	return &Product{
		ID:       shared.NewID(),
		Name:     strings.TrimSpace(name),
		Category: category,
		Unit:     unit,
	}, nil
}

// Clone returns a deep copy of the product
func (p *Product) Clone() *Product {
	out := *p
	if p.AdditionalImages != nil {
		out.AdditionalImages = append([]string(nil), p.AdditionalImages...)
	}
	if p.IFRALimit != nil {
		v := *p.IFRALimit
		out.IFRALimit = &v
	}
	return &out
}
