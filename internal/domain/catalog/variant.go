package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/shared"
)

// ProductVariant is a specific packaged SKU of a Product (e.g. "50ml").
// Inventory batches reference the variant, never the base product.
type ProductVariant struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Capacity      string          `json:"capacity,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Location      string          `json:"location,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

// NewProductVariant creates a new variant of a product
func NewProductVariant(productID, name string, purchasePrice, salePrice decimal.Decimal) (*ProductVariant, error) {
	if productID == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Variant name cannot be empty")
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Prices cannot be negative")
	}
	return &ProductVariant{
		ID:            shared.NewID(),
		ProductID:     productID,
		Name:          strings.TrimSpace(name),
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
	}, nil
}

// Clone returns a copy of the variant
func (v *ProductVariant) Clone() *ProductVariant {
	out := *v
	return &out
}
