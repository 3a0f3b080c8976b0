package trade

import (
	"github.com/shopspring/decimal"
)

// VATRate is the single VAT rate applied across all documents (22%).
var VATRate = decimal.RequireFromString("0.22")

// DiscountType selects how a document discount value is interpreted
type DiscountType string

const (
	DiscountTypeAmount     DiscountType = "amount"
	DiscountTypePercentage DiscountType = "percentage"
)

// IsValid checks if the discount type is valid
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypeAmount, DiscountTypePercentage:
		return true
	}
	return false
}

// String returns the string representation
func (t DiscountType) String() string {
	return string(t)
}

// DocumentItem is a line of a sale, quote or order
type DocumentItem struct {
	VariantID   string          `json:"variantId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Amount returns quantity * price for the line
func (i DocumentItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.Price)
}

// Totals is the computed money breakdown of a document
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Taxable  decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals applies the single shared totals formula used by stock loads,
// sales, quotes and orders:
//
//	subtotal = sum(quantity * price)
//	discount = percentage ? subtotal * value/100 : value
//	taxable  = max(0, subtotal - discount + shipping)
//	total    = vatApplied ? taxable * 1.22 : taxable
func ComputeTotals(items []DocumentItem, discountValue *decimal.Decimal, discountType DiscountType, shippingCost *decimal.Decimal, vatApplied bool) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}

	discount := decimal.Zero
	if discountValue != nil {
		if discountType == DiscountTypePercentage {
			discount = subtotal.Mul(*discountValue).Div(decimal.NewFromInt(100))
		} else {
			discount = *discountValue
		}
	}

	taxable := subtotal.Sub(discount)
	if shippingCost != nil {
		taxable = taxable.Add(*shippingCost)
	}
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	total := taxable
	if vatApplied {
		total = taxable.Mul(decimal.NewFromInt(1).Add(VATRate))
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Total:    total,
	}
}

// cloneItems deep-copies a slice of document items
func cloneItems(items []DocumentItem) []DocumentItem {
	return append([]DocumentItem(nil), items...)
}

// cloneDecimalPtr copies an optional decimal
func cloneDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
