package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the status of a quote
type QuoteStatus string

const (
	QuoteStatusOpen      QuoteStatus = "aperto"
	QuoteStatusConverted QuoteStatus = "convertito"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusOpen, QuoteStatusConverted:
		return true
	}
	return false
}

// String returns the string representation
func (s QuoteStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Conversion is one-way: convertito is terminal.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	return s == QuoteStatusOpen && target == QuoteStatusConverted
}

// DocumentTypeQuote is the type tag carried by quotes
const DocumentTypeQuote = "preventivo"

// Quote has the same shape as a Sale but touches no inventory until it is
// converted. Payments registered on an open quote are carried over to the
// sale created by conversion.
type Quote struct {
	ID            string           `json:"id"`
	Date          time.Time        `json:"date"`
	CustomerID    string           `json:"customerId"`
	Items         []DocumentItem   `json:"items"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	VATApplied    bool             `json:"vatApplied"`
	Total         decimal.Decimal  `json:"total"`
	Type          string           `json:"type"`
	Status        QuoteStatus      `json:"status"`
	Payments      []SalePayment    `json:"payments"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`
	DiscountType  DiscountType     `json:"discountType,omitempty"`
	ShippingCost  *decimal.Decimal `json:"shippingCost,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// Clone returns a deep copy of the quote
func (q *Quote) Clone() *Quote {
	out := *q
	out.Items = cloneItems(q.Items)
	out.Payments = append([]SalePayment(nil), q.Payments...)
	out.DiscountValue = cloneDecimalPtr(q.DiscountValue)
	out.ShippingCost = cloneDecimalPtr(q.ShippingCost)
	return &out
}
