package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalePayment is one registered collection against a sale or quote
type SalePayment struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	PartnerID string          `json:"partnerId"`
	Method    string          `json:"method,omitempty"`
}

// Sale is a committed sales document. Creating one debits inventory FEFO;
// deleting one restores it best-effort.
//
// CollectedByPartnerID/CollectionDate predate multi-payment support: they are
// still written on every single collection so older exports keep working, but
// Payments is the source of truth for paid amounts.
type Sale struct {
	ID                   string           `json:"id"`
	Date                 time.Time        `json:"date"`
	CustomerID           string           `json:"customerId"`
	Items                []DocumentItem   `json:"items"`
	Subtotal             decimal.Decimal  `json:"subtotal"`
	VATApplied           bool             `json:"vatApplied"`
	Total                decimal.Decimal  `json:"total"`
	Type                 string           `json:"type"`
	Payments             []SalePayment    `json:"payments"`
	CollectedByPartnerID string           `json:"collectedByPartnerId,omitempty"`
	CollectionDate       *time.Time       `json:"collectionDate,omitempty"`
	DiscountValue        *decimal.Decimal `json:"discountValue,omitempty"`
	DiscountType         DiscountType     `json:"discountType,omitempty"`
	ShippingCost         *decimal.Decimal `json:"shippingCost,omitempty"`
	Notes                string           `json:"notes,omitempty"`
}

// DocumentTypeSale is the type tag carried by sales
const DocumentTypeSale = "vendita"

// PaidAmount sums the registered payments
func (s *Sale) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range s.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// RemainingDue returns the uncollected part of the total, never negative
func (s *Sale) RemainingDue() decimal.Decimal {
	due := s.Total.Sub(s.PaidAmount())
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// RegisterPayment appends a payment and keeps the legacy single-collection
// fields in sync.
func (s *Sale) RegisterPayment(p SalePayment) {
	s.Payments = append(s.Payments, p)
	s.CollectedByPartnerID = p.PartnerID
	d := p.Date
	s.CollectionDate = &d
}

// Clone returns a deep copy of the sale
func (s *Sale) Clone() *Sale {
	out := *s
	out.Items = cloneItems(s.Items)
	out.Payments = append([]SalePayment(nil), s.Payments...)
	if s.CollectionDate != nil {
		v := *s.CollectionDate
		out.CollectionDate = &v
	}
	out.DiscountValue = cloneDecimalPtr(s.DiscountValue)
	out.ShippingCost = cloneDecimalPtr(s.ShippingCost)
	return &out
}
