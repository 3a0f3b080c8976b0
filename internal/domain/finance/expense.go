package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/trade"
)

// Expense is a standalone cost record. When PaidByPartnerID is set, exactly
// one ledger entry of -Total keyed by relatedDocumentId = expense id is kept
// in sync with it across create/update/delete.
type Expense struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	VATApplied      bool            `json:"vatApplied"`
	Total           decimal.Decimal `json:"total"`
	SupplierID      string          `json:"supplierId,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	PaidByPartnerID string          `json:"paidByPartnerId,omitempty"`
}

// ComputeTotal returns quantity * price, grossed up by VAT when applied
func ComputeTotal(quantity, price decimal.Decimal, vatApplied bool) decimal.Decimal {
	total := quantity.Mul(price)
	if vatApplied {
		total = total.Mul(decimal.NewFromInt(1).Add(trade.VATRate))
	}
	return total
}

// Clone returns a copy of the expense
func (e *Expense) Clone() *Expense {
	out := *e
	return &out
}
