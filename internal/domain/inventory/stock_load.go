package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLoadItem is one incoming line of goods. It generates exactly one new
// available batch when the load is registered.
type StockLoadItem struct {
	VariantID      string          `json:"variantId"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	BatchNumber    string          `json:"batchNumber,omitempty"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
}

// StockLoad is an incoming-goods document. When PaidByPartnerID is set the
// load carries a cash effect and one ledger entry of -Total is kept in sync
// with it; an internal depot load has none.
type StockLoad struct {
	ID              string           `json:"id"`
	Date            time.Time        `json:"date"`
	SupplierID      string           `json:"supplierId,omitempty"`
	Items           []StockLoadItem  `json:"items"`
	PaidByPartnerID string           `json:"paidByPartnerId,omitempty"`
	VATApplied      bool             `json:"vatApplied"`
	Total           decimal.Decimal  `json:"total"`
	DiscountValue   *decimal.Decimal `json:"discountValue,omitempty"`
	DiscountType    string           `json:"discountType,omitempty"`
	ShippingCost    *decimal.Decimal `json:"shippingCost,omitempty"`
}

// Clone returns a deep copy of the stock load
func (l *StockLoad) Clone() *StockLoad {
	out := *l
	out.Items = make([]StockLoadItem, len(l.Items))
	for i, item := range l.Items {
		out.Items[i] = item
		if item.ExpirationDate != nil {
			v := *item.ExpirationDate
			out.Items[i].ExpirationDate = &v
		}
	}
	if l.DiscountValue != nil {
		v := *l.DiscountValue
		out.DiscountValue = &v
	}
	if l.ShippingCost != nil {
		v := *l.ShippingCost
		out.ShippingCost = &v
	}
	return &out
}
