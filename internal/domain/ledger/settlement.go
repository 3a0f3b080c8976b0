package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartnerSnapshot freezes one partner's balance at settlement time
type PartnerSnapshot struct {
	PartnerID   string          `json:"partnerId"`
	PartnerName string          `json:"partnerName"`
	Balance     decimal.Decimal `json:"balance"`
	Status      BalanceStatus   `json:"status"`
}

// SettlementPayment is an optional payment record attached to an archived
// settlement after the fact.
type SettlementPayment struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// PartnerSettlement is the immutable snapshot recorded when a settlement
// period is closed. Archiving appends one reversing ledger entry per partner
// with a nonzero balance, bringing every balance to exactly zero.
type PartnerSettlement struct {
	ID                 string             `json:"id"`
	Date               time.Time          `json:"date"`
	TotalSystemBalance decimal.Decimal    `json:"totalSystemBalance"`
	TargetPerPartner   decimal.Decimal    `json:"targetPerPartner"`
	PartnerSnapshots   []PartnerSnapshot  `json:"partnerSnapshots"`
	Payment            *SettlementPayment `json:"payment,omitempty"`
}

// Clone returns a deep copy of the settlement
func (s *PartnerSettlement) Clone() *PartnerSettlement {
	out := *s
	out.PartnerSnapshots = append([]PartnerSnapshot(nil), s.PartnerSnapshots...)
	if s.Payment != nil {
		v := *s.Payment
		out.Payment = &v
	}
	return &out
}
