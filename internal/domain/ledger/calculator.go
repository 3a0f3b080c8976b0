package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/partner"
)

// Tolerance is the cent tolerance under which a balance difference is treated
// as settled.
var Tolerance = decimal.RequireFromString("0.01")

// BalanceStatus classifies a partner's position against the fair share
type BalanceStatus string

const (
	// BalanceStatusDebtor holds more cash than the fair share and owes the
	// difference into the pool
	BalanceStatusDebtor BalanceStatus = "debtor"
	// BalanceStatusCreditor holds less cash than the fair share and is owed
	BalanceStatusCreditor BalanceStatus = "creditor"
	BalanceStatusBalanced BalanceStatus = "balanced"
)

// String returns the string representation
func (s BalanceStatus) String() string {
	return string(s)
}

// Transfer is one settlement-plan movement between two partners
type Transfer struct {
	FromPartnerID string          `json:"fromId"`
	ToPartnerID   string          `json:"toId"`
	Amount        decimal.Decimal `json:"amount"`
}

// Balance sums the entries of one partner
func Balance(entries []*PartnerLedgerEntry, partnerID string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.PartnerID == partnerID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// SystemTotal sums every partner's balance
func SystemTotal(entries []*PartnerLedgerEntry, partners []*partner.Partner) decimal.Decimal {
	total := decimal.Zero
	for _, p := range partners {
		total = total.Add(Balance(entries, p.ID))
	}
	return total
}

// TargetPerPartner returns the fair share of the system total
func TargetPerPartner(entries []*PartnerLedgerEntry, partners []*partner.Partner) decimal.Decimal {
	if len(partners) == 0 {
		return decimal.Zero
	}
	return SystemTotal(entries, partners).Div(decimal.NewFromInt(int64(len(partners))))
}

// StatusFor classifies the difference between a balance and the fair share
func StatusFor(diff decimal.Decimal) BalanceStatus {
	switch {
	case diff.GreaterThan(Tolerance):
		return BalanceStatusDebtor
	case diff.LessThan(Tolerance.Neg()):
		return BalanceStatusCreditor
	default:
		return BalanceStatusBalanced
	}
}

// Snapshot builds the per-partner snapshots for a settlement, in partner-list
// order.
func Snapshot(entries []*PartnerLedgerEntry, partners []*partner.Partner) []PartnerSnapshot {
	target := TargetPerPartner(entries, partners)
	snapshots := make([]PartnerSnapshot, 0, len(partners))
	for _, p := range partners {
		balance := Balance(entries, p.ID)
		snapshots = append(snapshots, PartnerSnapshot{
			PartnerID:   p.ID,
			PartnerName: p.Name,
			Balance:     balance,
			Status:      StatusFor(balance.Sub(target)),
		})
	}
	return snapshots
}

// settlementSide is one worklist entry of the planner
type settlementSide struct {
	partnerID string
	remaining decimal.Decimal
}

// Plan computes the minimal-transfer settlement: a greedy matching of debtors
// (holding more than the fair share) against creditors (holding less),
// walking both worklists in partner-list order. Each matching transfers
// min(debtor remaining, creditor remaining); transfers at or under the cent
// tolerance are skipped. The plan has at most len(partners)-1 transfers and
// zeroes every difference when applied.
func Plan(entries []*PartnerLedgerEntry, partners []*partner.Partner) []Transfer {
	target := TargetPerPartner(entries, partners)

	debtors := make([]settlementSide, 0)
	creditors := make([]settlementSide, 0)
	for _, p := range partners {
		diff := Balance(entries, p.ID).Sub(target)
		switch StatusFor(diff) {
		case BalanceStatusDebtor:
			debtors = append(debtors, settlementSide{partnerID: p.ID, remaining: diff})
		case BalanceStatusCreditor:
			creditors = append(creditors, settlementSide{partnerID: p.ID, remaining: diff.Neg()})
		}
	}

	transfers := make([]Transfer, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].remaining, creditors[j].remaining)
		if amount.GreaterThan(Tolerance) {
			transfers = append(transfers, Transfer{
				FromPartnerID: debtors[i].partnerID,
				ToPartnerID:   creditors[j].partnerID,
				Amount:        amount,
			})
		}
		debtors[i].remaining = debtors[i].remaining.Sub(amount)
		creditors[j].remaining = creditors[j].remaining.Sub(amount)
		if debtors[i].remaining.LessThan(Tolerance) {
			i++
		}
		if creditors[j].remaining.LessThan(Tolerance) {
			j++
		}
	}
	return transfers
}
