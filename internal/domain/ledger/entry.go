package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/shared"
)

// PartnerLedgerEntry is one signed cash-effect record attributed to a
// partner. Positive amounts mean the partner received/holds cash, negative
// amounts mean the partner paid out. The log is append-only; balances are
// always derived by summation.
type PartnerLedgerEntry struct {
	ID                string          `json:"id"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	PartnerID         string          `json:"partnerId"`
	RelatedDocumentID string          `json:"relatedDocumentId,omitempty"`
	PaymentMethod     string          `json:"paymentMethod,omitempty"`
}

// NewEntry creates a new ledger entry
func NewEntry(date time.Time, partnerID, description string, amount decimal.Decimal) (*PartnerLedgerEntry, error) {
	if partnerID == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Partner ID cannot be empty")
	}
	return &PartnerLedgerEntry{
		ID:          shared.NewID(),
		Date:        date,
		Description: description,
		Amount:      amount,
		PartnerID:   partnerID,
	}, nil
}

// RelatedTo reports whether this entry references the given document id.
// RelatedDocumentID holds either a single id or a comma-joined list (bulk
// collections aggregate several sale ids into one entry).
func (e *PartnerLedgerEntry) RelatedTo(documentID string) bool {
	if e.RelatedDocumentID == "" || documentID == "" {
		return false
	}
	for _, id := range strings.Split(e.RelatedDocumentID, ",") {
		if strings.TrimSpace(id) == documentID {
			return true
		}
	}
	return false
}

// Clone returns a copy of the entry
func (e *PartnerLedgerEntry) Clone() *PartnerLedgerEntry {
	out := *e
	return &out
}

// JoinDocumentIDs builds the comma-joined RelatedDocumentID for an aggregate
// entry.
func JoinDocumentIDs(ids []string) string {
	return strings.Join(ids, ",")
}
