package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/ledger"
	"github.com/essenza/backend/internal/domain/shared"
)

// syncDocumentEntry keeps exactly one ledger entry in sync with a paying
// document (stock load or expense): created when a partner is set, updated
// when it changes, removed when the partner is cleared.
func (e *Engine) syncDocumentEntry(s *State, documentID, partnerID string, amount decimal.Decimal, date time.Time, description string) {
	y := s.Current()
	for i, entry := range y.PartnerLedger {
		if entry.RelatedDocumentID != documentID {
			continue
		}
		if partnerID == "" {
			y.PartnerLedger = append(y.PartnerLedger[:i], y.PartnerLedger[i+1:]...)
			return
		}
		entry.PartnerID = partnerID
		entry.Amount = amount
		entry.Date = date
		entry.Description = description
		return
	}
	if partnerID == "" {
		return
	}
	entry := &ledger.PartnerLedgerEntry{
		ID:                shared.NewID(),
		Date:              date,
		Description:       description,
		Amount:            amount,
		PartnerID:         partnerID,
		RelatedDocumentID: documentID,
	}
	y.PartnerLedger = append(y.PartnerLedger, entry)
}

// removeEntriesRelatedTo drops every ledger entry referencing the document,
// matching single ids and comma-joined bulk references alike.
func (e *Engine) removeEntriesRelatedTo(s *State, documentID string) {
	y := s.Current()
	kept := y.PartnerLedger[:0]
	for _, entry := range y.PartnerLedger {
		if !entry.RelatedTo(documentID) {
			kept = append(kept, entry)
		}
	}
	y.PartnerLedger = kept
}

// addLedgerEntry appends a manual adjustment entry
func (e *Engine) addLedgerEntry(s *State, a AddLedgerEntry) error {
	if s.FindPartner(a.Entry.PartnerID) == nil {
		return shared.Newf(shared.CodeNotFound, "Partner %s not found", a.Entry.PartnerID)
	}
	entry := a.Entry.Clone()
	if entry.ID == "" {
		entry.ID = shared.NewID()
	}
	s.Current().PartnerLedger = append(s.Current().PartnerLedger, entry)
	return nil
}

// transferBetweenPartners moves cash between two partners as a pair of
// mirrored entries.
func (e *Engine) transferBetweenPartners(s *State, a TransferBetweenPartners) error {
	if a.FromPartnerID == a.ToPartnerID {
		return shared.NewDomainError(shared.CodeInvalidInput, "Transfer requires two distinct partners")
	}
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Transfer amount must be positive")
	}
	from := s.FindPartner(a.FromPartnerID)
	to := s.FindPartner(a.ToPartnerID)
	if from == nil {
		return shared.Newf(shared.CodeNotFound, "Partner %s not found", a.FromPartnerID)
	}
	if to == nil {
		return shared.Newf(shared.CodeNotFound, "Partner %s not found", a.ToPartnerID)
	}

	y := s.Current()
	out, err := ledger.NewEntry(a.Date, from.ID, fmt.Sprintf("Trasferimento a %s", to.Name), a.Amount.Neg())
	if err != nil {
		return err
	}
	in, err := ledger.NewEntry(a.Date, to.ID, fmt.Sprintf("Trasferimento da %s", from.Name), a.Amount)
	if err != nil {
		return err
	}
	y.PartnerLedger = append(y.PartnerLedger, out, in)
	return nil
}

// archivePartnerSettlement freezes the current balances into an immutable
// snapshot, then appends one reversing entry per partner with a nonzero
// balance so that every balance lands on exactly zero.
func (e *Engine) archivePartnerSettlement(s *State, a ArchivePartnerSettlement) error {
	y := s.Current()
	snapshots := ledger.Snapshot(y.PartnerLedger, s.Partners)

	settlement := &ledger.PartnerSettlement{
		ID:                 shared.NewID(),
		Date:               a.Date,
		TotalSystemBalance: ledger.SystemTotal(y.PartnerLedger, s.Partners),
		TargetPerPartner:   ledger.TargetPerPartner(y.PartnerLedger, s.Partners),
		PartnerSnapshots:   snapshots,
	}
	y.Settlements = append(y.Settlements, settlement)

	for _, snap := range snapshots {
		if snap.Balance.IsZero() {
			continue
		}
		entry, err := ledger.NewEntry(a.Date, snap.PartnerID,
			"Azzeramento saldo per chiusura conteggio", snap.Balance.Neg())
		if err != nil {
			return err
		}
		entry.RelatedDocumentID = settlement.ID
		y.PartnerLedger = append(y.PartnerLedger, entry)
	}
	return nil
}

// attachSettlementPayment adds a payment record to an archived settlement.
// Missing settlements are a silent no-op, as are the edit and delete below.
func (e *Engine) attachSettlementPayment(s *State, a AttachSettlementPayment) error {
	for _, settlement := range s.Current().Settlements {
		if settlement.ID == a.SettlementID {
			p := a.Payment
			settlement.Payment = &p
			return nil
		}
	}
	return nil
}

func (e *Engine) updateSettlementPayment(s *State, a UpdateSettlementPayment) error {
	for _, settlement := range s.Current().Settlements {
		if settlement.ID == a.SettlementID {
			p := a.Payment
			settlement.Payment = &p
			return nil
		}
	}
	return nil
}

func (e *Engine) deleteSettlementPayment(s *State, a DeleteSettlementPayment) error {
	for _, settlement := range s.Current().Settlements {
		if settlement.ID == a.SettlementID {
			settlement.Payment = nil
			return nil
		}
	}
	return nil
}
