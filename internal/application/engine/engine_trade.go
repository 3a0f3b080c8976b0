package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/ledger"
	"github.com/essenza/backend/internal/domain/shared"
	"github.com/essenza/backend/internal/domain/trade"
)

// checkAvailability verifies every line before anything is touched
func checkAvailability(y *YearData, items []trade.DocumentItem) error {
	for _, item := range items {
		available := y.Batches.AvailableQuantity(item.VariantID)
		if available.LessThan(item.Quantity) {
			return shared.Newf(shared.CodeInsufficientStock,
				"Insufficient stock for %s: requested %s, available %s",
				y.variantLabel(item.VariantID), item.Quantity, available)
		}
	}
	return nil
}

// consumeItems debits inventory FEFO for every line. Availability has been
// checked already; a shortfall can still surface when one variant appears on
// several lines, and aborts the action.
func consumeItems(y *YearData, items []trade.DocumentItem) error {
	for _, item := range items {
		draws := y.Batches.Consume(item.VariantID, item.Quantity)
		drawn := decimal.Zero
		for _, d := range draws {
			drawn = drawn.Add(d.QuantityTaken)
		}
		if !drawn.Equal(item.Quantity) {
			return shared.Newf(shared.CodeInsufficientStock,
				"Insufficient stock for %s: requested %s, available %s",
				y.variantLabel(item.VariantID), item.Quantity, drawn)
		}
	}
	return nil
}

// newSaleFromDraft computes totals and builds the sale record
func newSaleFromDraft(draft DocumentDraft) *trade.Sale {
	totals := trade.ComputeTotals(draft.Items, draft.DiscountValue, draft.DiscountType, draft.ShippingCost, draft.VATApplied)
	return &trade.Sale{
		ID:            shared.NewID(),
		Date:          draft.Date,
		CustomerID:    draft.CustomerID,
		Items:         append([]trade.DocumentItem(nil), draft.Items...),
		Subtotal:      totals.Subtotal,
		VATApplied:    draft.VATApplied,
		Total:         totals.Total,
		Type:          trade.DocumentTypeSale,
		Payments:      make([]trade.SalePayment, 0),
		DiscountValue: draft.DiscountValue,
		DiscountType:  draft.DiscountType,
		ShippingCost:  draft.ShippingCost,
		Notes:         draft.Notes,
	}
}

func (e *Engine) addSale(s *State, a AddSale) error {
	y := s.Current()
	if err := checkAvailability(y, a.Draft.Items); err != nil {
		return err
	}
	if err := consumeItems(y, a.Draft.Items); err != nil {
		return err
	}
	y.Sales = append(y.Sales, newSaleFromDraft(a.Draft))
	return nil
}

// deleteSale restores inventory best-effort and removes every ledger entry
// referencing the sale, including its share of bulk-collection entries.
func (e *Engine) deleteSale(s *State, a DeleteSale) error {
	y := s.Current()
	for i, sale := range y.Sales {
		if sale.ID != a.SaleID {
			continue
		}
		for _, item := range sale.Items {
			y.Batches.Restore(item.VariantID, item.Quantity)
		}
		e.removeEntriesRelatedTo(s, a.SaleID)
		y.Sales = append(y.Sales[:i], y.Sales[i+1:]...)
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Sale %s not found", a.SaleID)
}

func (e *Engine) collectSale(s *State, a CollectSale) error {
	y := s.Current()
	for _, sale := range y.Sales {
		if sale.ID != a.SaleID {
			continue
		}
		sale.RegisterPayment(trade.SalePayment{
			ID:        shared.NewID(),
			Date:      a.Date,
			Amount:    a.Amount,
			PartnerID: a.PartnerID,
			Method:    a.Method,
		})
		entry, err := ledger.NewEntry(a.Date, a.PartnerID,
			fmt.Sprintf("Incasso vendita del %s", sale.Date.Format("02/01/2006")), a.Amount)
		if err != nil {
			return err
		}
		entry.RelatedDocumentID = sale.ID
		entry.PaymentMethod = a.Method
		y.PartnerLedger = append(y.PartnerLedger, entry)
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Sale %s not found", a.SaleID)
}

// bulkCollectSales registers one payment per collected sale and exactly one
// aggregate ledger entry referencing all of them. Collections with a
// non-positive amount or an unknown sale id are filtered out; when nothing
// survives the filter, no entry is created.
func (e *Engine) bulkCollectSales(s *State, a BulkCollectSales) error {
	y := s.Current()
	collectedIDs := make([]string, 0, len(a.Collections))
	total := decimal.Zero

	for _, c := range a.Collections {
		if c.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		var target *trade.Sale
		for _, sale := range y.Sales {
			if sale.ID == c.SaleID {
				target = sale
				break
			}
		}
		if target == nil {
			continue
		}
		target.RegisterPayment(trade.SalePayment{
			ID:        shared.NewID(),
			Date:      a.Date,
			Amount:    c.Amount,
			PartnerID: a.PartnerID,
			Method:    a.Method,
		})
		collectedIDs = append(collectedIDs, c.SaleID)
		total = total.Add(c.Amount)
	}

	if len(collectedIDs) == 0 {
		return nil
	}

	entry, err := ledger.NewEntry(a.Date, a.PartnerID,
		fmt.Sprintf("Incasso multiplo (%d vendite)", len(collectedIDs)), total)
	if err != nil {
		return err
	}
	entry.RelatedDocumentID = ledger.JoinDocumentIDs(collectedIDs)
	entry.PaymentMethod = a.Method
	y.PartnerLedger = append(y.PartnerLedger, entry)
	return nil
}

func (e *Engine) addQuote(s *State, a AddQuote) error {
	y := s.Current()
	totals := trade.ComputeTotals(a.Draft.Items, a.Draft.DiscountValue, a.Draft.DiscountType, a.Draft.ShippingCost, a.Draft.VATApplied)
	y.Quotes = append(y.Quotes, &trade.Quote{
		ID:            shared.NewID(),
		Date:          a.Draft.Date,
		CustomerID:    a.Draft.CustomerID,
		Items:         append([]trade.DocumentItem(nil), a.Draft.Items...),
		Subtotal:      totals.Subtotal,
		VATApplied:    a.Draft.VATApplied,
		Total:         totals.Total,
		Type:          trade.DocumentTypeQuote,
		Status:        trade.QuoteStatusOpen,
		Payments:      make([]trade.SalePayment, 0),
		DiscountValue: a.Draft.DiscountValue,
		DiscountType:  a.Draft.DiscountType,
		ShippingCost:  a.Draft.ShippingCost,
		Notes:         a.Draft.Notes,
	})
	return nil
}

// updateQuote replaces an open quote, recomputing totals
func (e *Engine) updateQuote(s *State, a UpdateQuote) error {
	y := s.Current()
	for i, q := range y.Quotes {
		if q.ID != a.Quote.ID {
			continue
		}
		if q.Status != trade.QuoteStatusOpen {
			return shared.Newf(shared.CodeConflictingState, "Quote %s is already converted", q.ID)
		}
		updated := a.Quote.Clone()
		totals := trade.ComputeTotals(updated.Items, updated.DiscountValue, updated.DiscountType, updated.ShippingCost, updated.VATApplied)
		updated.Subtotal = totals.Subtotal
		updated.Total = totals.Total
		updated.Type = trade.DocumentTypeQuote
		updated.Status = trade.QuoteStatusOpen
		y.Quotes[i] = updated
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Quote %s not found", a.Quote.ID)
}

func (e *Engine) deleteQuote(s *State, a DeleteQuote) error {
	y := s.Current()
	for i, q := range y.Quotes {
		if q.ID == a.QuoteID {
			e.removeEntriesRelatedTo(s, a.QuoteID)
			y.Quotes = append(y.Quotes[:i], y.Quotes[i+1:]...)
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Quote %s not found", a.QuoteID)
}

func (e *Engine) collectQuote(s *State, a CollectQuote) error {
	y := s.Current()
	for _, q := range y.Quotes {
		if q.ID != a.QuoteID {
			continue
		}
		q.Payments = append(q.Payments, trade.SalePayment{
			ID:        shared.NewID(),
			Date:      a.Date,
			Amount:    a.Amount,
			PartnerID: a.PartnerID,
			Method:    a.Method,
		})
		entry, err := ledger.NewEntry(a.Date, a.PartnerID,
			fmt.Sprintf("Incasso preventivo del %s", q.Date.Format("02/01/2006")), a.Amount)
		if err != nil {
			return err
		}
		entry.RelatedDocumentID = q.ID
		entry.PaymentMethod = a.Method
		y.PartnerLedger = append(y.PartnerLedger, entry)
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Quote %s not found", a.QuoteID)
}

// convertQuoteToSale re-checks availability, debits inventory and creates a
// sale carrying over every payment already registered on the quote. The
// quote flips to convertito, a terminal status.
func (e *Engine) convertQuoteToSale(s *State, a ConvertQuoteToSale) error {
	y := s.Current()
	for _, q := range y.Quotes {
		if q.ID != a.QuoteID {
			continue
		}
		if !q.Status.CanTransitionTo(trade.QuoteStatusConverted) {
			return shared.Newf(shared.CodeConflictingState, "Quote %s is already converted", q.ID)
		}
		if err := checkAvailability(y, q.Items); err != nil {
			return err
		}
		if err := consumeItems(y, q.Items); err != nil {
			return err
		}

		sale := &trade.Sale{
			ID:            shared.NewID(),
			Date:          a.Date,
			CustomerID:    q.CustomerID,
			Items:         append([]trade.DocumentItem(nil), q.Items...),
			Subtotal:      q.Subtotal,
			VATApplied:    q.VATApplied,
			Total:         q.Total,
			Type:          trade.DocumentTypeSale,
			Payments:      append([]trade.SalePayment(nil), q.Payments...),
			DiscountValue: q.DiscountValue,
			DiscountType:  q.DiscountType,
			ShippingCost:  q.ShippingCost,
			Notes:         q.Notes,
		}
		if len(sale.Payments) > 0 {
			last := sale.Payments[len(sale.Payments)-1]
			sale.CollectedByPartnerID = last.PartnerID
			d := last.Date
			sale.CollectionDate = &d
		}
		y.Sales = append(y.Sales, sale)
		q.Status = trade.QuoteStatusConverted
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Quote %s not found", a.QuoteID)
}

func (e *Engine) addOrder(s *State, a AddOrder) error {
	y := s.Current()
	totals := trade.ComputeTotals(a.Draft.Items, a.Draft.DiscountValue, a.Draft.DiscountType, a.Draft.ShippingCost, a.Draft.VATApplied)
	items := make([]trade.OrderItem, len(a.Draft.Items))
	for i, item := range a.Draft.Items {
		items[i] = trade.OrderItem{DocumentItem: item}
	}
	y.Orders = append(y.Orders, &trade.Order{
		ID:            shared.NewID(),
		Date:          a.Draft.Date,
		CustomerID:    a.Draft.CustomerID,
		Items:         items,
		Subtotal:      totals.Subtotal,
		VATApplied:    a.Draft.VATApplied,
		Total:         totals.Total,
		Status:        trade.OrderStatusPreparing,
		DiscountValue: a.Draft.DiscountValue,
		DiscountType:  a.Draft.DiscountType,
		ShippingCost:  a.Draft.ShippingCost,
		Notes:         a.Draft.Notes,
	})
	return nil
}

// updateOrder replaces an order still in preparation, recomputing totals
func (e *Engine) updateOrder(s *State, a UpdateOrder) error {
	y := s.Current()
	for i, o := range y.Orders {
		if o.ID != a.Order.ID {
			continue
		}
		if o.Status != trade.OrderStatusPreparing {
			return shared.Newf(shared.CodeConflictingState, "Order %s is %s", o.ID, o.Status)
		}
		updated := a.Order.Clone()
		totals := trade.ComputeTotals(updated.DocumentItems(), updated.DiscountValue, updated.DiscountType, updated.ShippingCost, updated.VATApplied)
		updated.Subtotal = totals.Subtotal
		updated.Total = totals.Total
		updated.Status = trade.OrderStatusPreparing
		y.Orders[i] = updated
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Order %s not found", a.Order.ID)
}

func (e *Engine) deleteOrder(s *State, a DeleteOrder) error {
	y := s.Current()
	for i, o := range y.Orders {
		if o.ID == a.OrderID {
			y.Orders = append(y.Orders[:i], y.Orders[i+1:]...)
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Order %s not found", a.OrderID)
}

func (e *Engine) setOrderItemPrepared(s *State, a SetOrderItemPrepared) error {
	y := s.Current()
	for _, o := range y.Orders {
		if o.ID != a.OrderID {
			continue
		}
		if o.Status != trade.OrderStatusPreparing {
			return shared.Newf(shared.CodeConflictingState, "Order %s is %s", o.ID, o.Status)
		}
		if a.ItemIndex < 0 || a.ItemIndex >= len(o.Items) {
			return shared.Newf(shared.CodeInvalidInput, "Order %s has no item %d", o.ID, a.ItemIndex)
		}
		o.Items[a.ItemIndex].Prepared = a.Prepared
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Order %s not found", a.OrderID)
}

// convertOrderToSale fulfills a fully prepared order: availability check,
// FEFO debit, new sale with the prepared flags stripped, order completed.
func (e *Engine) convertOrderToSale(s *State, a ConvertOrderToSale) error {
	y := s.Current()
	for _, o := range y.Orders {
		if o.ID != a.OrderID {
			continue
		}
		if !o.Status.CanTransitionTo(trade.OrderStatusCompleted) {
			return shared.Newf(shared.CodeConflictingState, "Order %s is %s", o.ID, o.Status)
		}
		if !o.AllPrepared() {
			return shared.Newf(shared.CodeConflictingState, "Order %s has unprepared items", o.ID)
		}
		items := o.DocumentItems()
		if err := checkAvailability(y, items); err != nil {
			return err
		}
		if err := consumeItems(y, items); err != nil {
			return err
		}

		y.Sales = append(y.Sales, &trade.Sale{
			ID:            shared.NewID(),
			Date:          a.Date,
			CustomerID:    o.CustomerID,
			Items:         items,
			Subtotal:      o.Subtotal,
			VATApplied:    o.VATApplied,
			Total:         o.Total,
			Type:          trade.DocumentTypeSale,
			Payments:      make([]trade.SalePayment, 0),
			DiscountValue: o.DiscountValue,
			DiscountType:  o.DiscountType,
			ShippingCost:  o.ShippingCost,
			Notes:         o.Notes,
		})
		o.Status = trade.OrderStatusCompleted
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Order %s not found", a.OrderID)
}

// cancelOrder moves an order in preparation to annullato. No inventory
// effect; the transition is irreversible.
func (e *Engine) cancelOrder(s *State, a CancelOrder) error {
	y := s.Current()
	for _, o := range y.Orders {
		if o.ID != a.OrderID {
			continue
		}
		if !o.Status.CanTransitionTo(trade.OrderStatusCancelled) {
			return shared.Newf(shared.CodeConflictingState, "Order %s is %s", o.ID, o.Status)
		}
		o.Status = trade.OrderStatusCancelled
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Order %s not found", a.OrderID)
}
