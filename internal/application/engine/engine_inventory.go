package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/inventory"
	"github.com/essenza/backend/internal/domain/shared"
	"github.com/essenza/backend/internal/domain/trade"
)

// stockLoadTotals runs the shared totals formula over a load's items
func stockLoadTotals(load *inventory.StockLoad) trade.Totals {
	items := make([]trade.DocumentItem, len(load.Items))
	for i, it := range load.Items {
		items[i] = trade.DocumentItem{VariantID: it.VariantID, Quantity: it.Quantity, Price: it.Price}
	}
	return trade.ComputeTotals(items, load.DiscountValue, trade.DiscountType(load.DiscountType), load.ShippingCost, load.VATApplied)
}

// addStockLoad registers an incoming-goods document: one new available batch
// per item, and one ledger entry of -total when a partner paid for the load.
func (e *Engine) addStockLoad(s *State, a AddStockLoad) error {
	y := s.Current()
	load := a.Load.Clone()
	if load.ID == "" {
		load.ID = shared.NewID()
	}
	load.Total = stockLoadTotals(load).Total

	for _, item := range load.Items {
		batch, err := inventory.NewBatch(item.VariantID, item.Quantity, load.Date)
		if err != nil {
			return err
		}
		batch.StockLoadID = load.ID
		batch.BatchNumber = item.BatchNumber
		batch.ExpirationDate = item.ExpirationDate
		y.Batches = append(y.Batches, batch)
	}

	y.StockLoads = append(y.StockLoads, load)

	if load.PaidByPartnerID != "" {
		e.syncDocumentEntry(s, load.ID, load.PaidByPartnerID, load.Total.Neg(), load.Date,
			fmt.Sprintf("Pagamento carico merce del %s", load.Date.Format("02/01/2006")))
	}
	return nil
}

// updateStockLoad replaces the document header and reconciles its single
// ledger entry; the batches created at registration are left untouched.
// Missing ids are a silent no-op.
func (e *Engine) updateStockLoad(s *State, a UpdateStockLoad) error {
	y := s.Current()
	for i, load := range y.StockLoads {
		if load.ID != a.Load.ID {
			continue
		}
		updated := a.Load.Clone()
		updated.Total = stockLoadTotals(updated).Total
		y.StockLoads[i] = updated

		partnerID := updated.PaidByPartnerID
		e.syncDocumentEntry(s, updated.ID, partnerID, updated.Total.Neg(), updated.Date,
			fmt.Sprintf("Pagamento carico merce del %s", updated.Date.Format("02/01/2006")))
		return nil
	}
	return nil
}

// deleteStockLoad removes the load, its batches and its ledger entry.
// Missing ids are a silent no-op, symmetric with updateStockLoad.
func (e *Engine) deleteStockLoad(s *State, a DeleteStockLoad) error {
	y := s.Current()
	for i, load := range y.StockLoads {
		if load.ID != a.StockLoadID {
			continue
		}
		kept := y.Batches[:0]
		for _, b := range y.Batches {
			if b.StockLoadID != a.StockLoadID {
				kept = append(kept, b)
			}
		}
		y.Batches = kept
		y.StockLoads = append(y.StockLoads[:i], y.StockLoads[i+1:]...)
		e.removeEntriesRelatedTo(s, a.StockLoadID)
		return nil
	}
	return nil
}

// addProduction consumes the requested components FEFO (available stock only)
// and creates one batch for the finished variant. All component availability
// is verified before anything is debited.
func (e *Engine) addProduction(s *State, a AddProduction) error {
	y := s.Current()
	if a.QuantityProduced.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Produced quantity must be positive")
	}

	for _, comp := range a.Components {
		available := y.Batches.AvailableQuantity(comp.VariantID)
		if available.LessThan(comp.Quantity) {
			return shared.Newf(shared.CodeInsufficientStock,
				"Insufficient stock for component %s: requested %s, available %s",
				y.variantLabel(comp.VariantID), comp.Quantity, available)
		}
	}

	production := &inventory.Production{
		ID:                shared.NewID(),
		Date:              a.Date,
		FinishedVariantID: a.FinishedVariantID,
		QuantityProduced:  a.QuantityProduced,
		BatchNumber:       inventory.ProductionBatchNumber(a.Date),
		ExpirationDate:    inventory.ProductionExpiry(a.Date),
		MacerationDays:    a.MacerationDays,
		ProductionType:    a.ProductionType,
		ColorCode:         a.ColorCode,
		ColorDrops:        a.ColorDrops,
	}

	for _, comp := range a.Components {
		draws := y.Batches.Consume(comp.VariantID, comp.Quantity)
		drawn := decimal.Zero
		for _, d := range draws {
			drawn = drawn.Add(d.QuantityTaken)
		}
		if !drawn.Equal(comp.Quantity) {
			return shared.Newf(shared.CodeInsufficientStock,
				"Insufficient stock for component %s: requested %s, available %s",
				y.variantLabel(comp.VariantID), comp.Quantity, drawn)
		}
		production.Components = append(production.Components, inventory.ProductionComponent{
			VariantID:         comp.VariantID,
			TotalQuantityUsed: comp.Quantity,
			WeightInGrams:     comp.WeightInGrams,
			SourceBatches:     draws,
		})
	}

	batch, err := inventory.NewBatch(a.FinishedVariantID, a.QuantityProduced, a.Date)
	if err != nil {
		return err
	}
	batch.ProductionID = production.ID
	batch.BatchNumber = production.BatchNumber
	expiry := production.ExpirationDate
	batch.ExpirationDate = &expiry
	if a.MacerationDays > 0 {
		batch.Status = inventory.BatchStatusMacerating
		end := a.Date.AddDate(0, 0, a.MacerationDays)
		batch.MacerationEndDate = &end
	} else {
		zero := 0
		batch.ActualMacerationDays = &zero
	}
	y.Batches = append(y.Batches, batch)
	y.Productions = append(y.Productions, production)
	return nil
}

// deleteProduction restores the exact source-batch draws and removes the
// finished-good batch together with the production record.
func (e *Engine) deleteProduction(s *State, a DeleteProduction) error {
	y := s.Current()
	for i, production := range y.Productions {
		if production.ID != a.ProductionID {
			continue
		}
		for _, comp := range production.Components {
			for _, draw := range comp.SourceBatches {
				if b := y.Batches.FindByID(draw.BatchID); b != nil {
					b.CurrentQuantity = b.CurrentQuantity.Add(draw.QuantityTaken)
				}
			}
		}
		kept := y.Batches[:0]
		for _, b := range y.Batches {
			if b.ProductionID != a.ProductionID {
				kept = append(kept, b)
			}
		}
		y.Batches = kept
		y.Productions = append(y.Productions[:i], y.Productions[i+1:]...)
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Production %s not found", a.ProductionID)
}

// completeMaceration transitions a batch out of maceration. A missing or
// non-macerating batch is a silent no-op.
func (e *Engine) completeMaceration(s *State, a CompleteMaceration) error {
	y := s.Current()
	if b := y.Batches.FindByID(a.BatchID); b != nil {
		b.CompleteMaceration(a.CompletedAt)
	}
	return nil
}
