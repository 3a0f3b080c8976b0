package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BatchSet is the collection of batches owned by one fiscal year. All engine
// queries and the FEFO consumption algorithm operate on it.
type BatchSet []*InventoryBatch

// BatchDraw records a single debit taken from a batch during consumption.
// Productions persist these to enable exact reversal on deletion.
type BatchDraw struct {
	BatchID       string          `json:"batchId"`
	QuantityTaken decimal.Decimal `json:"quantityTaken"`
}

// RestockRefill records a single credit applied to a batch during restore.
type RestockRefill struct {
	BatchID  string
	Quantity decimal.Decimal
}

// RestockResult reports how a restore distributed quantity back over batches.
// Overflow is the portion dumped into the newest batch beyond its original
// initial quantity (see Restore).
type RestockResult struct {
	Refills  []RestockRefill
	Overflow decimal.Decimal
}

// TotalQuantity sums the remaining quantity of every batch of the variant,
// regardless of status. Used for historical and reporting views.
func (s BatchSet) TotalQuantity(variantID string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range s {
		if b.VariantID == variantID {
			total = total.Add(b.CurrentQuantity)
		}
	}
	return total
}

// AvailableQuantity sums the remaining quantity of the variant's available
// batches. This is the only quantity sellable or consumable.
func (s BatchSet) AvailableQuantity(variantID string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range s {
		if b.VariantID == variantID && b.Status == BatchStatusAvailable {
			total = total.Add(b.CurrentQuantity)
		}
	}
	return total
}

// SortForConsumption returns the variant's available batches with stock, in
// FEFO order with FIFO fallback: batches carrying an expiration date come
// first, earliest expiry first; batches without one follow, oldest creation
// first. Ties keep insertion order.
func (s BatchSet) SortForConsumption(variantID string) []*InventoryBatch {
	candidates := make([]*InventoryBatch, 0)
	for _, b := range s {
		if b.VariantID == variantID && b.IsAvailable() {
			candidates = append(candidates, b)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		bi, bj := candidates[i], candidates[j]
		if bi.ExpirationDate != nil && bj.ExpirationDate != nil {
			if !bi.ExpirationDate.Equal(*bj.ExpirationDate) {
				return bi.ExpirationDate.Before(*bj.ExpirationDate)
			}
			return bi.CreatedAt.Before(bj.CreatedAt)
		}
		if bi.ExpirationDate != nil {
			return true // expiring stock goes out first
		}
		if bj.ExpirationDate != nil {
			return false
		}
		return bi.CreatedAt.Before(bj.CreatedAt)
	})

	return candidates
}

// Consume walks the FEFO order debiting each batch until quantity is
// exhausted, returning the draws taken. The caller must have verified
// AvailableQuantity beforehand; when batches run out the walk simply stops
// and the returned draws sum to less than requested.
func (s BatchSet) Consume(variantID string, quantity decimal.Decimal) []BatchDraw {
	draws := make([]BatchDraw, 0)
	remaining := quantity
	for _, b := range s.SortForConsumption(variantID) {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		taken := b.Deduct(remaining)
		if taken.GreaterThan(decimal.Zero) {
			draws = append(draws, BatchDraw{BatchID: b.ID, QuantityTaken: taken})
			remaining = remaining.Sub(taken)
		}
	}
	return draws
}

// Restore credits quantity back to the variant's available batches. It fills
// headroom from the most recently created batch backwards; any remainder is
// added to the single newest batch even beyond its original initial quantity,
// so the quantity is never lost when the originating batches are gone.
func (s BatchSet) Restore(variantID string, quantity decimal.Decimal) RestockResult {
	result := RestockResult{Overflow: decimal.Zero}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return result
	}

	candidates := make([]*InventoryBatch, 0)
	for _, b := range s {
		if b.VariantID == variantID && b.Status == BatchStatusAvailable {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return result
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	remaining := quantity
	for _, b := range candidates {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		fill := decimal.Min(remaining, b.Headroom())
		if fill.GreaterThan(decimal.Zero) {
			b.CurrentQuantity = b.CurrentQuantity.Add(fill)
			result.Refills = append(result.Refills, RestockRefill{BatchID: b.ID, Quantity: fill})
			remaining = remaining.Sub(fill)
		}
	}

	if remaining.GreaterThan(decimal.Zero) {
		newest := candidates[0]
		newest.CurrentQuantity = newest.CurrentQuantity.Add(remaining)
		result.Refills = append(result.Refills, RestockRefill{BatchID: newest.ID, Quantity: remaining})
		result.Overflow = remaining
	}

	return result
}

// FindByID returns the batch with the given id, or nil
func (s BatchSet) FindByID(id string) *InventoryBatch {
	for _, b := range s {
		if b.ID == id {
			return b
		}
	}
	return nil
}
