package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductionShelfLifeMonths is the shelf life assigned to every produced
// batch, counted from the production date.
const ProductionShelfLifeMonths = 24

// ProductionComponent records one raw material consumed by a production run.
// SourceBatches holds exactly which batches were debited and by how much,
// enabling exact reversal when the production is deleted.
type ProductionComponent struct {
	VariantID         string           `json:"variantId"`
	TotalQuantityUsed decimal.Decimal  `json:"totalQuantityUsed"`
	WeightInGrams     *decimal.Decimal `json:"weightInGrams,omitempty"`
	SourceBatches     []BatchDraw      `json:"sourceBatches"`
}

// Production is a manufacturing event: it consumes available component
// batches (FEFO) and creates one new finished-good batch. MacerationDays > 0
// puts the produced batch into the macerating state.
type Production struct {
	ID                string                `json:"id"`
	Date              time.Time             `json:"date"`
	FinishedVariantID string                `json:"finishedProductId"`
	QuantityProduced  decimal.Decimal       `json:"quantityProduced"`
	Components        []ProductionComponent `json:"components"`
	BatchNumber       string                `json:"batchNumber"`
	ExpirationDate    time.Time             `json:"expirationDate"`
	MacerationDays    int                   `json:"macerationDays,omitempty"`
	ProductionType    string                `json:"productionType,omitempty"`
	ColorCode         string                `json:"colorCode,omitempty"`
	ColorDrops        int                   `json:"colorDrops,omitempty"`
}

// ProductionBatchNumber derives the batch number for a production run.
func ProductionBatchNumber(date time.Time) string {
	return fmt.Sprintf("PROD-%d", date.UnixMilli())
}

// ProductionExpiry returns the expiration date of a batch produced on the
// given date.
func ProductionExpiry(date time.Time) time.Time {
	return date.AddDate(0, ProductionShelfLifeMonths, 0)
}

// Clone returns a deep copy of the production
func (p *Production) Clone() *Production {
	out := *p
	out.Components = make([]ProductionComponent, len(p.Components))
	for i, c := range p.Components {
		out.Components[i] = c
		if c.WeightInGrams != nil {
			v := *c.WeightInGrams
			out.Components[i].WeightInGrams = &v
		}
		out.Components[i].SourceBatches = append([]BatchDraw(nil), c.SourceBatches...)
	}
	return &out
}
