package inventory

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/shared"
)

// BatchStatus represents the lifecycle status of an inventory batch
type BatchStatus string

const (
	// BatchStatusAvailable marks stock that can be sold or consumed
	BatchStatusAvailable BatchStatus = "available"
	// BatchStatusMacerating marks produced stock still aging; it is excluded
	// from every availability query until completed
	BatchStatusMacerating BatchStatus = "macerating"
)

// IsValid checks if the status is a valid BatchStatus
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusAvailable, BatchStatusMacerating:
		return true
	}
	return false
}

// String returns the string representation
func (s BatchStatus) String() string {
	return string(s)
}

// InventoryBatch is the unit of physical stock for one product variant.
// Exactly one of StockLoadID/ProductionID identifies provenance; both empty
// for data migrated from before provenance tracking.
type InventoryBatch struct {
	ID                   string          `json:"id"`
	VariantID            string          `json:"variantId"`
	StockLoadID          string          `json:"stockLoadId,omitempty"`
	ProductionID         string          `json:"productionId,omitempty"`
	BatchNumber          string          `json:"batchNumber,omitempty"`
	ExpirationDate       *time.Time      `json:"expirationDate,omitempty"`
	InitialQuantity      decimal.Decimal `json:"initialQuantity"`
	CurrentQuantity      decimal.Decimal `json:"currentQuantity"`
	CreatedAt            time.Time       `json:"createdAt"`
	Status               BatchStatus     `json:"status"`
	MacerationEndDate    *time.Time      `json:"macerationEndDate,omitempty"`
	ActualMacerationDays *int            `json:"actualMacerationDays,omitempty"`
}

// NewBatch creates a new available batch for a variant
func NewBatch(variantID string, quantity decimal.Decimal, createdAt time.Time) (*InventoryBatch, error) {
	if variantID == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Variant ID cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Batch quantity cannot be negative")
	}
	return &InventoryBatch{
		ID:              shared.NewID(),
		VariantID:       variantID,
		InitialQuantity: quantity,
		CurrentQuantity: quantity,
		CreatedAt:       createdAt,
		Status:          BatchStatusAvailable,
	}, nil
}

// HasStock returns true if the batch has remaining quantity
func (b *InventoryBatch) HasStock() bool {
	return b.CurrentQuantity.GreaterThan(decimal.Zero)
}

// IsAvailable returns true if the batch can be sold or consumed
func (b *InventoryBatch) IsAvailable() bool {
	return b.Status == BatchStatusAvailable && b.HasStock()
}

// IsMacerating returns true if the batch is still aging
func (b *InventoryBatch) IsMacerating() bool {
	return b.Status == BatchStatusMacerating
}

// Deduct reduces the batch quantity, returning the amount actually taken
// (capped at the remaining quantity).
func (b *InventoryBatch) Deduct(quantity decimal.Decimal) decimal.Decimal {
	taken := decimal.Min(quantity, b.CurrentQuantity)
	b.CurrentQuantity = b.CurrentQuantity.Sub(taken)
	return taken
}

// Headroom returns how much quantity the batch can take back before reaching
// its original initial quantity.
func (b *InventoryBatch) Headroom() decimal.Decimal {
	room := b.InitialQuantity.Sub(b.CurrentQuantity)
	if room.IsNegative() {
		return decimal.Zero
	}
	return room
}

// CompleteMaceration transitions the batch from macerating to available and
// records how many days it actually aged, counted from creation to now
// (rounded up). Returns false when the batch is not macerating.
func (b *InventoryBatch) CompleteMaceration(now time.Time) bool {
	if b.Status != BatchStatusMacerating {
		return false
	}
	days := int(math.Ceil(now.Sub(b.CreatedAt).Hours() / 24))
	if days < 0 {
		days = 0
	}
	b.Status = BatchStatusAvailable
	b.ActualMacerationDays = &days
	return true
}

// Clone returns a deep copy of the batch
func (b *InventoryBatch) Clone() *InventoryBatch {
	out := *b
	if b.ExpirationDate != nil {
		v := *b.ExpirationDate
		out.ExpirationDate = &v
	}
	if b.MacerationEndDate != nil {
		v := *b.MacerationEndDate
		out.MacerationEndDate = &v
	}
	if b.ActualMacerationDays != nil {
		v := *b.ActualMacerationDays
		out.ActualMacerationDays = &v
	}
	return &out
}
