package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "in-preparazione"
	OrderStatusCompleted OrderStatus = "completato"
	OrderStatusCancelled OrderStatus = "annullato"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPreparing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Both completato and annullato are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s != OrderStatusPreparing {
		return false
	}
	return target == OrderStatusCompleted || target == OrderStatusCancelled
}

// OrderItem is an order line with its preparation flag
type OrderItem struct {
	DocumentItem
	Prepared bool `json:"prepared"`
}

// Order is a prepare-then-fulfill workflow. It touches no inventory until
// every line is prepared and the order is converted to a sale.
type Order struct {
	ID            string           `json:"id"`
	Date          time.Time        `json:"date"`
	CustomerID    string           `json:"customerId"`
	Items         []OrderItem      `json:"items"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	VATApplied    bool             `json:"vatApplied"`
	Total         decimal.Decimal  `json:"total"`
	Status        OrderStatus      `json:"status"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`
	DiscountType  DiscountType     `json:"discountType,omitempty"`
	ShippingCost  *decimal.Decimal `json:"shippingCost,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// AllPrepared reports whether every line has been prepared
func (o *Order) AllPrepared() bool {
	for _, item := range o.Items {
		if !item.Prepared {
			return false
		}
	}
	return true
}

// DocumentItems returns the order lines stripped of the prepared flag, in the
// shape carried by the sale created on conversion.
func (o *Order) DocumentItems() []DocumentItem {
	items := make([]DocumentItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = item.DocumentItem
	}
	return items
}

// Clone returns a deep copy of the order
func (o *Order) Clone() *Order {
	out := *o
	out.Items = append([]OrderItem(nil), o.Items...)
	out.DiscountValue = cloneDecimalPtr(o.DiscountValue)
	out.ShippingCost = cloneDecimalPtr(o.ShippingCost)
	return &out
}
