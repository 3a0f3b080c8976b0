package partner

import (
	"strings"

	"github.com/essenza/backend/internal/domain/shared"
)

// Customer represents a buyer. AgentID links the customer to the sales agent
// who manages them, when any.
type Customer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address string  `json:"address,omitempty"`
	VATCode string  `json:"vatCode,omitempty"`
	AgentID *string `json:"agentId,omitempty"`
	Notes   string  `json:"notes,omitempty"`
}

// NewCustomer creates a new customer
func NewCustomer(name string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Customer name cannot be empty")
	}
	return &Customer{
		ID:   shared.NewID(),
		Name: strings.TrimSpace(name),
	}, nil
}

// Clone returns a deep copy of the customer
func (c *Customer) Clone() *Customer {
	out := *c
	if c.AgentID != nil {
		v := *c.AgentID
		out.AgentID = &v
	}
	return &out
}
