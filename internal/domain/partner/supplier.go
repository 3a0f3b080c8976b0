package partner

import (
	"strings"

	"github.com/essenza/backend/internal/domain/shared"
)

// Supplier represents a goods supplier referenced by stock loads and expenses.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	VATCode string `json:"vatCode,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// NewSupplier creates a new supplier
func NewSupplier(name string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Supplier name cannot be empty")
	}
	return &Supplier{
		ID:   shared.NewID(),
		Name: strings.TrimSpace(name),
	}, nil
}

// Clone returns a copy of the supplier
func (s *Supplier) Clone() *Supplier {
	out := *s
	return &out
}
