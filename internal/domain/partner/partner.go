package partner

import (
	"strings"

	"github.com/essenza/backend/internal/domain/shared"
)

// Partner is one of the business partners sharing the cash ledger. Partners
// are global: the list is shared across fiscal years.
type Partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewPartner creates a new cash partner
func NewPartner(name string) (*Partner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Partner name cannot be empty")
	}
	return &Partner{
		ID:   shared.NewID(),
		Name: strings.TrimSpace(name),
	}, nil
}

// Clone returns a copy of the partner
func (p *Partner) Clone() *Partner {
	out := *p
	return &out
}
