package partner

import (
	"strings"

	"github.com/essenza/backend/internal/domain/shared"
)

// Agent is a sales agent. AssociatedClients is derived: it is recomputed from
// the customer list whenever customers change, never edited directly.
type Agent struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Zone              string `json:"zone,omitempty"`
	AssociatedClients int    `json:"associatedClients"`
}

// NewAgent creates a new sales agent
func NewAgent(name string) (*Agent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Agent name cannot be empty")
	}
	return &Agent{
		ID:   shared.NewID(),
		Name: strings.TrimSpace(name),
	}, nil
}

// Clone returns a copy of the agent
func (a *Agent) Clone() *Agent {
	out := *a
	return &out
}

// RecountClients recomputes every agent's associated-client count from the
// given customer list.
func RecountClients(agents []*Agent, customers []*Customer) {
	counts := make(map[string]int, len(agents))
	for _, c := range customers {
		if c.AgentID != nil {
			counts[*c.AgentID]++
		}
	}
	for _, a := range agents {
		a.AssociatedClients = counts[a.ID]
	}
}
