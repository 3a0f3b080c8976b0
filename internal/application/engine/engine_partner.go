package engine

import (
	"github.com/essenza/backend/internal/domain/partner"
	"github.com/essenza/backend/internal/domain/shared"
)

func (e *Engine) addCustomer(s *State, a AddCustomer) error {
	y := s.Current()
	c := a.Customer.Clone()
	if c.ID == "" {
		c.ID = shared.NewID()
	}
	y.Customers = append(y.Customers, c)
	partner.RecountClients(y.Agents, y.Customers)
	return nil
}

func (e *Engine) updateCustomer(s *State, a UpdateCustomer) error {
	y := s.Current()
	for i, c := range y.Customers {
		if c.ID == a.Customer.ID {
			y.Customers[i] = a.Customer.Clone()
			partner.RecountClients(y.Agents, y.Customers)
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Customer %s not found", a.Customer.ID)
}

func (e *Engine) deleteCustomer(s *State, a DeleteCustomer) error {
	y := s.Current()
	for i, c := range y.Customers {
		if c.ID == a.CustomerID {
			y.Customers = append(y.Customers[:i], y.Customers[i+1:]...)
			partner.RecountClients(y.Agents, y.Customers)
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Customer %s not found", a.CustomerID)
}

func (e *Engine) addSupplier(s *State, a AddSupplier) error {
	y := s.Current()
	sup := a.Supplier.Clone()
	if sup.ID == "" {
		sup.ID = shared.NewID()
	}
	y.Suppliers = append(y.Suppliers, sup)
	return nil
}

func (e *Engine) updateSupplier(s *State, a UpdateSupplier) error {
	y := s.Current()
	for i, sup := range y.Suppliers {
		if sup.ID == a.Supplier.ID {
			y.Suppliers[i] = a.Supplier.Clone()
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Supplier %s not found", a.Supplier.ID)
}

func (e *Engine) deleteSupplier(s *State, a DeleteSupplier) error {
	y := s.Current()
	for i, sup := range y.Suppliers {
		if sup.ID == a.SupplierID {
			y.Suppliers = append(y.Suppliers[:i], y.Suppliers[i+1:]...)
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Supplier %s not found", a.SupplierID)
}

func (e *Engine) addAgent(s *State, a AddAgent) error {
	y := s.Current()
	ag := a.Agent.Clone()
	if ag.ID == "" {
		ag.ID = shared.NewID()
	}
	y.Agents = append(y.Agents, ag)
	partner.RecountClients(y.Agents, y.Customers)
	return nil
}

// updateAgent is a silent no-op when the agent is missing
func (e *Engine) updateAgent(s *State, a UpdateAgent) error {
	y := s.Current()
	for i, ag := range y.Agents {
		if ag.ID == a.Agent.ID {
			y.Agents[i] = a.Agent.Clone()
			partner.RecountClients(y.Agents, y.Customers)
			return nil
		}
	}
	return nil
}

// deleteAgent detaches every customer pointing to the agent; missing ids are
// a silent no-op, symmetric with updateAgent.
func (e *Engine) deleteAgent(s *State, a DeleteAgent) error {
	y := s.Current()
	for i, ag := range y.Agents {
		if ag.ID == a.AgentID {
			y.Agents = append(y.Agents[:i], y.Agents[i+1:]...)
			for _, c := range y.Customers {
				if c.AgentID != nil && *c.AgentID == a.AgentID {
					c.AgentID = nil
				}
			}
			return nil
		}
	}
	return nil
}

func (e *Engine) addPartner(s *State, a AddPartner) error {
	p, err := partner.NewPartner(a.PartnerName)
	if err != nil {
		return err
	}
	s.Partners = append(s.Partners, p)
	return nil
}

// deletePartner is blocked while any ledger entry, stock-load payment or sale
// collection in any year references the partner.
func (e *Engine) deletePartner(s *State, a DeletePartner) error {
	target := s.FindPartner(a.PartnerID)
	if target == nil {
		return shared.Newf(shared.CodeNotFound, "Partner %s not found", a.PartnerID)
	}

	for year, y := range s.Years {
		for _, entry := range y.PartnerLedger {
			if entry.PartnerID == a.PartnerID {
				return shared.Newf(shared.CodeReferentialBlock,
					"Partner %q has ledger entries in year %d", target.Name, year)
			}
		}
		for _, load := range y.StockLoads {
			if load.PaidByPartnerID == a.PartnerID {
				return shared.Newf(shared.CodeReferentialBlock,
					"Partner %q paid stock loads in year %d", target.Name, year)
			}
		}
		for _, sale := range y.Sales {
			if sale.CollectedByPartnerID == a.PartnerID {
				return shared.Newf(shared.CodeReferentialBlock,
					"Partner %q collected sales in year %d", target.Name, year)
			}
			for _, p := range sale.Payments {
				if p.PartnerID == a.PartnerID {
					return shared.Newf(shared.CodeReferentialBlock,
						"Partner %q collected sales in year %d", target.Name, year)
				}
			}
		}
	}

	for i, p := range s.Partners {
		if p.ID == a.PartnerID {
			s.Partners = append(s.Partners[:i], s.Partners[i+1:]...)
			break
		}
	}
	return nil
}
