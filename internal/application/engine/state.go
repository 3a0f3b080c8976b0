package engine

import (
	"fmt"

	"github.com/essenza/backend/internal/domain/catalog"
	"github.com/essenza/backend/internal/domain/finance"
	"github.com/essenza/backend/internal/domain/inventory"
	"github.com/essenza/backend/internal/domain/ledger"
	"github.com/essenza/backend/internal/domain/partner"
	"github.com/essenza/backend/internal/domain/trade"
)

// YearData holds every entity collection of one fiscal year. The year owns
// its collections exclusively; batches are referenced by variants and
// documents but never shared across years.
type YearData struct {
	Customers     []*partner.Customer          `json:"customers"`
	Suppliers     []*partner.Supplier          `json:"suppliers"`
	Agents        []*partner.Agent             `json:"agents"`
	Products      []*catalog.Product           `json:"products"`
	Variants      []*catalog.ProductVariant    `json:"productVariants"`
	Categories    []*catalog.Category          `json:"categories"`
	Batches       inventory.BatchSet           `json:"inventoryBatches"`
	StockLoads    []*inventory.StockLoad       `json:"stockLoads"`
	Productions   []*inventory.Production      `json:"productions"`
	Sales         []*trade.Sale                `json:"sales"`
	Quotes        []*trade.Quote               `json:"quotes"`
	Orders        []*trade.Order               `json:"orders"`
	Expenses      []*finance.Expense           `json:"expenses"`
	PartnerLedger []*ledger.PartnerLedgerEntry `json:"partnerLedger"`
	Settlements   []*ledger.PartnerSettlement  `json:"partnerSettlements"`
}

// NewYearData creates an empty year
func NewYearData() *YearData {
	return &YearData{
		Customers:     make([]*partner.Customer, 0),
		Suppliers:     make([]*partner.Supplier, 0),
		Agents:        make([]*partner.Agent, 0),
		Products:      make([]*catalog.Product, 0),
		Variants:      make([]*catalog.ProductVariant, 0),
		Categories:    make([]*catalog.Category, 0),
		Batches:       make(inventory.BatchSet, 0),
		StockLoads:    make([]*inventory.StockLoad, 0),
		Productions:   make([]*inventory.Production, 0),
		Sales:         make([]*trade.Sale, 0),
		Quotes:        make([]*trade.Quote, 0),
		Orders:        make([]*trade.Order, 0),
		Expenses:      make([]*finance.Expense, 0),
		PartnerLedger: make([]*ledger.PartnerLedgerEntry, 0),
		Settlements:   make([]*ledger.PartnerSettlement, 0),
	}
}

// Clone returns a deep copy of the year
func (y *YearData) Clone() *YearData {
	out := NewYearData()
	for _, v := range y.Customers {
		out.Customers = append(out.Customers, v.Clone())
	}
	for _, v := range y.Suppliers {
		out.Suppliers = append(out.Suppliers, v.Clone())
	}
	for _, v := range y.Agents {
		out.Agents = append(out.Agents, v.Clone())
	}
	for _, v := range y.Products {
		out.Products = append(out.Products, v.Clone())
	}
	for _, v := range y.Variants {
		out.Variants = append(out.Variants, v.Clone())
	}
	for _, v := range y.Categories {
		out.Categories = append(out.Categories, v.Clone())
	}
	for _, v := range y.Batches {
		out.Batches = append(out.Batches, v.Clone())
	}
	for _, v := range y.StockLoads {
		out.StockLoads = append(out.StockLoads, v.Clone())
	}
	for _, v := range y.Productions {
		out.Productions = append(out.Productions, v.Clone())
	}
	for _, v := range y.Sales {
		out.Sales = append(out.Sales, v.Clone())
	}
	for _, v := range y.Quotes {
		out.Quotes = append(out.Quotes, v.Clone())
	}
	for _, v := range y.Orders {
		out.Orders = append(out.Orders, v.Clone())
	}
	for _, v := range y.Expenses {
		out.Expenses = append(out.Expenses, v.Clone())
	}
	for _, v := range y.PartnerLedger {
		out.PartnerLedger = append(out.PartnerLedger, v.Clone())
	}
	for _, v := range y.Settlements {
		out.Settlements = append(out.Settlements, v.Clone())
	}
	return out
}

// State is the whole application state: the year-independent partner list
// plus every fiscal year's data and the active year pointer.
type State struct {
	Partners    []*partner.Partner `json:"partners"`
	Years       map[int]*YearData  `json:"years"`
	CurrentYear int                `json:"-"`
}

// NewState creates a state with a single empty year
func NewState(year int) *State {
	return &State{
		Partners:    make([]*partner.Partner, 0),
		Years:       map[int]*YearData{year: NewYearData()},
		CurrentYear: year,
	}
}

// Clone returns a deep copy of the state. Apply works on a clone so the
// previous state stays unobserved-mutated, which is what makes undo correct.
func (s *State) Clone() *State {
	out := &State{
		Partners:    make([]*partner.Partner, 0, len(s.Partners)),
		Years:       make(map[int]*YearData, len(s.Years)),
		CurrentYear: s.CurrentYear,
	}
	for _, p := range s.Partners {
		out.Partners = append(out.Partners, p.Clone())
	}
	for year, data := range s.Years {
		out.Years[year] = data.Clone()
	}
	return out
}

// Current returns the active year's data
func (s *State) Current() *YearData {
	return s.Years[s.CurrentYear]
}

// FindPartner returns the partner with the given id, or nil
func (s *State) FindPartner(id string) *partner.Partner {
	for _, p := range s.Partners {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// findVariant returns the variant with the given id, or nil
func (y *YearData) findVariant(id string) *catalog.ProductVariant {
	for _, v := range y.Variants {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// findProduct returns the product with the given id, or nil
func (y *YearData) findProduct(id string) *catalog.Product {
	for _, p := range y.Products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// variantLabel returns a human-readable name for a variant, used in
// insufficient-stock errors.
func (y *YearData) variantLabel(variantID string) string {
	v := y.findVariant(variantID)
	if v == nil {
		return variantID
	}
	if p := y.findProduct(v.ProductID); p != nil {
		return fmt.Sprintf("%s %s", p.Name, v.Name)
	}
	return v.Name
}
