package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/essenza/backend/internal/application/engine"
	"github.com/essenza/backend/internal/domain/catalog"
	"github.com/essenza/backend/internal/domain/finance"
	"github.com/essenza/backend/internal/domain/inventory"
	"github.com/essenza/backend/internal/domain/ledger"
	"github.com/essenza/backend/internal/domain/partner"
	"github.com/essenza/backend/internal/domain/trade"
)

// MarshalState serializes the state tree to its canonical JSON form
// {partners, years}. The current-year pointer travels in settings, not in
// the tree.
func MarshalState(state *engine.State) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// UnmarshalState deserializes a state tree and applies the load-time
// defaults: collections missing from older exports become empty, and batches
// written before the maceration workflow get status available. currentYear
// selects the active year; a missing year entry is created empty so the
// engine always has a year to operate on.
func UnmarshalState(data []byte, currentYear int) (*engine.State, error) {
	var state engine.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	state.CurrentYear = currentYear
	Normalize(&state)
	return &state, nil
}

// Normalize fills the defaults a freshly deserialized state may be missing.
// It is idempotent and applied on every load.
func Normalize(state *engine.State) {
	if state.Partners == nil {
		state.Partners = make([]*partner.Partner, 0)
	}
	if state.Years == nil {
		state.Years = make(map[int]*engine.YearData)
	}
	if _, ok := state.Years[state.CurrentYear]; !ok {
		state.Years[state.CurrentYear] = engine.NewYearData()
	}
	for _, y := range state.Years {
		normalizeYear(y)
	}
}

func normalizeYear(y *engine.YearData) {
	if y.Customers == nil {
		y.Customers = make([]*partner.Customer, 0)
	}
	if y.Suppliers == nil {
		y.Suppliers = make([]*partner.Supplier, 0)
	}
	if y.Agents == nil {
		y.Agents = make([]*partner.Agent, 0)
	}
	if y.Products == nil {
		y.Products = make([]*catalog.Product, 0)
	}
	if y.Variants == nil {
		y.Variants = make([]*catalog.ProductVariant, 0)
	}
	if y.Categories == nil {
		y.Categories = make([]*catalog.Category, 0)
	}
	if y.Batches == nil {
		y.Batches = make(inventory.BatchSet, 0)
	}
	if y.StockLoads == nil {
		y.StockLoads = make([]*inventory.StockLoad, 0)
	}
	if y.Productions == nil {
		y.Productions = make([]*inventory.Production, 0)
	}
	if y.Sales == nil {
		y.Sales = make([]*trade.Sale, 0)
	}
	if y.Quotes == nil {
		y.Quotes = make([]*trade.Quote, 0)
	}
	if y.Orders == nil {
		y.Orders = make([]*trade.Order, 0)
	}
	if y.Expenses == nil {
		y.Expenses = make([]*finance.Expense, 0)
	}
	if y.PartnerLedger == nil {
		y.PartnerLedger = make([]*ledger.PartnerLedgerEntry, 0)
	}
	if y.Settlements == nil {
		y.Settlements = make([]*ledger.PartnerSettlement, 0)
	}
	for _, b := range y.Batches {
		if b.Status == "" {
			b.Status = inventory.BatchStatusAvailable
		}
	}
	for _, s := range y.Sales {
		if s.Payments == nil {
			s.Payments = make([]trade.SalePayment, 0)
		}
	}
	for _, q := range y.Quotes {
		if q.Payments == nil {
			q.Payments = make([]trade.SalePayment, 0)
		}
		if q.Status == "" {
			q.Status = trade.QuoteStatusOpen
		}
	}
}
