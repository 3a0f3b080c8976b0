package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essenza/backend/internal/domain/catalog"
	"github.com/essenza/backend/internal/domain/finance"
	"github.com/essenza/backend/internal/domain/inventory"
	"github.com/essenza/backend/internal/domain/ledger"
	"github.com/essenza/backend/internal/domain/partner"
	"github.com/essenza/backend/internal/domain/shared"
	"github.com/essenza/backend/internal/domain/trade"
)

var testDate = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func newBatch(id, variantID string, quantity float64, createdAt time.Time) *inventory.InventoryBatch {
	q := dec(quantity)
	return &inventory.InventoryBatch{
		ID:              id,
		VariantID:       variantID,
		InitialQuantity: q,
		CurrentQuantity: q,
		CreatedAt:       createdAt,
		Status:          inventory.BatchStatusAvailable,
	}
}

// fixtureState builds a 2025 state with two cash partners, one raw material
// with 15 units of stock and one finished product with 10.
func fixtureState() *State {
	s := NewState(2025)
	s.Partners = []*partner.Partner{
		{ID: "cassa", Name: "Cassa"},
		{ID: "banca", Name: "Banca"},
	}
	y := s.Current()
	y.Categories = []*catalog.Category{
		{ID: "cat-essenze", Name: "Essenze", IsComponent: true},
		{ID: "cat-profumi", Name: "Profumi"},
	}
	y.Products = []*catalog.Product{
		{ID: "p-essenza", Name: "Essenza Rosa", Category: "Essenze", Unit: "ml"},
		{ID: "p-profumo", Name: "Profumo Rosa", Category: "Profumi", Unit: "pz"},
	}
	y.Variants = []*catalog.ProductVariant{
		{ID: "v-essenza", ProductID: "p-essenza", Name: "Sfuso", SalePrice: dec(2)},
		{ID: "v-profumo", ProductID: "p-profumo", Name: "50ml", SalePrice: dec(45)},
	}
	y.Batches = inventory.BatchSet{
		newBatch("b-essenza", "v-essenza", 15, testDate.AddDate(0, -1, 0)),
		newBatch("b-profumo", "v-profumo", 10, testDate.AddDate(0, -1, 0)),
	}
	return s
}

func mustApply(t *testing.T, e *Engine, s *State, a Action) *State {
	t.Helper()
	next, err := e.Apply(s, a)
	require.NoError(t, err)
	require.NotNil(t, next)
	return next
}

func TestApplyGuards(t *testing.T) {
	e := New()

	t.Run("nil state is rejected", func(t *testing.T) {
		_, err := e.Apply(nil, AddPartner{PartnerName: "Cassa"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("missing current year is rejected", func(t *testing.T) {
		s := fixtureState()
		s.CurrentYear = 1999
		_, err := e.Apply(s, AddPartner{PartnerName: "Cassa"})
		assert.ErrorIs(t, err, shared.ErrConflictingState)
	})

	t.Run("the input state is never mutated", func(t *testing.T) {
		s := fixtureState()
		before := len(s.Current().Sales)

		next := mustApply(t, e, s, AddSale{Draft: DocumentDraft{
			Date:       testDate,
			CustomerID: "c1",
			Items:      []trade.DocumentItem{{VariantID: "v-profumo", Quantity: dec(2), Price: dec(45)}},
		}})

		assert.Len(t, s.Current().Sales, before)
		assert.True(t, s.Current().Batches.AvailableQuantity("v-profumo").Equal(dec(10)))
		assert.Len(t, next.Current().Sales, before+1)
		assert.True(t, next.Current().Batches.AvailableQuantity("v-profumo").Equal(dec(8)))
	})

	t.Run("a rejected action leaves no trace", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, AddSale{Draft: DocumentDraft{
			Items: []trade.DocumentItem{{VariantID: "v-profumo", Quantity: dec(99), Price: dec(45)}},
		}})
		require.Error(t, err)
		assert.True(t, s.Current().Batches.AvailableQuantity("v-profumo").Equal(dec(10)))
		assert.Empty(t, s.Current().Sales)
	})
}

func TestCategoryRules(t *testing.T) {
	e := New()

	t.Run("duplicate names are rejected case-insensitively", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, AddCategory{Category: catalog.Category{Name: "essenze"}})
		assert.ErrorIs(t, err, shared.ErrDuplicateName)
	})

	t.Run("rename cascades onto referencing products", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, UpdateCategory{Category: catalog.Category{
			ID: "cat-essenze", Name: "Oli Essenziali", IsComponent: true,
		}})

		for _, p := range next.Current().Products {
			if p.ID == "p-essenza" {
				assert.Equal(t, "Oli Essenziali", p.Category)
			}
		}
	})

	t.Run("delete is blocked while a product references the category", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, DeleteCategory{CategoryID: "cat-essenze"})
		assert.ErrorIs(t, err, shared.ErrReferentialBlock)
	})

	t.Run("delete is blocked while a child category exists", func(t *testing.T) {
		s := fixtureState()
		parentID := "cat-profumi"
		s.Current().Categories = append(s.Current().Categories, &catalog.Category{
			ID: "cat-nicchia", Name: "Nicchia", ParentID: &parentID,
		})
		s.Current().Products = s.Current().Products[:1] // keep only the essenze product

		_, err := e.Apply(s, DeleteCategory{CategoryID: "cat-profumi"})
		assert.ErrorIs(t, err, shared.ErrReferentialBlock)
	})

	t.Run("unreferenced categories delete cleanly", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddCategory{Category: catalog.Category{ID: "cat-x", Name: "Campioni"}})
		next = mustApply(t, e, next, DeleteCategory{CategoryID: "cat-x"})
		for _, c := range next.Current().Categories {
			assert.NotEqual(t, "cat-x", c.ID)
		}
	})
}

func TestProductCascades(t *testing.T) {
	e := New()

	t.Run("deleting a product removes its variants and batches", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, DeleteProduct{ProductID: "p-essenza"})

		y := next.Current()
		for _, v := range y.Variants {
			assert.NotEqual(t, "p-essenza", v.ProductID)
		}
		assert.Nil(t, y.Batches.FindByID("b-essenza"))
		assert.NotNil(t, y.Batches.FindByID("b-profumo"))
	})

	t.Run("deleting a variant removes its batches only", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, DeleteVariant{VariantID: "v-essenza"})
		assert.Nil(t, next.Current().Batches.FindByID("b-essenza"))
		assert.NotNil(t, next.Current().Batches.FindByID("b-profumo"))
	})

	t.Run("variants require an existing product", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, AddVariant{Variant: catalog.ProductVariant{ProductID: "missing", Name: "10ml"}})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAgentsAndCustomers(t *testing.T) {
	e := New()

	t.Run("client counts follow customer assignments", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddAgent{Agent: partner.Agent{ID: "ag1", Name: "Marta"}})

		agID := "ag1"
		next = mustApply(t, e, next, AddCustomer{Customer: partner.Customer{ID: "c1", Name: "Luca", AgentID: &agID}})
		next = mustApply(t, e, next, AddCustomer{Customer: partner.Customer{ID: "c2", Name: "Sara", AgentID: &agID}})

		require.Len(t, next.Current().Agents, 1)
		assert.Equal(t, 2, next.Current().Agents[0].AssociatedClients)

		next = mustApply(t, e, next, DeleteCustomer{CustomerID: "c2"})
		assert.Equal(t, 1, next.Current().Agents[0].AssociatedClients)
	})

	t.Run("deleting an agent detaches its customers", func(t *testing.T) {
		s := fixtureState()
		agID := "ag1"
		s.Current().Agents = []*partner.Agent{{ID: agID, Name: "Marta"}}
		s.Current().Customers = []*partner.Customer{{ID: "c1", Name: "Luca", AgentID: &agID}}

		next := mustApply(t, e, s, DeleteAgent{AgentID: agID})
		assert.Nil(t, next.Current().Customers[0].AgentID)
	})

	t.Run("editing a missing agent is a silent no-op", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, UpdateAgent{Agent: partner.Agent{ID: "ghost", Name: "Nessuno"}})
		assert.Empty(t, next.Current().Agents)
	})

	t.Run("editing a missing customer is rejected", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, UpdateCustomer{Customer: partner.Customer{ID: "ghost", Name: "Nessuno"}})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPartnerLifecycle(t *testing.T) {
	e := New()

	t.Run("blank names are rejected", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, AddPartner{PartnerName: "  "})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("partners with ledger entries cannot be deleted", func(t *testing.T) {
		s := fixtureState()
		entry, err := ledger.NewEntry(testDate, "cassa", "Incasso", dec(100))
		require.NoError(t, err)
		s.Current().PartnerLedger = append(s.Current().PartnerLedger, entry)

		_, applyErr := e.Apply(s, DeletePartner{PartnerID: "cassa"})
		assert.ErrorIs(t, applyErr, shared.ErrReferentialBlock)
	})

	t.Run("references in archived years still block deletion", func(t *testing.T) {
		s := fixtureState()
		entry, err := ledger.NewEntry(testDate, "banca", "Incasso", dec(100))
		require.NoError(t, err)
		s.Current().PartnerLedger = append(s.Current().PartnerLedger, entry)

		next := mustApply(t, e, s, ArchiveYear{})
		_, applyErr := e.Apply(next, DeletePartner{PartnerID: "banca"})
		assert.ErrorIs(t, applyErr, shared.ErrReferentialBlock)
	})

	t.Run("unreferenced partners delete cleanly", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, DeletePartner{PartnerID: "banca"})
		assert.Nil(t, next.FindPartner("banca"))
		assert.NotNil(t, next.FindPartner("cassa"))
	})
}

func TestStockLoads(t *testing.T) {
	e := New()

	load := inventory.StockLoad{
		ID:   "load-1",
		Date: testDate,
		Items: []inventory.StockLoadItem{
			{VariantID: "v-essenza", Quantity: dec(20), Price: dec(1.5)},
		},
		PaidByPartnerID: "cassa",
	}

	t.Run("registering a load creates batches and a negative ledger entry", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddStockLoad{Load: load})

		y := next.Current()
		require.Len(t, y.StockLoads, 1)
		assert.True(t, y.StockLoads[0].Total.Equal(dec(30)))
		assert.True(t, y.Batches.AvailableQuantity("v-essenza").Equal(dec(35)))

		require.Len(t, y.PartnerLedger, 1)
		assert.Equal(t, "cassa", y.PartnerLedger[0].PartnerID)
		assert.True(t, y.PartnerLedger[0].Amount.Equal(dec(-30)))
		assert.Equal(t, "load-1", y.PartnerLedger[0].RelatedDocumentID)
	})

	t.Run("a load without a paying partner writes no entry", func(t *testing.T) {
		s := fixtureState()
		depot := load
		depot.PaidByPartnerID = ""
		next := mustApply(t, e, s, AddStockLoad{Load: depot})
		assert.Empty(t, next.Current().PartnerLedger)
	})

	t.Run("clearing the partner on update drops the entry", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddStockLoad{Load: load})

		updated := load
		updated.PaidByPartnerID = ""
		next = mustApply(t, e, next, UpdateStockLoad{Load: updated})
		assert.Empty(t, next.Current().PartnerLedger)
	})

	t.Run("deleting the load removes batches and entry", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddStockLoad{Load: load})
		next = mustApply(t, e, next, DeleteStockLoad{StockLoadID: "load-1"})

		y := next.Current()
		assert.Empty(t, y.StockLoads)
		assert.Empty(t, y.PartnerLedger)
		assert.True(t, y.Batches.AvailableQuantity("v-essenza").Equal(dec(15)))
	})

	t.Run("deleting a missing load is a silent no-op", func(t *testing.T) {
		s := fixtureState()
		_ = mustApply(t, e, s, DeleteStockLoad{StockLoadID: "ghost"})
	})
}

func TestProductions(t *testing.T) {
	e := New()

	t.Run("insufficient component stock rejects the whole run", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, AddProduction{
			Date:              testDate,
			FinishedVariantID: "v-profumo",
			QuantityProduced:  dec(5),
			Components: []ProductionComponentRequest{
				{VariantID: "v-essenza", Quantity: dec(20)},
			},
		})

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "requested 20")
		assert.Contains(t, err.Error(), "available 15")
		assert.True(t, s.Current().Batches.AvailableQuantity("v-essenza").Equal(dec(15)))
	})

	t.Run("a run without maceration yields available stock immediately", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddProduction{
			Date:              testDate,
			FinishedVariantID: "v-profumo",
			QuantityProduced:  dec(5),
			Components: []ProductionComponentRequest{
				{VariantID: "v-essenza", Quantity: dec(10)},
			},
		})

		y := next.Current()
		require.Len(t, y.Productions, 1)
		assert.True(t, y.Batches.AvailableQuantity("v-essenza").Equal(dec(5)))
		assert.True(t, y.Batches.AvailableQuantity("v-profumo").Equal(dec(15)))

		produced := y.Batches.FindByID(findProducedBatchID(y, y.Productions[0].ID))
		require.NotNil(t, produced)
		require.NotNil(t, produced.ActualMacerationDays)
		assert.Equal(t, 0, *produced.ActualMacerationDays)
		require.NotNil(t, produced.ExpirationDate)
		assert.True(t, produced.ExpirationDate.Equal(testDate.AddDate(0, inventory.ProductionShelfLifeMonths, 0)))
	})

	t.Run("maceration keeps the produced batch out of availability", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddProduction{
			Date:              testDate,
			FinishedVariantID: "v-profumo",
			QuantityProduced:  dec(5),
			MacerationDays:    30,
			Components: []ProductionComponentRequest{
				{VariantID: "v-essenza", Quantity: dec(10)},
			},
		})

		y := next.Current()
		assert.True(t, y.Batches.AvailableQuantity("v-profumo").Equal(dec(10)))
		assert.True(t, y.Batches.TotalQuantity("v-profumo").Equal(dec(15)))

		batchID := findProducedBatchID(y, y.Productions[0].ID)
		next = mustApply(t, e, next, CompleteMaceration{BatchID: batchID, CompletedAt: testDate.AddDate(0, 0, 30)})
		assert.True(t, next.Current().Batches.AvailableQuantity("v-profumo").Equal(dec(15)))
	})

	t.Run("deleting a production restores the exact draws", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddProduction{
			Date:              testDate,
			FinishedVariantID: "v-profumo",
			QuantityProduced:  dec(5),
			Components: []ProductionComponentRequest{
				{VariantID: "v-essenza", Quantity: dec(10)},
			},
		})
		productionID := next.Current().Productions[0].ID

		next = mustApply(t, e, next, DeleteProduction{ProductionID: productionID})

		y := next.Current()
		assert.Empty(t, y.Productions)
		assert.True(t, y.Batches.AvailableQuantity("v-essenza").Equal(dec(15)))
		assert.True(t, y.Batches.AvailableQuantity("v-profumo").Equal(dec(10)))
	})

	t.Run("non-positive produced quantity is rejected", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, AddProduction{Date: testDate, FinishedVariantID: "v-profumo", QuantityProduced: dec(0)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

// findProducedBatchID returns the batch created by the given production
func findProducedBatchID(y *YearData, productionID string) string {
	for _, b := range y.Batches {
		if b.ProductionID == productionID {
			return b.ID
		}
	}
	return ""
}

func TestSales(t *testing.T) {
	e := New()

	draft := DocumentDraft{
		Date:       testDate,
		CustomerID: "c1",
		Items:      []trade.DocumentItem{{VariantID: "v-profumo", Quantity: dec(3), Price: dec(45)}},
	}

	t.Run("a sale debits inventory and computes totals", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddSale{Draft: draft})

		y := next.Current()
		require.Len(t, y.Sales, 1)
		assert.True(t, y.Sales[0].Total.Equal(dec(135)))
		assert.Equal(t, trade.DocumentTypeSale, y.Sales[0].Type)
		assert.True(t, y.Batches.AvailableQuantity("v-profumo").Equal(dec(7)))
	})

	t.Run("deleting a sale restores stock and drops its collections", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddSale{Draft: draft})
		saleID := next.Current().Sales[0].ID

		next = mustApply(t, e, next, CollectSale{SaleID: saleID, Amount: dec(135), PartnerID: "cassa", Date: testDate})
		require.Len(t, next.Current().PartnerLedger, 1)

		next = mustApply(t, e, next, DeleteSale{SaleID: saleID})
		y := next.Current()
		assert.Empty(t, y.Sales)
		assert.Empty(t, y.PartnerLedger)
		assert.True(t, y.Batches.AvailableQuantity("v-profumo").Equal(dec(10)))
	})

	t.Run("collecting records the payment and a positive entry", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddSale{Draft: draft})
		saleID := next.Current().Sales[0].ID

		next = mustApply(t, e, next, CollectSale{SaleID: saleID, Amount: dec(100), PartnerID: "banca", Date: testDate, Method: "bonifico"})

		y := next.Current()
		sale := y.Sales[0]
		assert.True(t, sale.PaidAmount().Equal(dec(100)))
		assert.True(t, sale.RemainingDue().Equal(dec(35)))
		assert.Equal(t, "banca", sale.CollectedByPartnerID)

		require.Len(t, y.PartnerLedger, 1)
		assert.True(t, y.PartnerLedger[0].Amount.Equal(dec(100)))
		assert.Equal(t, saleID, y.PartnerLedger[0].RelatedDocumentID)
	})

	t.Run("collecting a missing sale is rejected", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, CollectSale{SaleID: "ghost", Amount: dec(10), PartnerID: "cassa", Date: testDate})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBulkCollect(t *testing.T) {
	e := New()

	prepare := func(t *testing.T) (*State, []string) {
		s := fixtureState()
		ids := make([]string, 0, 3)
		next := s
		for i := 0; i < 3; i++ {
			next = mustApply(t, e, next, AddSale{Draft: DocumentDraft{
				Date:       testDate,
				CustomerID: "c1",
				Items:      []trade.DocumentItem{{VariantID: "v-profumo", Quantity: dec(1), Price: dec(50)}},
			}})
		}
		for _, sale := range next.Current().Sales {
			ids = append(ids, sale.ID)
		}
		return next, ids
	}

	t.Run("one aggregate entry references every collected sale", func(t *testing.T) {
		s, ids := prepare(t)
		next := mustApply(t, e, s, BulkCollectSales{
			PartnerID: "cassa",
			Date:      testDate,
			Collections: []SaleCollection{
				{SaleID: ids[0], Amount: dec(50)},
				{SaleID: ids[1], Amount: dec(0)},
				{SaleID: ids[2], Amount: dec(30)},
			},
		})

		y := next.Current()
		require.Len(t, y.PartnerLedger, 1)
		entry := y.PartnerLedger[0]
		assert.True(t, entry.Amount.Equal(dec(80)))
		assert.True(t, entry.RelatedTo(ids[0]))
		assert.False(t, entry.RelatedTo(ids[1]))
		assert.True(t, entry.RelatedTo(ids[2]))

		for i, sale := range y.Sales {
			switch sale.ID {
			case ids[1]:
				assert.Empty(t, sale.Payments, "sale %d", i)
			default:
				assert.Len(t, sale.Payments, 1, "sale %d", i)
			}
		}
	})

	t.Run("unknown sale ids are filtered out", func(t *testing.T) {
		s, ids := prepare(t)
		next := mustApply(t, e, s, BulkCollectSales{
			PartnerID: "cassa",
			Date:      testDate,
			Collections: []SaleCollection{
				{SaleID: "ghost", Amount: dec(10)},
				{SaleID: ids[0], Amount: dec(50)},
			},
		})

		require.Len(t, next.Current().PartnerLedger, 1)
		assert.True(t, next.Current().PartnerLedger[0].Amount.Equal(dec(50)))
	})

	t.Run("nothing surviving the filter writes no entry", func(t *testing.T) {
		s, _ := prepare(t)
		next := mustApply(t, e, s, BulkCollectSales{
			PartnerID:   "cassa",
			Date:        testDate,
			Collections: []SaleCollection{{SaleID: "ghost", Amount: dec(10)}},
		})
		assert.Empty(t, next.Current().PartnerLedger)
	})

	t.Run("deleting one sale removes the whole aggregate entry", func(t *testing.T) {
		s, ids := prepare(t)
		next := mustApply(t, e, s, BulkCollectSales{
			PartnerID: "cassa",
			Date:      testDate,
			Collections: []SaleCollection{
				{SaleID: ids[0], Amount: dec(50)},
				{SaleID: ids[2], Amount: dec(30)},
			},
		})

		next = mustApply(t, e, next, DeleteSale{SaleID: ids[2]})
		assert.Empty(t, next.Current().PartnerLedger)
	})
}

func TestQuotes(t *testing.T) {
	e := New()

	draft := DocumentDraft{
		Date:       testDate,
		CustomerID: "c1",
		Items:      []trade.DocumentItem{{VariantID: "v-profumo", Quantity: dec(4), Price: dec(45)}},
	}

	t.Run("quotes never touch inventory", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddQuote{Draft: draft})

		require.Len(t, next.Current().Quotes, 1)
		assert.Equal(t, trade.QuoteStatusOpen, next.Current().Quotes[0].Status)
		assert.True(t, next.Current().Batches.AvailableQuantity("v-profumo").Equal(dec(10)))
	})

	t.Run("conversion debits inventory and carries payments", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddQuote{Draft: draft})
		quoteID := next.Current().Quotes[0].ID

		next = mustApply(t, e, next, CollectQuote{QuoteID: quoteID, Amount: dec(80), PartnerID: "cassa", Date: testDate})
		next = mustApply(t, e, next, ConvertQuoteToSale{QuoteID: quoteID, Date: testDate.AddDate(0, 0, 3)})

		y := next.Current()
		assert.Equal(t, trade.QuoteStatusConverted, y.Quotes[0].Status)
		require.Len(t, y.Sales, 1)
		assert.True(t, y.Sales[0].PaidAmount().Equal(dec(80)))
		assert.Equal(t, "cassa", y.Sales[0].CollectedByPartnerID)
		assert.True(t, y.Batches.AvailableQuantity("v-profumo").Equal(dec(6)))
	})

	t.Run("a converted quote cannot be converted again", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddQuote{Draft: draft})
		quoteID := next.Current().Quotes[0].ID

		next = mustApply(t, e, next, ConvertQuoteToSale{QuoteID: quoteID, Date: testDate})
		_, err := e.Apply(next, ConvertQuoteToSale{QuoteID: quoteID, Date: testDate})
		assert.ErrorIs(t, err, shared.ErrConflictingState)
	})

	t.Run("conversion is rejected when stock ran out meanwhile", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddQuote{Draft: draft})
		quoteID := next.Current().Quotes[0].ID

		next = mustApply(t, e, next, AddSale{Draft: DocumentDraft{
			Date:  testDate,
			Items: []trade.DocumentItem{{VariantID: "v-profumo", Quantity: dec(8), Price: dec(45)}},
		}})

		_, err := e.Apply(next, ConvertQuoteToSale{QuoteID: quoteID, Date: testDate})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, trade.QuoteStatusOpen, next.Current().Quotes[0].Status)
	})

	t.Run("a converted quote cannot be edited", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddQuote{Draft: draft})
		quote := next.Current().Quotes[0]

		next = mustApply(t, e, next, ConvertQuoteToSale{QuoteID: quote.ID, Date: testDate})
		_, err := e.Apply(next, UpdateQuote{Quote: *quote.Clone()})
		assert.ErrorIs(t, err, shared.ErrConflictingState)
	})
}

func TestOrders(t *testing.T) {
	e := New()

	draft := DocumentDraft{
		Date:       testDate,
		CustomerID: "c1",
		Items: []trade.DocumentItem{
			{VariantID: "v-profumo", Quantity: dec(2), Price: dec(45)},
			{VariantID: "v-essenza", Quantity: dec(5), Price: dec(2)},
		},
	}

	t.Run("conversion requires every line prepared", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddOrder{Draft: draft})
		orderID := next.Current().Orders[0].ID

		next = mustApply(t, e, next, SetOrderItemPrepared{OrderID: orderID, ItemIndex: 0, Prepared: true})
		_, err := e.Apply(next, ConvertOrderToSale{OrderID: orderID, Date: testDate})
		assert.ErrorIs(t, err, shared.ErrConflictingState)

		next = mustApply(t, e, next, SetOrderItemPrepared{OrderID: orderID, ItemIndex: 1, Prepared: true})
		next = mustApply(t, e, next, ConvertOrderToSale{OrderID: orderID, Date: testDate})

		y := next.Current()
		assert.Equal(t, trade.OrderStatusCompleted, y.Orders[0].Status)
		require.Len(t, y.Sales, 1)
		assert.True(t, y.Batches.AvailableQuantity("v-profumo").Equal(dec(8)))
		assert.True(t, y.Batches.AvailableQuantity("v-essenza").Equal(dec(10)))
	})

	t.Run("cancelling takes the order out of preparation", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddOrder{Draft: draft})
		orderID := next.Current().Orders[0].ID

		next = mustApply(t, e, next, CancelOrder{OrderID: orderID})
		assert.Equal(t, trade.OrderStatusCancelled, next.Current().Orders[0].Status)

		_, err := e.Apply(next, ConvertOrderToSale{OrderID: orderID, Date: testDate})
		assert.ErrorIs(t, err, shared.ErrConflictingState)
	})

	t.Run("preparation flags on a completed order are rejected", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddOrder{Draft: draft})
		orderID := next.Current().Orders[0].ID
		next = mustApply(t, e, next, CancelOrder{OrderID: orderID})

		_, err := e.Apply(next, SetOrderItemPrepared{OrderID: orderID, ItemIndex: 0, Prepared: true})
		assert.ErrorIs(t, err, shared.ErrConflictingState)
	})

	t.Run("out-of-range item index is rejected", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddOrder{Draft: draft})
		orderID := next.Current().Orders[0].ID

		_, err := e.Apply(next, SetOrderItemPrepared{OrderID: orderID, ItemIndex: 5, Prepared: true})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestLedger(t *testing.T) {
	e := New()

	t.Run("a transfer writes two mirrored entries", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, TransferBetweenPartners{
			FromPartnerID: "cassa", ToPartnerID: "banca", Amount: dec(200), Date: testDate,
		})

		entries := next.Current().PartnerLedger
		require.Len(t, entries, 2)
		assert.True(t, ledger.Balance(entries, "cassa").Equal(dec(-200)))
		assert.True(t, ledger.Balance(entries, "banca").Equal(dec(200)))
		assert.Contains(t, entries[0].Description, "Banca")
		assert.Contains(t, entries[1].Description, "Cassa")
	})

	t.Run("transfers to the same partner are rejected", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, TransferBetweenPartners{FromPartnerID: "cassa", ToPartnerID: "cassa", Amount: dec(10), Date: testDate})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("manual entries require an existing partner", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, AddLedgerEntry{Entry: ledger.PartnerLedgerEntry{PartnerID: "ghost", Amount: dec(5), Date: testDate}})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("archiving a settlement zeroes every balance", func(t *testing.T) {
		s := fixtureState()
		a, err := ledger.NewEntry(testDate, "cassa", "Incasso", dec(500))
		require.NoError(t, err)
		b, err := ledger.NewEntry(testDate, "banca", "Incasso", dec(100))
		require.NoError(t, err)
		s.Current().PartnerLedger = append(s.Current().PartnerLedger, a, b)

		next := mustApply(t, e, s, ArchivePartnerSettlement{Date: testDate})

		y := next.Current()
		require.Len(t, y.Settlements, 1)
		settlement := y.Settlements[0]
		assert.True(t, settlement.TotalSystemBalance.Equal(dec(600)))
		assert.True(t, settlement.TargetPerPartner.Equal(dec(300)))
		require.Len(t, settlement.PartnerSnapshots, 2)
		assert.Equal(t, ledger.BalanceStatusDebtor, settlement.PartnerSnapshots[0].Status)
		assert.Equal(t, ledger.BalanceStatusCreditor, settlement.PartnerSnapshots[1].Status)

		assert.True(t, ledger.Balance(y.PartnerLedger, "cassa").IsZero())
		assert.True(t, ledger.Balance(y.PartnerLedger, "banca").IsZero())
	})

	t.Run("settlement payments attach, update and detach", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, ArchivePartnerSettlement{Date: testDate})
		settlementID := next.Current().Settlements[0].ID

		next = mustApply(t, e, next, AttachSettlementPayment{
			SettlementID: settlementID,
			Payment:      ledger.SettlementPayment{Date: testDate, Amount: dec(50), Method: "contanti"},
		})
		require.NotNil(t, next.Current().Settlements[0].Payment)
		assert.True(t, next.Current().Settlements[0].Payment.Amount.Equal(dec(50)))

		next = mustApply(t, e, next, UpdateSettlementPayment{
			SettlementID: settlementID,
			Payment:      ledger.SettlementPayment{Date: testDate, Amount: dec(75)},
		})
		assert.True(t, next.Current().Settlements[0].Payment.Amount.Equal(dec(75)))

		next = mustApply(t, e, next, DeleteSettlementPayment{SettlementID: settlementID})
		assert.Nil(t, next.Current().Settlements[0].Payment)
	})

	t.Run("payments on a missing settlement are silent no-ops", func(t *testing.T) {
		s := fixtureState()
		_ = mustApply(t, e, s, AttachSettlementPayment{SettlementID: "ghost", Payment: ledger.SettlementPayment{Amount: dec(1)}})
	})
}

func TestExpenses(t *testing.T) {
	e := New()

	expense := finance.Expense{
		ID:              "exp-1",
		Date:            testDate,
		Description:     "Bolletta elettrica",
		Quantity:        dec(1),
		Price:           dec(100),
		VATApplied:      true,
		PaidByPartnerID: "cassa",
	}

	t.Run("a paid expense keeps one negative entry in sync", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, AddExpense{Expense: expense})

		y := next.Current()
		require.Len(t, y.Expenses, 1)
		assert.True(t, y.Expenses[0].Total.Equal(dec(122)))
		require.Len(t, y.PartnerLedger, 1)
		assert.True(t, y.PartnerLedger[0].Amount.Equal(dec(-122)))
		assert.Contains(t, y.PartnerLedger[0].Description, "Bolletta elettrica")

		updated := expense
		updated.Price = dec(80)
		updated.VATApplied = false
		updated.PaidByPartnerID = "banca"
		next = mustApply(t, e, next, UpdateExpense{Expense: updated})

		y = next.Current()
		assert.True(t, y.Expenses[0].Total.Equal(dec(80)))
		require.Len(t, y.PartnerLedger, 1)
		assert.Equal(t, "banca", y.PartnerLedger[0].PartnerID)
		assert.True(t, y.PartnerLedger[0].Amount.Equal(dec(-80)))

		next = mustApply(t, e, next, DeleteExpense{ExpenseID: "exp-1"})
		assert.Empty(t, next.Current().Expenses)
		assert.Empty(t, next.Current().PartnerLedger)
	})

	t.Run("an unpaid expense writes no entry", func(t *testing.T) {
		s := fixtureState()
		unpaid := expense
		unpaid.PaidByPartnerID = ""
		next := mustApply(t, e, s, AddExpense{Expense: unpaid})
		assert.Empty(t, next.Current().PartnerLedger)
	})

	t.Run("editing a missing expense is rejected", func(t *testing.T) {
		s := fixtureState()
		_, err := e.Apply(s, UpdateExpense{Expense: finance.Expense{ID: "ghost"}})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestYearLifecycle(t *testing.T) {
	e := New()

	t.Run("archiving opens the next year empty and switches to it", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, ArchiveYear{})

		assert.Equal(t, 2026, next.CurrentYear)
		assert.Empty(t, next.Current().Sales)
		assert.Empty(t, next.Current().Batches)
		require.Contains(t, next.Years, 2025)
		assert.Len(t, next.Years[2025].Batches, 2)
	})

	t.Run("archiving twice into the same year is rejected", func(t *testing.T) {
		s := fixtureState()
		s.Years[2026] = NewYearData()
		_, err := e.Apply(s, ArchiveYear{})
		assert.ErrorIs(t, err, shared.ErrConflictingState)
	})

	t.Run("switching to an archived year works, to a missing one fails", func(t *testing.T) {
		s := fixtureState()
		next := mustApply(t, e, s, ArchiveYear{})
		next = mustApply(t, e, next, SetCurrentYear{Year: 2025})
		assert.Equal(t, 2025, next.CurrentYear)

		_, err := e.Apply(next, SetCurrentYear{Year: 2030})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
