package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/essenza/backend/internal/domain/catalog"
	"github.com/essenza/backend/internal/domain/finance"
	"github.com/essenza/backend/internal/domain/inventory"
	"github.com/essenza/backend/internal/domain/ledger"
	"github.com/essenza/backend/internal/domain/partner"
	"github.com/essenza/backend/internal/domain/trade"
)

// Action is the closed set of state transitions the engine accepts. Every
// variant carries its full payload; Apply dispatches on the concrete type and
// rejects anything it does not know.
type Action interface {
	// Name identifies the action in logs
	Name() string
	isAction()
}

// DocumentDraft is the shared payload of sale/quote/order creation: the raw
// inputs the totals formula is computed from.
type DocumentDraft struct {
	Date          time.Time
	CustomerID    string
	Items         []trade.DocumentItem
	VATApplied    bool
	DiscountValue *decimal.Decimal
	DiscountType  trade.DiscountType
	ShippingCost  *decimal.Decimal
	Notes         string
}

// ProductionComponentRequest asks for one raw material in a production run
type ProductionComponentRequest struct {
	VariantID     string
	Quantity      decimal.Decimal
	WeightInGrams *decimal.Decimal
}

// SaleCollection is one sale's share of a bulk collection
type SaleCollection struct {
	SaleID string
	Amount decimal.Decimal
}

// Catalog actions

type AddProduct struct{ Product catalog.Product }
type UpdateProduct struct{ Product catalog.Product }
type DeleteProduct struct{ ProductID string }
type AddVariant struct{ Variant catalog.ProductVariant }
type UpdateVariant struct{ Variant catalog.ProductVariant }
type DeleteVariant struct{ VariantID string }
type AddCategory struct{ Category catalog.Category }
type UpdateCategory struct{ Category catalog.Category }
type DeleteCategory struct{ CategoryID string }

// People and partner actions

type AddCustomer struct{ Customer partner.Customer }
type UpdateCustomer struct{ Customer partner.Customer }
type DeleteCustomer struct{ CustomerID string }
type AddSupplier struct{ Supplier partner.Supplier }
type UpdateSupplier struct{ Supplier partner.Supplier }
type DeleteSupplier struct{ SupplierID string }
type AddAgent struct{ Agent partner.Agent }
type UpdateAgent struct{ Agent partner.Agent }
type DeleteAgent struct{ AgentID string }
type AddPartner struct{ PartnerName string }
type DeletePartner struct{ PartnerID string }

// Inventory actions

type AddStockLoad struct{ Load inventory.StockLoad }
type UpdateStockLoad struct{ Load inventory.StockLoad }
type DeleteStockLoad struct{ StockLoadID string }

type AddProduction struct {
	Date              time.Time
	FinishedVariantID string
	QuantityProduced  decimal.Decimal
	Components        []ProductionComponentRequest
	MacerationDays    int
	ProductionType    string
	ColorCode         string
	ColorDrops        int
}

type DeleteProduction struct{ ProductionID string }

type CompleteMaceration struct {
	BatchID     string
	CompletedAt time.Time
}

// Trade actions

type AddSale struct{ Draft DocumentDraft }
type DeleteSale struct{ SaleID string }

type CollectSale struct {
	SaleID    string
	Amount    decimal.Decimal
	PartnerID string
	Date      time.Time
	Method    string
}

type BulkCollectSales struct {
	Collections []SaleCollection
	PartnerID   string
	Date        time.Time
	Method      string
}

type AddQuote struct{ Draft DocumentDraft }
type UpdateQuote struct{ Quote trade.Quote }
type DeleteQuote struct{ QuoteID string }

type CollectQuote struct {
	QuoteID   string
	Amount    decimal.Decimal
	PartnerID string
	Date      time.Time
	Method    string
}

type ConvertQuoteToSale struct {
	QuoteID string
	Date    time.Time
}

type AddOrder struct {
	Draft DocumentDraft
}

type UpdateOrder struct{ Order trade.Order }
type DeleteOrder struct{ OrderID string }

type SetOrderItemPrepared struct {
	OrderID   string
	ItemIndex int
	Prepared  bool
}

type ConvertOrderToSale struct {
	OrderID string
	Date    time.Time
}

type CancelOrder struct{ OrderID string }

// Finance and ledger actions

type AddExpense struct{ Expense finance.Expense }
type UpdateExpense struct{ Expense finance.Expense }
type DeleteExpense struct{ ExpenseID string }

type AddLedgerEntry struct{ Entry ledger.PartnerLedgerEntry }

type TransferBetweenPartners struct {
	FromPartnerID string
	ToPartnerID   string
	Amount        decimal.Decimal
	Date          time.Time
}

type ArchivePartnerSettlement struct{ Date time.Time }

type AttachSettlementPayment struct {
	SettlementID string
	Payment      ledger.SettlementPayment
}

type UpdateSettlementPayment struct {
	SettlementID string
	Payment      ledger.SettlementPayment
}

type DeleteSettlementPayment struct{ SettlementID string }

// Lifecycle actions

type ArchiveYear struct{}
type SetCurrentYear struct{ Year int }

func (AddProduct) Name() string               { return "catalog.add_product" }
func (UpdateProduct) Name() string            { return "catalog.update_product" }
func (DeleteProduct) Name() string            { return "catalog.delete_product" }
func (AddVariant) Name() string               { return "catalog.add_variant" }
func (UpdateVariant) Name() string            { return "catalog.update_variant" }
func (DeleteVariant) Name() string            { return "catalog.delete_variant" }
func (AddCategory) Name() string              { return "catalog.add_category" }
func (UpdateCategory) Name() string           { return "catalog.update_category" }
func (DeleteCategory) Name() string           { return "catalog.delete_category" }
func (AddCustomer) Name() string              { return "partner.add_customer" }
func (UpdateCustomer) Name() string           { return "partner.update_customer" }
func (DeleteCustomer) Name() string           { return "partner.delete_customer" }
func (AddSupplier) Name() string              { return "partner.add_supplier" }
func (UpdateSupplier) Name() string           { return "partner.update_supplier" }
func (DeleteSupplier) Name() string           { return "partner.delete_supplier" }
func (AddAgent) Name() string                 { return "partner.add_agent" }
func (UpdateAgent) Name() string              { return "partner.update_agent" }
func (DeleteAgent) Name() string              { return "partner.delete_agent" }
func (AddPartner) Name() string               { return "partner.add_partner" }
func (DeletePartner) Name() string            { return "partner.delete_partner" }
func (AddStockLoad) Name() string             { return "inventory.add_stock_load" }
func (UpdateStockLoad) Name() string          { return "inventory.update_stock_load" }
func (DeleteStockLoad) Name() string          { return "inventory.delete_stock_load" }
func (AddProduction) Name() string            { return "inventory.add_production" }
func (DeleteProduction) Name() string         { return "inventory.delete_production" }
func (CompleteMaceration) Name() string       { return "inventory.complete_maceration" }
func (AddSale) Name() string                  { return "trade.add_sale" }
func (DeleteSale) Name() string               { return "trade.delete_sale" }
func (CollectSale) Name() string              { return "trade.collect_sale" }
func (BulkCollectSales) Name() string         { return "trade.bulk_collect_sales" }
func (AddQuote) Name() string                 { return "trade.add_quote" }
func (UpdateQuote) Name() string              { return "trade.update_quote" }
func (DeleteQuote) Name() string              { return "trade.delete_quote" }
func (CollectQuote) Name() string             { return "trade.collect_quote" }
func (ConvertQuoteToSale) Name() string       { return "trade.convert_quote" }
func (AddOrder) Name() string                 { return "trade.add_order" }
func (UpdateOrder) Name() string              { return "trade.update_order" }
func (DeleteOrder) Name() string              { return "trade.delete_order" }
func (SetOrderItemPrepared) Name() string     { return "trade.set_order_item_prepared" }
func (ConvertOrderToSale) Name() string       { return "trade.convert_order" }
func (CancelOrder) Name() string              { return "trade.cancel_order" }
func (AddExpense) Name() string               { return "finance.add_expense" }
func (UpdateExpense) Name() string            { return "finance.update_expense" }
func (DeleteExpense) Name() string            { return "finance.delete_expense" }
func (AddLedgerEntry) Name() string           { return "ledger.add_entry" }
func (TransferBetweenPartners) Name() string  { return "ledger.transfer" }
func (ArchivePartnerSettlement) Name() string { return "ledger.archive_settlement" }
func (AttachSettlementPayment) Name() string  { return "ledger.attach_settlement_payment" }
func (UpdateSettlementPayment) Name() string  { return "ledger.update_settlement_payment" }
func (DeleteSettlementPayment) Name() string  { return "ledger.delete_settlement_payment" }
func (ArchiveYear) Name() string              { return "lifecycle.archive_year" }
func (SetCurrentYear) Name() string           { return "lifecycle.set_current_year" }

func (AddProduct) isAction()               {}
func (UpdateProduct) isAction()            {}
func (DeleteProduct) isAction()            {}
func (AddVariant) isAction()               {}
func (UpdateVariant) isAction()            {}
func (DeleteVariant) isAction()            {}
func (AddCategory) isAction()              {}
func (UpdateCategory) isAction()           {}
func (DeleteCategory) isAction()           {}
func (AddCustomer) isAction()              {}
func (UpdateCustomer) isAction()           {}
func (DeleteCustomer) isAction()           {}
func (AddSupplier) isAction()              {}
func (UpdateSupplier) isAction()           {}
func (DeleteSupplier) isAction()           {}
func (AddAgent) isAction()                 {}
func (UpdateAgent) isAction()              {}
func (DeleteAgent) isAction()              {}
func (AddPartner) isAction()               {}
func (DeletePartner) isAction()            {}
func (AddStockLoad) isAction()             {}
func (UpdateStockLoad) isAction()          {}
func (DeleteStockLoad) isAction()          {}
func (AddProduction) isAction()            {}
func (DeleteProduction) isAction()         {}
func (CompleteMaceration) isAction()       {}
func (AddSale) isAction()                  {}
func (DeleteSale) isAction()               {}
func (CollectSale) isAction()              {}
func (BulkCollectSales) isAction()         {}
func (AddQuote) isAction()                 {}
func (UpdateQuote) isAction()              {}
func (DeleteQuote) isAction()              {}
func (CollectQuote) isAction()             {}
func (ConvertQuoteToSale) isAction()       {}
func (AddOrder) isAction()                 {}
func (UpdateOrder) isAction()              {}
func (DeleteOrder) isAction()              {}
func (SetOrderItemPrepared) isAction()     {}
func (ConvertOrderToSale) isAction()       {}
func (CancelOrder) isAction()              {}
func (AddExpense) isAction()               {}
func (UpdateExpense) isAction()            {}
func (DeleteExpense) isAction()            {}
func (AddLedgerEntry) isAction()           {}
func (TransferBetweenPartners) isAction()  {}
func (ArchivePartnerSettlement) isAction() {}
func (AttachSettlementPayment) isAction()  {}
func (UpdateSettlementPayment) isAction()  {}
func (DeleteSettlementPayment) isAction()  {}
func (ArchiveYear) isAction()              {}
func (SetCurrentYear) isAction()           {}
