package engine

import (
	"github.com/essenza/backend/internal/domain/shared"
)

// Engine is the transaction reducer: Apply takes the current state and one
// action and returns the next state, or a domain error and no state change.
// It performs no I/O and never mutates its input.
type Engine struct{}

// New creates a new engine
func New() *Engine {
	return &Engine{}
}

// Apply executes one action against a deep copy of the state. Handlers
// mutate the copy freely; on any rejection the copy is discarded, which makes
// every action all-or-nothing.
func (e *Engine) Apply(state *State, action Action) (*State, error) {
	if state == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "State cannot be nil")
	}
	if state.Current() == nil {
		return nil, shared.Newf(shared.CodeConflictingState, "Current year %d has no data", state.CurrentYear)
	}

	next := state.Clone()

	var err error
	switch a := action.(type) {
	case AddProduct:
		err = e.addProduct(next, a)
	case UpdateProduct:
		err = e.updateProduct(next, a)
	case DeleteProduct:
		err = e.deleteProduct(next, a)
	case AddVariant:
		err = e.addVariant(next, a)
	case UpdateVariant:
		err = e.updateVariant(next, a)
	case DeleteVariant:
		err = e.deleteVariant(next, a)
	case AddCategory:
		err = e.addCategory(next, a)
	case UpdateCategory:
		err = e.updateCategory(next, a)
	case DeleteCategory:
		err = e.deleteCategory(next, a)
	case AddCustomer:
		err = e.addCustomer(next, a)
	case UpdateCustomer:
		err = e.updateCustomer(next, a)
	case DeleteCustomer:
		err = e.deleteCustomer(next, a)
	case AddSupplier:
		err = e.addSupplier(next, a)
	case UpdateSupplier:
		err = e.updateSupplier(next, a)
	case DeleteSupplier:
		err = e.deleteSupplier(next, a)
	case AddAgent:
		err = e.addAgent(next, a)
	case UpdateAgent:
		err = e.updateAgent(next, a)
	case DeleteAgent:
		err = e.deleteAgent(next, a)
	case AddPartner:
		err = e.addPartner(next, a)
	case DeletePartner:
		err = e.deletePartner(next, a)
	case AddStockLoad:
		err = e.addStockLoad(next, a)
	case UpdateStockLoad:
		err = e.updateStockLoad(next, a)
	case DeleteStockLoad:
		err = e.deleteStockLoad(next, a)
	case AddProduction:
		err = e.addProduction(next, a)
	case DeleteProduction:
		err = e.deleteProduction(next, a)
	case CompleteMaceration:
		err = e.completeMaceration(next, a)
	case AddSale:
		err = e.addSale(next, a)
	case DeleteSale:
		err = e.deleteSale(next, a)
	case CollectSale:
		err = e.collectSale(next, a)
	case BulkCollectSales:
		err = e.bulkCollectSales(next, a)
	case AddQuote:
		err = e.addQuote(next, a)
	case UpdateQuote:
		err = e.updateQuote(next, a)
	case DeleteQuote:
		err = e.deleteQuote(next, a)
	case CollectQuote:
		err = e.collectQuote(next, a)
	case ConvertQuoteToSale:
		err = e.convertQuoteToSale(next, a)
	case AddOrder:
		err = e.addOrder(next, a)
	case UpdateOrder:
		err = e.updateOrder(next, a)
	case DeleteOrder:
		err = e.deleteOrder(next, a)
	case SetOrderItemPrepared:
		err = e.setOrderItemPrepared(next, a)
	case ConvertOrderToSale:
		err = e.convertOrderToSale(next, a)
	case CancelOrder:
		err = e.cancelOrder(next, a)
	case AddExpense:
		err = e.addExpense(next, a)
	case UpdateExpense:
		err = e.updateExpense(next, a)
	case DeleteExpense:
		err = e.deleteExpense(next, a)
	case AddLedgerEntry:
		err = e.addLedgerEntry(next, a)
	case TransferBetweenPartners:
		err = e.transferBetweenPartners(next, a)
	case ArchivePartnerSettlement:
		err = e.archivePartnerSettlement(next, a)
	case AttachSettlementPayment:
		err = e.attachSettlementPayment(next, a)
	case UpdateSettlementPayment:
		err = e.updateSettlementPayment(next, a)
	case DeleteSettlementPayment:
		err = e.deleteSettlementPayment(next, a)
	case ArchiveYear:
		err = e.archiveYear(next, a)
	case SetCurrentYear:
		err = e.setCurrentYear(next, a)
	default:
		err = shared.Newf(shared.CodeInvalidInput, "Unknown action %T", action)
	}

	if err != nil {
		return nil, err
	}
	return next, nil
}
