package engine

import (
	"github.com/essenza/backend/internal/domain/finance"
	"github.com/essenza/backend/internal/domain/shared"
)

func (e *Engine) addExpense(s *State, a AddExpense) error {
	y := s.Current()
	expense := a.Expense.Clone()
	if expense.ID == "" {
		expense.ID = shared.NewID()
	}
	expense.Total = finance.ComputeTotal(expense.Quantity, expense.Price, expense.VATApplied)
	y.Expenses = append(y.Expenses, expense)

	if expense.PaidByPartnerID != "" {
		e.syncDocumentEntry(s, expense.ID, expense.PaidByPartnerID, expense.Total.Neg(), expense.Date,
			"Pagamento spesa: "+expense.Description)
	}
	return nil
}

func (e *Engine) updateExpense(s *State, a UpdateExpense) error {
	y := s.Current()
	for i, expense := range y.Expenses {
		if expense.ID != a.Expense.ID {
			continue
		}
		updated := a.Expense.Clone()
		updated.Total = finance.ComputeTotal(updated.Quantity, updated.Price, updated.VATApplied)
		y.Expenses[i] = updated
		e.syncDocumentEntry(s, updated.ID, updated.PaidByPartnerID, updated.Total.Neg(), updated.Date,
			"Pagamento spesa: "+updated.Description)
		return nil
	}
	return shared.Newf(shared.CodeNotFound, "Expense %s not found", a.Expense.ID)
}

func (e *Engine) deleteExpense(s *State, a DeleteExpense) error {
	y := s.Current()
	for i, expense := range y.Expenses {
		if expense.ID == a.ExpenseID {
			y.Expenses = append(y.Expenses[:i], y.Expenses[i+1:]...)
			e.removeEntriesRelatedTo(s, a.ExpenseID)
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Expense %s not found", a.ExpenseID)
}
