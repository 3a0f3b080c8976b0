package engine

import (
	"github.com/essenza/backend/internal/domain/shared"
)

// archiveYear seals the active year by creating the next year's empty data
// and switching the pointer. Archiving is irreversible; years are never
// deleted.
func (e *Engine) archiveYear(s *State, _ ArchiveYear) error {
	next := s.CurrentYear + 1
	if _, exists := s.Years[next]; exists {
		return shared.Newf(shared.CodeConflictingState, "Year %d already exists", next)
	}
	s.Years[next] = NewYearData()
	s.CurrentYear = next
	return nil
}

// setCurrentYear switches the active year pointer. Unlike archiveYear it
// creates nothing: the target year must already exist.
func (e *Engine) setCurrentYear(s *State, a SetCurrentYear) error {
	if _, exists := s.Years[a.Year]; !exists {
		return shared.Newf(shared.CodeNotFound, "Year %d does not exist", a.Year)
	}
	s.CurrentYear = a.Year
	return nil
}
