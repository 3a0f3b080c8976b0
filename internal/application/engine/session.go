package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/essenza/backend/internal/application/history"
)

// Saver is the injected durable-save capability. Saving happens after a
// transaction commits in memory; a failed save is logged and never rolls the
// transaction back, so a window of inconsistency between memory and durable
// storage is accepted.
type Saver interface {
	SaveSnapshot(ctx context.Context, state *State) error
}

// Session owns one engine, its undo history and the persistence hook. All
// dispatching is strictly sequential; the session performs the I/O the engine
// itself is not allowed to do.
type Session struct {
	engine  *Engine
	history *history.History[*State]
	saver   Saver
	logger  *zap.Logger
}

// NewSession creates a session seeded with the given state
func NewSession(initial *State, saver Saver, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		engine:  New(),
		history: history.New(initial, history.DefaultLimit),
		saver:   saver,
		logger:  logger,
	}
}

// State returns the current state
func (s *Session) State() *State {
	return s.history.Current()
}

// Dispatch applies one action. On success the new state is pushed onto the
// history and handed to the saver; rejected actions leave the history
// untouched and return the domain error.
func (s *Session) Dispatch(ctx context.Context, action Action) (*State, error) {
	next, err := s.engine.Apply(s.history.Current(), action)
	if err != nil {
		s.logger.Warn("action rejected",
			zap.String("action", action.Name()),
			zap.Error(err))
		return nil, err
	}

	s.history.Push(next)
	s.logger.Info("action applied", zap.String("action", action.Name()))
	s.persist(ctx, next)
	return next, nil
}

// Undo steps back one committed transaction. A no-op at the earliest
// retained snapshot.
func (s *Session) Undo(ctx context.Context) *State {
	state := s.history.Undo()
	s.persist(ctx, state)
	return state
}

// Redo steps forward one undone transaction. A no-op at the latest snapshot.
func (s *Session) Redo(ctx context.Context) *State {
	state := s.history.Redo()
	s.persist(ctx, state)
	return state
}

// CanUndo reports whether an undo would change state
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether a redo would change state
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Restore replaces the whole state, e.g. after a backup import. The undo
// history is reset to the restored snapshot.
func (s *Session) Restore(ctx context.Context, state *State) {
	s.history.Restore(state)
	s.logger.Info("state restored", zap.Int("current_year", state.CurrentYear))
	s.persist(ctx, state)
}

func (s *Session) persist(ctx context.Context, state *State) {
	if s.saver == nil {
		return
	}
	if err := s.saver.SaveSnapshot(ctx, state); err != nil {
		s.logger.Error("snapshot save failed", zap.Error(err))
	}
}
