package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/essenza/backend/internal/application/engine"
)

// snapshotRow is the append-only snapshot record. The whole state tree is
// stored as one JSON payload per save; the row id orders snapshots.
type snapshotRow struct {
	ID          uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"index"`
	CurrentYear int
	Payload     []byte
}

// TableName sets the table name for snapshot rows
func (snapshotRow) TableName() string {
	return "state_snapshots"
}

// SnapshotStore persists state snapshots in a local sqlite database and
// implements engine.Saver. Every save appends a row; old rows beyond the
// retention count are pruned on the same call.
type SnapshotStore struct {
	db   *gorm.DB
	keep int
}

// OpenSnapshotStore opens or creates the sqlite database at path. keep is
// the number of most recent snapshots retained; values below 1 keep only
// the latest.
func OpenSnapshotStore(path string, keep int) (*SnapshotStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot schema: %w", err)
	}
	if keep < 1 {
		keep = 1
	}
	return &SnapshotStore{db: db, keep: keep}, nil
}

// SaveSnapshot appends a snapshot of the given state and prunes rows beyond
// the retention count.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, state *engine.State) error {
	payload, err := MarshalState(state)
	if err != nil {
		return err
	}
	row := snapshotRow{
		CreatedAt:   time.Now(),
		CurrentYear: state.CurrentYear,
		Payload:     payload,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return s.prune(ctx)
}

// LoadLatest returns the most recent snapshot, or ok=false when the store
// is empty.
func (s *SnapshotStore) LoadLatest(ctx context.Context) (*engine.State, bool, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	state, err := UnmarshalState(row.Payload, row.CurrentYear)
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}

// prune deletes every snapshot older than the newest keep rows
func (s *SnapshotStore) prune(ctx context.Context) error {
	var cutoff snapshotRow
	err := s.db.WithContext(ctx).Order("id DESC").Offset(s.keep - 1).First(&cutoff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("id < ?", cutoff.ID).Delete(&snapshotRow{}).Error; err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Close releases the underlying database handle
func (s *SnapshotStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
