package persistence

import (
	"context"
	"fmt"

	"github.com/BaSui01/roundtable/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SQLRecorder stores turns in the dialogue_turns table through gorm.
type SQLRecorder struct {
	pool       *database.PoolManager
	maxRetries int
	logger     *zap.Logger
}

// NewSQLRecorder opens the configured database and migrates the turn table
func NewSQLRecorder(config StoreConfig, logger *zap.Logger) (*SQLRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := database.Open(config.SQL.Driver, config.SQL.DSN, config.SQL.Pool, logger)
	if err != nil {
		return nil, err
	}
	rec, err := NewSQLRecorderWithPool(pool, config.SQL.MaxRetries, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return rec, nil
}

// NewSQLRecorderWithPool wraps an existing pool
func NewSQLRecorderWithPool(pool *database.PoolManager, maxRetries int, logger *zap.Logger) (*SQLRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := pool.DB().AutoMigrate(&TurnRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate dialogue_turns: %w", err)
	}
	return &SQLRecorder{
		pool:       pool,
		maxRetries: maxRetries,
		logger:     logger.With(zap.String("component", "sql_recorder")),
	}, nil
}

// Close closes the underlying pool
func (s *SQLRecorder) Close() error { return s.pool.Close() }

// Ping checks the database connection
func (s *SQLRecorder) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Record inserts a turn inside a retried transaction
func (s *SQLRecorder) Record(ctx context.Context, rec *TurnRecord) error {
	if err := prepare(rec); err != nil {
		return err
	}
	err := s.pool.WithTransactionRetry(ctx, s.maxRetries, func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	if err != nil {
		s.logger.Warn("failed to record turn",
			zap.String("run_id", rec.RunID),
			zap.Int("seq", rec.Seq),
			zap.Error(err),
		)
		return fmt.Errorf("record turn: %w", err)
	}
	return nil
}

// Turns returns a run's turns ordered by seq
func (s *SQLRecorder) Turns(ctx context.Context, runID string) ([]*TurnRecord, error) {
	var out []*TurnRecord
	err := s.pool.DB().WithContext(ctx).
		Where("run_id = ?", runID).
		Order("seq ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}
