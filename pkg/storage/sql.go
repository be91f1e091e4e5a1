package storage

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raykavin/strategycore/pkg/core"
)

// DecisionRecord is the audit-log row persisted for every StrategyOutput
// the engine emits, one row per (pair, candle). It is a read path only:
// nothing the engine decides is ever read back out of the journal to
// influence a later ProcessCandle call.
type DecisionRecord struct {
	ID         uint `gorm:"primaryKey"`
	Pair       string
	CandleTime time.Time
	Signal     string
	Reason     string

	Side       string
	Quantity   float64
	Leverage   int
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64

	CreatedAt time.Time
}

// DecisionFilter narrows the rows returned by Decisions.
type DecisionFilter func(DecisionRecord) bool

// ForPair filters a journal query down to one instrument.
func ForPair(pair string) DecisionFilter {
	return func(r DecisionRecord) bool { return r.Pair == pair }
}

// SignalIs filters a journal query down to one Signal value.
func SignalIs(signal core.Signal) DecisionFilter {
	return func(r DecisionRecord) bool { return r.Signal == string(signal) }
}

// SQLJournal persists a DecisionRecord for every decision the engine
// emits, via GORM. FromSQL accepts any caller-supplied dialect;
// FromSQLite is the one constructor bound to a specific driver.
type SQLJournal struct {
	db *gorm.DB
}

// FromSQLite opens a SQLJournal backed by a SQLite file at dsn, the
// journal every `run` invocation opens when started with --journal-dsn.
func FromSQLite(dsn string, opts ...gorm.Option) (*SQLJournal, error) {
	return FromSQL(sqlite.Open(dsn), opts...)
}

// FromSQL opens a SQLJournal against dialect, migrating the
// DecisionRecord table if it does not already exist.
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (*SQLJournal, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&DecisionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLJournal{db: db}, nil
}

// Record appends one decision to the journal.
func (j *SQLJournal) Record(pair string, candleTime time.Time, out core.StrategyOutput) error {
	rec := DecisionRecord{
		Pair:       pair,
		CandleTime: candleTime,
		Signal:     string(out.Signal),
		Reason:     string(out.Reason),
	}
	if out.ProposedPosition != nil {
		p := out.ProposedPosition
		rec.Side = string(p.Side)
		rec.Quantity = p.Quantity
		rec.Leverage = p.Leverage
		rec.EntryPrice = p.EntryPrice
		rec.StopLoss = p.StopLoss
		rec.TakeProfit = p.TakeProfit
	}

	result := j.db.Create(&rec)
	if result.Error != nil {
		return fmt.Errorf("failed to record decision: %w", result.Error)
	}
	return nil
}

// Decisions retrieves journaled decisions matching every filter.
func (j *SQLJournal) Decisions(filters ...DecisionFilter) ([]DecisionRecord, error) {
	var records []DecisionRecord

	result := j.db.Find(&records)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to fetch decisions: %w", result.Error)
	}

	filtered := lo.Filter(records, func(r DecisionRecord, _ int) bool {
		for _, filter := range filters {
			if !filter(r) {
				return false
			}
		}
		return true
	})

	return filtered, nil
}

// Close closes the underlying database connection.
func (j *SQLJournal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// WithTransaction executes fn within a database transaction.
func (j *SQLJournal) WithTransaction(fn func(tx *gorm.DB) error) error {
	return j.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}
