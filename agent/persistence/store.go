// Package persistence records dialogue turns to a pluggable backend so a run
// can be inspected after the console output has scrolled away.
//
// Supported backends:
// - None: recording disabled (default)
// - Memory: for tests and in-process inspection
// - File: one JSON line per turn, one file per run
// - SQL: gorm over sqlite, postgres or mysql
// - Redis: one list per run
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/BaSui01/roundtable/internal/database"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrStoreClosed  = errors.New("store is closed")
	ErrInvalidInput = errors.New("invalid input")
)

// StoreType represents the type of storage backend
type StoreType string

const (
	StoreTypeNone   StoreType = "none"
	StoreTypeMemory StoreType = "memory"
	StoreTypeFile   StoreType = "file"
	StoreTypeSQL    StoreType = "sql"
	StoreTypeRedis  StoreType = "redis"
)

// Valid reports whether t names a known backend. The empty string means none.
func (t StoreType) Valid() bool {
	switch t {
	case "", StoreTypeNone, StoreTypeMemory, StoreTypeFile, StoreTypeSQL, StoreTypeRedis:
		return true
	}
	return false
}

// StoreConfig is the recorder configuration
type StoreConfig struct {
	// Type is the storage backend type
	Type StoreType `json:"type" yaml:"type" env:"TYPE"`

	// BaseDir is the directory for the file backend
	BaseDir string `json:"base_dir" yaml:"base_dir" env:"BASE_DIR"`

	// SQL configuration (only used when Type is "sql")
	SQL SQLStoreConfig `json:"sql" yaml:"sql"`

	// Redis configuration (only used when Type is "redis")
	Redis RedisStoreConfig `json:"redis" yaml:"redis"`
}

// SQLStoreConfig contains gorm-specific configuration
type SQLStoreConfig struct {
	// Driver is one of sqlite, postgres, mysql
	Driver string `json:"driver" yaml:"driver" env:"SQL_DRIVER"`

	// DSN is passed to the gorm dialector as is
	DSN string `json:"dsn" yaml:"dsn" env:"SQL_DSN"`

	// MaxRetries bounds transaction retries on deadlock / lock contention
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	Pool database.PoolConfig `json:"pool" yaml:"pool"`
}

// RedisStoreConfig contains Redis-specific configuration
type RedisStoreConfig struct {
	Host     string `json:"host" yaml:"host" env:"REDIS_HOST"`
	Port     int    `json:"port" yaml:"port" env:"REDIS_PORT"`
	Password string `json:"password" yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `json:"db" yaml:"db"`
	PoolSize int    `json:"pool_size" yaml:"pool_size"`

	// KeyPrefix is the prefix for all Redis keys
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`

	// TTL expires a run's list after the last write; 0 keeps it forever
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// DefaultStoreConfig returns the default store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Type:    StoreTypeNone,
		BaseDir: "./data/turns",
		SQL: SQLStoreConfig{
			Driver:     database.DriverSQLite,
			DSN:        "roundtable.db",
			MaxRetries: 3,
			Pool:       database.DefaultPoolConfig(),
		},
		Redis: RedisStoreConfig{
			Host:      "localhost",
			Port:      6379,
			PoolSize:  4,
			KeyPrefix: "roundtable:",
		},
	}
}

// Store is the base interface for all persistent stores
type Store interface {
	// Close closes the store and releases resources
	Close() error

	// Ping checks if the store is healthy
	Ping(ctx context.Context) error
}

// TurnRecord is one spoken line of a run.
type TurnRecord struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	RunID    string `json:"run_id" gorm:"index:idx_run_seq,priority:1;size:36;not null"`
	Scenario string `json:"scenario" gorm:"size:32"`
	// Seq is the position of the turn within its run, starting at 0.
	Seq     int    `json:"seq" gorm:"index:idx_run_seq,priority:2"`
	Round   int    `json:"round"`
	Speaker string `json:"speaker" gorm:"size:128"`
	// Role is the speaker's part in the scenario: comedian, judge, participant,
	// moderator, candidate or audience.
	Role      string    `json:"role" gorm:"size:32"`
	Prompt    string    `json:"prompt,omitempty" gorm:"type:text"`
	Text      string    `json:"text" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 固定表名
func (TurnRecord) TableName() string { return "dialogue_turns" }

// Recorder persists dialogue turns.
type Recorder interface {
	Store

	// Record stores a turn. ID and CreatedAt are filled in when empty.
	Record(ctx context.Context, rec *TurnRecord) error

	// Turns returns a run's turns ordered by Seq.
	Turns(ctx context.Context, runID string) ([]*TurnRecord, error)
}

// prepare validates rec and fills generated fields.
func prepare(rec *TurnRecord) error {
	if rec == nil || rec.RunID == "" {
		return ErrInvalidInput
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return nil
}

// NopRecorder drops every turn.
type NopRecorder struct{}

func (NopRecorder) Close() error                                         { return nil }
func (NopRecorder) Ping(context.Context) error                           { return nil }
func (NopRecorder) Record(context.Context, *TurnRecord) error            { return nil }
func (NopRecorder) Turns(context.Context, string) ([]*TurnRecord, error) { return nil, nil }
