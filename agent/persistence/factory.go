package persistence

import (
	"fmt"

	"go.uber.org/zap"
)

// NewRecorder creates a Recorder based on the configuration.
// An empty or "none" type yields a NopRecorder.
func NewRecorder(config StoreConfig, logger *zap.Logger) (Recorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		rec Recorder
		err error
	)
	switch config.Type {
	case "", StoreTypeNone:
		return NopRecorder{}, nil
	case StoreTypeMemory:
		rec = NewMemoryRecorder()
	case StoreTypeFile:
		rec, err = NewFileRecorder(config)
	case StoreTypeSQL:
		rec, err = NewSQLRecorder(config, logger)
	case StoreTypeRedis:
		rec, err = NewRedisRecorder(config)
	default:
		return nil, fmt.Errorf("unsupported recorder type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("turn recorder ready", zap.String("type", string(config.Type)))
	return rec, nil
}
