package persistence

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileRecorder writes one JSON line per turn into <base_dir>/<run_id>.jsonl.
// Suitable for single-node runs where no database is available.
type FileRecorder struct {
	baseDir string
	mu      sync.Mutex
	closed  bool
}

// NewFileRecorder creates the base directory and returns the recorder
func NewFileRecorder(config StoreConfig) (*FileRecorder, error) {
	if config.BaseDir == "" {
		return nil, fmt.Errorf("file recorder: base_dir not configured")
	}
	if err := os.MkdirAll(config.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create turn directory: %w", err)
	}
	return &FileRecorder{baseDir: config.BaseDir}, nil
}

func (s *FileRecorder) runPath(runID string) string {
	return filepath.Join(s.baseDir, filepath.Base(runID)+".jsonl")
}

// Close closes the store
func (s *FileRecorder) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ping checks that the base directory is still there
func (s *FileRecorder) Ping(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrStoreClosed
	}
	_, err := os.Stat(s.baseDir)
	return err
}

// Record appends the turn to its run file
func (s *FileRecorder) Record(ctx context.Context, rec *TurnRecord) error {
	if err := prepare(rec); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	f, err := os.OpenFile(s.runPath(rec.RunID), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open run file: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("failed to write turn: %w", err)
	}
	return f.Close()
}

// Turns reads a run file back
func (s *FileRecorder) Turns(ctx context.Context, runID string) ([]*TurnRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	f, err := os.Open(s.runPath(runID))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []*TurnRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var rec TurnRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("corrupt line in %s: %w", runID, err)
		}
		out = append(out, &rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}
