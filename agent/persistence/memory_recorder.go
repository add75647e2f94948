package persistence

import (
	"context"
	"sort"
	"sync"
)

// MemoryRecorder 是 Recorder 的内存实现。
// 适合测试与进程内查看，重启后数据丢失。
type MemoryRecorder struct {
	runs   map[string][]*TurnRecord // runID -> turns
	mu     sync.RWMutex
	closed bool
}

// NewMemoryRecorder 创建内存录制器
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{runs: make(map[string][]*TurnRecord)}
}

// Close 关闭录制器
func (s *MemoryRecorder) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ping 检查录制器是否可用
func (s *MemoryRecorder) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Record 保存一条轮次记录（存副本）
func (s *MemoryRecorder) Record(ctx context.Context, rec *TurnRecord) error {
	if err := prepare(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	cp := *rec
	s.runs[rec.RunID] = append(s.runs[rec.RunID], &cp)
	return nil
}

// Turns 返回某次运行的全部轮次，按 Seq 排序
func (s *MemoryRecorder) Turns(ctx context.Context, runID string) ([]*TurnRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	stored, ok := s.runs[runID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]*TurnRecord, len(stored))
	for i, r := range stored {
		cp := *r
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// Runs 返回已记录的运行 ID
func (s *MemoryRecorder) Runs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
