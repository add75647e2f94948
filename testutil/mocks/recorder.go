// =============================================================================
// 🧠 MockRecorder - 轮次录制器模拟实现
// =============================================================================
// 用于测试的录制器模拟，支持错误注入与调用统计
//
// 使用方法:
//
//	rec := mocks.NewMockRecorder()
//	session.WithRecorder(rec)
//	turns := rec.All()
// =============================================================================
package mocks

import (
	"context"
	"sync"

	"github.com/BaSui01/roundtable/agent/persistence"
)

// MockRecorder 是 persistence.Recorder 的模拟实现
type MockRecorder struct {
	mu sync.Mutex

	turns []persistence.TurnRecord

	// 错误注入
	recordErr error

	// 调用记录
	recordCalls int
	closed      bool
}

// NewMockRecorder 创建新的 MockRecorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

// WithRecordError 让每次 Record 返回 err
func (m *MockRecorder) WithRecordError(err error) *MockRecorder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErr = err
	return m
}

// Close 标记关闭
func (m *MockRecorder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Ping 始终健康
func (m *MockRecorder) Ping(context.Context) error { return nil }

// Record 保存轮次副本
func (m *MockRecorder) Record(_ context.Context, rec *persistence.TurnRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordCalls++
	if m.recordErr != nil {
		return m.recordErr
	}
	if rec == nil {
		return persistence.ErrInvalidInput
	}
	m.turns = append(m.turns, *rec)
	return nil
}

// Turns 返回某次运行的轮次
func (m *MockRecorder) Turns(_ context.Context, runID string) ([]*persistence.TurnRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*persistence.TurnRecord
	for i := range m.turns {
		if m.turns[i].RunID == runID {
			cp := m.turns[i]
			out = append(out, &cp)
		}
	}
	if len(out) == 0 {
		return nil, persistence.ErrNotFound
	}
	return out, nil
}

// All 返回全部已保存轮次
func (m *MockRecorder) All() []persistence.TurnRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]persistence.TurnRecord(nil), m.turns...)
}

// RecordCalls 返回 Record 调用次数（含失败）
func (m *MockRecorder) RecordCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordCalls
}

// Closed 是否已关闭
func (m *MockRecorder) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
