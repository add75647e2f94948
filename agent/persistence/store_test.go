package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/BaSui01/roundtable/internal/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sampleRun 返回一次辩论的前几条轮次，Seq 故意乱序写入
func sampleRun(runID string) []*TurnRecord {
	return []*TurnRecord{
		{RunID: runID, Scenario: "debate", Seq: 1, Round: 1, Speaker: "Kamala Harris", Role: "candidate", Text: "We will not go back."},
		{RunID: runID, Scenario: "debate", Seq: 0, Round: 1, Speaker: "Bret Baier", Role: "moderator", Prompt: "Create a new debate question.", Text: "What is your plan for the economy?"},
		{RunID: runID, Scenario: "debate", Seq: 2, Round: 1, Speaker: "Donald Trump", Role: "candidate", Text: "Nobody has a better plan."},
	}
}

// exerciseRecorder 对所有后端执行同一组断言
func exerciseRecorder(t *testing.T, rec Recorder) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, rec.Ping(ctx))

	runID := uuid.New().String()
	for _, r := range sampleRun(runID) {
		require.NoError(t, rec.Record(ctx, r))
		assert.NotEmpty(t, r.ID)
		assert.False(t, r.CreatedAt.IsZero())
	}

	turns, err := rec.Turns(ctx, runID)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	for i, turn := range turns {
		assert.Equal(t, i, turn.Seq)
		assert.Equal(t, runID, turn.RunID)
	}
	assert.Equal(t, "Bret Baier", turns[0].Speaker)
	assert.Equal(t, "Create a new debate question.", turns[0].Prompt)
	assert.Equal(t, "Donald Trump", turns[2].Speaker)

	_, err = rec.Turns(ctx, "missing-run")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, rec.Record(ctx, nil), ErrInvalidInput)
	assert.ErrorIs(t, rec.Record(ctx, &TurnRecord{Text: "no run"}), ErrInvalidInput)
}

func TestMemoryRecorder(t *testing.T) {
	rec := NewMemoryRecorder()
	exerciseRecorder(t, rec)

	assert.Len(t, rec.Runs(), 1)

	require.NoError(t, rec.Close())
	assert.ErrorIs(t, rec.Ping(context.Background()), ErrStoreClosed)
	assert.ErrorIs(t, rec.Record(context.Background(), &TurnRecord{RunID: "x"}), ErrStoreClosed)
}

func TestMemoryRecorder_StoresCopies(t *testing.T) {
	rec := NewMemoryRecorder()
	turn := &TurnRecord{RunID: "r", Speaker: "Groucho Marx", Text: "original"}
	require.NoError(t, rec.Record(context.Background(), turn))
	turn.Text = "mutated"

	turns, err := rec.Turns(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, "original", turns[0].Text)
}

func TestFileRecorder(t *testing.T) {
	cfg := DefaultStoreConfig()
	cfg.BaseDir = t.TempDir()

	rec, err := NewFileRecorder(cfg)
	require.NoError(t, err)
	exerciseRecorder(t, rec)

	entries, err := os.ReadDir(cfg.BaseDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, ".jsonl", filepath.Ext(entries[0].Name()))

	require.NoError(t, rec.Close())
	assert.ErrorIs(t, rec.Ping(context.Background()), ErrStoreClosed)
}

func TestFileRecorder_RequiresBaseDir(t *testing.T) {
	_, err := NewFileRecorder(StoreConfig{Type: StoreTypeFile})
	assert.Error(t, err)
}

func newSQLiteConfig(t *testing.T) StoreConfig {
	t.Helper()
	cfg := DefaultStoreConfig()
	cfg.Type = StoreTypeSQL
	cfg.SQL.Driver = database.DriverSQLite
	cfg.SQL.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	return cfg
}

func TestSQLRecorder_SQLite(t *testing.T) {
	rec, err := NewSQLRecorder(newSQLiteConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer rec.Close()

	exerciseRecorder(t, rec)
}

func TestSQLRecorder_InvalidDriver(t *testing.T) {
	cfg := newSQLiteConfig(t)
	cfg.SQL.Driver = "oracle"
	_, err := NewSQLRecorder(cfg, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func newRedisConfig(t *testing.T) (StoreConfig, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := DefaultStoreConfig()
	cfg.Type = StoreTypeRedis
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = port
	return cfg, mr
}

func TestRedisRecorder(t *testing.T) {
	cfg, mr := newRedisConfig(t)
	cfg.Redis.TTL = time.Hour

	rec, err := NewRedisRecorder(cfg)
	require.NoError(t, err)
	defer rec.Close()

	exerciseRecorder(t, rec)

	runs, err := rec.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)

	key := "roundtable:turns:run:" + runs[0]
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestRedisRecorder_ConnectFailure(t *testing.T) {
	cfg, mr := newRedisConfig(t)
	mr.Close()

	_, err := NewRedisRecorder(cfg)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestNewRecorder(t *testing.T) {
	rec, err := NewRecorder(StoreConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, NopRecorder{}, rec)
	assert.NoError(t, rec.Record(context.Background(), nil))

	rec, err = NewRecorder(StoreConfig{Type: StoreTypeMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryRecorder{}, rec)

	rec, err = NewRecorder(newSQLiteConfig(t), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SQLRecorder{}, rec)
	require.NoError(t, rec.Close())

	redisCfg, _ := newRedisConfig(t)
	rec, err = NewRecorder(redisCfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &RedisRecorder{}, rec)
	require.NoError(t, rec.Close())

	_, err = NewRecorder(StoreConfig{Type: "mongo"}, nil)
	assert.ErrorContains(t, err, "unsupported recorder type")
}

func TestStoreType_Valid(t *testing.T) {
	for _, typ := range []StoreType{"", StoreTypeNone, StoreTypeMemory, StoreTypeFile, StoreTypeSQL, StoreTypeRedis} {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, StoreType("etcd").Valid())
}
