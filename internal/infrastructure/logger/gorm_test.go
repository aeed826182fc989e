package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), recorded
}

func traceQuery(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) {
		return sql, rows
	}
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("logs a failed query at error", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Error)

		log.Trace(context.Background(), time.Now(),
			traceQuery("SELECT * FROM stocks", 0), errors.New("connection reset"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "query failed", logs[0].Message)
		assert.Equal(t, "SELECT * FROM stocks", logs[0].ContextMap()["sql"])
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Error)

		log.Trace(context.Background(), time.Now(),
			traceQuery("SELECT * FROM stocks WHERE id = $1", 0), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("warns about slow queries", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Warn)

		begin := time.Now().Add(-time.Second)
		log.Trace(context.Background(), begin, traceQuery("SELECT * FROM stock_ledger", 5000), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "slow query", logs[0].Message)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("logs ordinary queries at debug when info is on", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Info)

		log.Trace(context.Background(), time.Now(), traceQuery("SELECT 1", 1), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "query", logs[0].Message)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Silent)

		log.Trace(context.Background(), time.Now(), traceQuery("SELECT 1", 1), nil)

		assert.Empty(t, recorded.All())
	})

	t.Run("tags queries with the request ID from context", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Info)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-42")

		log.Trace(ctx, time.Now(), traceQuery("SELECT 1", 1), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "req-42", logs[0].ContextMap()["request_id"])
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	log, _ := newObservedGormLogger(gormlogger.Info)

	quieter := log.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, log.level)
	assert.Equal(t, gormlogger.Warn, quieter.(*GormLogger).level)
}

func TestGormLogger_Levels(t *testing.T) {
	t.Run("info and warn pass through at matching levels", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Info)

		log.Info(context.Background(), "migrated %d tables", 9)
		log.Warn(context.Background(), "pool nearly exhausted")
		log.Error(context.Background(), "replica lost")

		assert.Len(t, recorded.All(), 3)
	})

	t.Run("silent suppresses everything", func(t *testing.T) {
		log, recorded := newObservedGormLogger(gormlogger.Silent)

		log.Info(context.Background(), "migrated")
		log.Warn(context.Background(), "warned")
		log.Error(context.Background(), "failed")

		assert.Empty(t, recorded.All())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
