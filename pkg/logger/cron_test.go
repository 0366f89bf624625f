package logger

import (
	"errors"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCronLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var l cron.Logger = Cron(zap.New(core))

	l.Info("skip", "entry", 1)
	l.Error(errors.New("boom"), "panic", "job", "sweep")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "cron", entries[0].LoggerName)
	assert.Equal(t, "skip", entries[0].Message)
	assert.EqualValues(t, 1, entries[0].ContextMap()["entry"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "sweep", entries[1].ContextMap()["job"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}
