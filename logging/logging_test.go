package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel("warning"))
	assert.Equal(t, InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, "ERROR", ErrorLevel.String())
}

func TestWriterLoggerFormatsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, DebugLevel).WithFields(Fields{"component": "search"})

	logger.Info("trying", Fields{"dt": 0.5, "q": 0.25})
	assert.Equal(t, "[INFO] trying component=search dt=0.5 q=0.25\n", buf.String())

	buf.Reset()
	logger.Error(errors.New("boom"), "root solve")
	assert.Equal(t, "[ERROR] root solve: boom component=search\n", buf.String())
}

func TestWriterLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, InfoLevel)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(DebugLevel)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, InfoLevel)

	ctx := ContextWithFields(context.Background(), Fields{"run": 7})
	logger.WithContext(ctx).Info("hello")
	assert.Equal(t, "[INFO] hello run=7\n", buf.String())

	_, ok := FieldsFromContext(context.Background())
	assert.False(t, ok)
}

func TestZapLogger(t *testing.T) {
	core, obs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.WithFields(Fields{"component": "knots"}).Info("found", Fields{"dt": 0.125})
	entries := obs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "found", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "knots", ctx["component"])
	assert.Equal(t, 0.125, ctx["dt"])

	logger.SetLevel(WarnLevel)
	logger.Info("filtered")
	logger.Error(errors.New("bad"), "failed")
	entries = obs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "bad", entries[1].ContextMap()["error"])
}

func TestSetGlobalLoggerNil(t *testing.T) {
	previous := GetGlobalLogger()
	defer SetGlobalLogger(previous)

	SetGlobalLogger(nil)
	_, ok := GetGlobalLogger().(*NoOpLogger)
	assert.True(t, ok)
}
