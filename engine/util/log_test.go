package util

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogCategories(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogFoldDebug("below the level")
	LogFoldInfo("fold checked")
	LogSystemError("command failed", zap.Error(errors.New("no such level")))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "fold", entries[0].LoggerName)
	assert.Equal(t, "system", entries[1].LoggerName)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "no such level", entries[1].ContextMap()["error"])
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("debug", "json", false)
	assert.NoError(t, err)
	_, err = NewLogger("loud", "console", false)
	assert.Error(t, err)
	_, err = NewLogger("info", "xml", false)
	assert.Error(t, err)
}
