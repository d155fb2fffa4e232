package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldsCarryModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	l.Info("Router", "routed", map[string]interface{}{"handler": "fallback"})
	l.Error("Orchestrator", "failed", map[string]interface{}{"error": errors.New("boom")})
	l.Debug("Router", "nil details", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Router", entries[0].ContextMap()["module"])
	assert.Contains(t, entries[1].ContextMap(), "error_ref")
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.NotNil(t, entries[2].ContextMap()["details"])
}

func TestIsolatedLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := NewIsolatedLogger(path)

	l.Info("Audit", "turn completed", map[string]interface{}{"intent": "advice"})
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"message":"turn completed"`))
	assert.True(t, strings.Contains(string(data), `"module":"Audit"`))
}
