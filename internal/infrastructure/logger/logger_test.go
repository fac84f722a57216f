package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
)

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, flush, err := New(config.LogConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("book created", zap.Uint("bookId", 7))
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug级别不应输出")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "book created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(7), entry["bookId"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, entry, "caller")
}

func TestNew_ConsoleWithCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, flush, err := New(config.LogConfig{Level: "debug", Format: "console", Output: path, EnableCaller: true})
	require.NoError(t, err)
	logger.Debug("cart priced")
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cart priced")
	assert.Contains(t, string(data), "logger_test.go")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "verbose"})
	assert.Error(t, err)

	_, _, err = New(config.LogConfig{Output: filepath.Join(t.TempDir(), "missing", "app.log")})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	logger, flush, err := New(config.LogConfig{})
	require.NoError(t, err)
	defer flush()
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
