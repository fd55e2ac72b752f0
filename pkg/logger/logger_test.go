package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openlabollioules/tools/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("before init", F("k", "v"))
	})
}

func TestInitWritesJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	config.Set("log.filename", file)
	config.Set("log.level", "debug")

	Init()
	Debug("hello", F("request_id", "abc"))
	_ = Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"request_id":"abc"`)
	assert.Contains(t, string(data), `"level":"DEBUG"`)
}
