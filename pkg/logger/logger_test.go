package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "alpaca.log")

	require.NoError(t, Init(Config{Level: "debug", OutputFile: path, MaxSize: 1, Console: &buf}))
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	assert.Equal(t, path, GetCurrentLogFile())

	WithField("operation", "getAsset").Debug("request")
	assert.Contains(t, buf.String(), "operation=getAsset")

	WithFields(logrus.Fields{"paper": true, "status": 404}).Warn("response")
	assert.Contains(t, buf.String(), "paper=true")
	assert.Contains(t, buf.String(), "status=404")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request")

	require.NoError(t, Init(Config{Level: "bogus", Console: &buf}))
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
	assert.Empty(t, GetCurrentLogFile())
}

func TestNop(t *testing.T) {
	entry := Nop()
	entry.Error("discarded")
	assert.False(t, entry.Logger.IsLevelEnabled(logrus.DebugLevel))
}
