package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Egor213/LogiScan/pkg/logger"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_AuditFile(t *testing.T) {
	auditPath := filepath.Join(t.TempDir(), "audit.log")

	closer := logger.SetupLogger("debug", auditPath)
	defer log.SetOutput(os.Stderr)

	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.WithField("line", 7).Warn("Skipping malformed log entry")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Skipping malformed log entry"`)
	assert.Contains(t, string(data), `"line":7`)
}

func TestSetupLogger_BadLevelFallsBackToInfo(t *testing.T) {
	closer := logger.SetupLogger("loud", "")
	defer closer.Close()

	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
