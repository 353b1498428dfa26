package logginghelper_test

import (
	"errors"
	"testing"

	logginghelper "github.com/Egor213/LogiScan/internal/controller/common/logging"
	"github.com/Egor213/LogiScan/internal/domain"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	a := domain.Analysis{Stats: domain.NewAggregateStats(), Security: domain.NewSecurityState()}
	a.Stats.TotalRequests = 7
	a.Lines.Malformed = 2

	logginghelper.LogReceived("10.0.0.1", "json", 128)
	logginghelper.LogAnalyzed("10.0.0.1", a)
	logginghelper.LogError("10.0.0.1", errors.New("boom"))

	entries := hook.AllEntries()
	require.Len(t, entries, 3)

	assert.Equal(t, log.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(128), entries[0].Data["size"])

	assert.Equal(t, 7, entries[1].Data["requests"])
	assert.Equal(t, 2, entries[1].Data["skipped"])

	assert.Equal(t, log.ErrorLevel, entries[2].Level)
	assert.Equal(t, "10.0.0.1", entries[2].Data["remote_ip"])
}
