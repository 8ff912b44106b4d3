package workflows

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	temporallog "go.temporal.io/sdk/log"

	"github.com/ghuser/gardenhub/pkg/logger"
)

type bufLogger struct {
	*slog.Logger
}

func (l bufLogger) With(args ...any) logger.Logger { return bufLogger{l.Logger.With(args...)} }
func (l bufLogger) ToSlog() *slog.Logger           { return l.Logger }

func TestTemporalLogger(t *testing.T) {
	var buf bytes.Buffer
	base := bufLogger{slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	tl := newTemporalLogger(base)
	wl, ok := tl.(temporallog.WithLogger)
	require.True(t, ok)
	wl.With("workflow", "refresh_overview").Warn("activity retry", "attempt", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "temporal", entry["component"])
	assert.Equal(t, "refresh_overview", entry["workflow"])
	assert.EqualValues(t, 2, entry["attempt"])
}
