package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestObservedRecordsStructuredFields(t *testing.T) {
	t.Parallel()

	lggr, logs := TestObserved(t, zapcore.DebugLevel)
	lggr.Named("parse").Debugw("added extension", "extension", "{urn:a}foo")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "added extension", entries[0].Message)
	assert.Equal(t, "{urn:a}foo", entries[0].ContextMap()["extension"])
	assert.Equal(t, "parse", entries[0].LoggerName)
}

func TestObservedFiltersByLevel(t *testing.T) {
	t.Parallel()

	lggr, logs := TestObserved(t, zapcore.InfoLevel)
	lggr.Debug("hidden")
	lggr.Infof("shown %d", 1)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown 1", logs.All()[0].Message)
}

func TestNewWith(t *testing.T) {
	t.Parallel()

	lggr, err := NewWith(func(cfg *zap.Config) {
		cfg.OutputPaths = []string{}
		cfg.ErrorOutputPaths = []string{}
		cfg.Level.SetLevel(zapcore.WarnLevel)
	})
	require.NoError(t, err)
	assert.Equal(t, "xmlext", lggr.Named("xmlext").Name())
}

func TestNop(t *testing.T) {
	t.Parallel()

	lggr := Nop()
	lggr.Errorw("discarded", "k", "v")
	assert.Empty(t, lggr.Name())
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	lggr := NewConsole(&sb, zapcore.DebugLevel)
	lggr.Debugw("create instance", "element", "{urn:a}group")
	require.NoError(t, lggr.Sync())

	out := sb.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "create instance")
	assert.Contains(t, out, `"element": "{urn:a}group"`)
}
