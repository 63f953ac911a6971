package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging_FileOutput(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envLogDir, dir)
	t.Setenv(envLogStderr, "")
	t.Setenv(envLogLevel, "debug")

	ctx, cleanup, err := Logging(context.Background())
	require.NoError(t, err)

	zerolog.Ctx(ctx).Debug().Msg("hello from the test")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Equal(t, zerolog.DebugLevel, Logger().GetLevel())
}

func TestLogging_BadLevel(t *testing.T) {
	t.Setenv(envLogDir, t.TempDir())
	t.Setenv(envLogLevel, "chatty")

	_, _, err := Logging(context.Background())
	assert.Error(t, err)
}
