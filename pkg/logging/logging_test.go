package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danpilch/drivestat/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.New(&buf, "info")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.WithField("volume", "C").Info("sampled")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "volume=C")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestAddFileHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drivestat.log")
	logger, err := logging.New(&bytes.Buffer{}, "debug")
	require.NoError(t, err)

	require.NoError(t, logging.AddFileHook(logger, path))
	logger.WithField("volume", "Z").Debug("volume unavailable")

	data, err := os.ReadFile(path + "." + time.Now().Format("200601"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "volume unavailable")
}
