package sampler_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpilch/drivestat/pkg/logfile"
	"github.com/danpilch/drivestat/pkg/sampler"
	"github.com/danpilch/drivestat/pkg/volume"
)

const gib = 1 << 30

type fakeProvider map[string]volume.Info

func (f fakeProvider) Stat(id string) (volume.Info, error) {
	info, ok := f[id]
	if !ok {
		return volume.Info{ID: id}, errors.New("the device is not ready")
	}
	return info, nil
}

func scenarioProvider() fakeProvider {
	free := 123.45 * gib
	return fakeProvider{
		"C": {ID: "C", Ready: true, Fixed: true, TotalBytes: 500 * gib, FreeBytes: uint64(free)},
		"E": {ID: "E", Ready: true, Fixed: false, TotalBytes: 16 * gib, FreeBytes: 8 * gib},
	}
}

func march15() clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local))
}

func TestRunCreatesFile(t *testing.T) {
	base := t.TempDir()
	s := sampler.New(scenarioProvider(), logfile.NewResolver(base), march15(), nil)

	path, err := s.Run([]string{"C"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "log", "drive_stat_C_2024_03.csv"), path)

	rows, err := logfile.Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "日時,C容量,C空き容量", rows[0].String())
	assert.Equal(t, "2024/03/15 10:00:00,500.00,123.45", rows[1].String())
}

func TestRunMissingVolume(t *testing.T) {
	s := sampler.New(scenarioProvider(), logfile.NewResolver(t.TempDir()), march15(), nil)

	path, err := s.Run([]string{"Z"})
	require.NoError(t, err)

	rows, err := logfile.Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024/03/15 10:00:00,-1,-1", rows[1].String())
}

func TestRunTwiceWritesOneHeader(t *testing.T) {
	clock := march15()
	s := sampler.New(scenarioProvider(), logfile.NewResolver(t.TempDir()), clock, nil)
	ids := []string{"C", "E", "Z"}

	first, err := s.Run(ids)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	second, err := s.Run(ids)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	rows, err := logfile.Read(first)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "日時,C容量,C空き容量,E容量,E空き容量,Z容量,Z空き容量", rows[0].String())
	assert.Equal(t, "2024/03/15 10:00:00,500.00,123.45,-1,-1,-1,-1", rows[1].String())
	assert.Equal(t, "2024/03/15 11:00:00,500.00,123.45,-1,-1,-1,-1", rows[2].String())
	for _, row := range rows {
		assert.Len(t, row, 7)
	}
}

func TestRunNewMonthNewFile(t *testing.T) {
	clock := march15()
	s := sampler.New(scenarioProvider(), logfile.NewResolver(t.TempDir()), clock, nil)

	march, err := s.Run([]string{"C"})
	require.NoError(t, err)
	clock.Advance(31 * 24 * time.Hour)
	april, err := s.Run([]string{"C"})
	require.NoError(t, err)

	assert.NotEqual(t, march, april)
	assert.Equal(t, "drive_stat_C_2024_04.csv", filepath.Base(april))
	rows, err := logfile.Read(april)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRunDirectoryFailure(t *testing.T) {
	base := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o644))
	s := sampler.New(scenarioProvider(), logfile.NewResolver(base), march15(), nil)

	_, err := s.Run([]string{"C"})
	assert.ErrorContains(t, err, "cannot create log directory")
}

func TestRunAppendFailure(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "log", "drive_stat_C_2024_03.csv")
	require.NoError(t, os.MkdirAll(target, 0o755))
	s := sampler.New(scenarioProvider(), logfile.NewResolver(base), march15(), nil)

	_, err := s.Run([]string{"C"})
	assert.ErrorContains(t, err, "cannot append to")
}

func TestRunLogsUnavailableVolumes(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	s := sampler.New(scenarioProvider(), logfile.NewResolver(t.TempDir()), march15(), logger)

	_, err := s.Run([]string{"C", "E", "Z"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "volume=E")
	assert.Contains(t, out, "not a fixed local volume")
	assert.Contains(t, out, "volume=Z")
	assert.Contains(t, out, "the device is not ready")
	assert.NotContains(t, out, "volume=C")
}
