package debug_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danpilch/drivestat/pkg/debug"
	"github.com/danpilch/drivestat/pkg/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{}

func (stubProvider) Stat(id string) (volume.Info, error) {
	switch id {
	case "C":
		return volume.Info{ID: id, Ready: true, Fixed: true, TotalBytes: 1 << 30}, nil
	case "E":
		return volume.Info{ID: id, Ready: true}, nil
	}
	return volume.Info{ID: id}, errors.New("drive not found")
}

func TestTimedProvider(t *testing.T) {
	p := debug.NewTimedProvider(stubProvider{})

	info, err := p.Stat("C")
	require.NoError(t, err)
	assert.True(t, info.Usable())
	_, err = p.Stat("Z")
	assert.Error(t, err)
	_, _ = p.Stat("E")

	require.Len(t, p.Timings, 3)
	assert.Equal(t, "C", p.Timings[0].ID)
	assert.True(t, p.Timings[0].Usable)
	assert.Error(t, p.Timings[1].Err)
	assert.False(t, p.Timings[2].Usable)
	assert.NoError(t, p.Timings[2].Err)
}

func TestTimingReport(t *testing.T) {
	p := debug.NewTimedProvider(stubProvider{})
	_, _ = p.Stat("C")
	_, _ = p.Stat("Z")

	var buf bytes.Buffer
	debug.TimingReport(&buf, p.Timings)

	out := buf.String()
	assert.Contains(t, out, "Volume Query Timing")
	assert.Contains(t, out, "drive not found")
	assert.Contains(t, out, "TOTAL")
}
