// Package debug instruments volume queries for troubleshooting slow or stuck mounts.
package debug

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/drivestat/pkg/volume"
)

var (
	debugTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	debugHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	debugDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	debugError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// VolumeTiming records the duration and outcome of one volume query.
type VolumeTiming struct {
	ID       string
	Duration time.Duration
	Usable   bool
	Err      error
}

// TimedProvider wraps a volume.Provider to record query durations.
type TimedProvider struct {
	inner   volume.Provider
	Timings []VolumeTiming
}

// NewTimedProvider wraps a provider with timing instrumentation.
func NewTimedProvider(p volume.Provider) *TimedProvider {
	return &TimedProvider{
		inner: p,
	}
}

// Stat runs the wrapped query and records its duration.
func (t *TimedProvider) Stat(id string) (volume.Info, error) {
	start := time.Now()
	info, err := t.inner.Stat(id)
	t.Timings = append(t.Timings, VolumeTiming{
		ID:       id,
		Duration: time.Since(start),
		Usable:   err == nil && info.Usable(),
		Err:      err,
	})
	return info, err
}

// TimingReport prints a styled timing summary for all recorded queries.
func TimingReport(w io.Writer, timings []VolumeTiming) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Volume Query Timing"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 40)))
	fmt.Fprintf(w, "  %s  %s\n",
		debugHeader.Render("VOLUME             "),
		debugHeader.Render("DURATION    "))
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 40)))

	var total time.Duration
	for _, t := range timings {
		note := ""
		switch {
		case t.Err != nil:
			note = debugError.Render(t.Err.Error())
		case !t.Usable:
			note = debugDim.Render("not a fixed volume")
		}
		fmt.Fprintf(w, "  %-20s %-12v %s\n", t.ID, t.Duration, note)
		total += t.Duration
	}
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 40)))
	fmt.Fprintf(w, "  %-20s %v\n",
		lipgloss.NewStyle().Bold(true).Render("TOTAL"), total)
}
