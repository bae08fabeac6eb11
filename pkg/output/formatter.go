// Package output renders drive usage log files for the terminal.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/danpilch/drivestat/pkg/record"
)

const defaultTrendWidth = 40

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	trendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

// Formatter renders log file rows as a styled table with a free space trend per volume.
type Formatter struct {
	writer     io.Writer
	trendWidth int
}

// NewFormatter creates a new formatter.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer:     writer,
		trendWidth: defaultTrendWidth,
	}
}

// Render outputs rows, header first, under title.
func (f *Formatter) Render(title string, rows []record.Record) error {
	fmt.Fprintln(f.writer, titleStyle.Render(title))
	if len(rows) < 2 {
		fmt.Fprintln(f.writer, dimStyle.Render("no samples"))
		return nil
	}

	header, samples := rows[0], rows[1:]
	body := make([][]string, len(samples))
	for i, s := range samples {
		cells := make([]string, len(header))
		for col := range cells {
			if col >= len(s) {
				continue
			}
			cells[col] = s[col]
			if s[col] == record.Unavailable {
				cells[col] = dimStyle.Render("n/a")
			}
		}
		body[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(header...).
		Rows(body...)

	fmt.Fprintln(f.writer, t.Render())
	fmt.Fprintln(f.writer)

	for col := 1; col+1 < len(header); col += 2 {
		f.renderTrend(header[col+1], column(samples, col), column(samples, col+1))
	}
	return nil
}

// renderTrend prints the free space sparkline and the latest usage of one volume.
func (f *Formatter) renderTrend(label string, totals, frees []float64) {
	if len(frees) == 0 {
		fmt.Fprintf(f.writer, "%s %s\n", labelStyle.Render(label), dimStyle.Render("no data"))
		return
	}
	if len(frees) > f.trendWidth {
		frees = frees[len(frees)-f.trendWidth:]
	}

	latestFree := frees[len(frees)-1]
	summary := fmt.Sprintf("%.2f GiB free", latestFree)
	if n := len(totals); n > 0 && totals[n-1] > 0 {
		used := (totals[n-1] - latestFree) / totals[n-1] * 100
		summary = fmt.Sprintf("%.2f / %.2f GiB free (%.1f%% used)", latestFree, totals[n-1], used)
	}

	fmt.Fprintf(f.writer, "%s %s %s\n",
		labelStyle.Render(label),
		trendStyle.Render(renderSparkline(frees)),
		summary)
}

// column returns the numeric values of col, skipping unavailable and malformed cells.
func column(samples []record.Record, col int) []float64 {
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		if col >= len(s) {
			continue
		}
		cell := strings.TrimSpace(s[col])
		if cell == record.Unavailable {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}
