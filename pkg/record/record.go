// Package record builds the CSV header and data rows of a drive usage log.
package record

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/danpilch/drivestat/pkg/volume"
)

const (
	// TimeLayout formats the timestamp column as YYYY/MM/DD HH:MM:SS.
	TimeLayout = "2006/01/02 15:04:05"

	// Unavailable marks a capacity field of a volume that could not be sampled.
	Unavailable = "-1"

	timestampLabel = "日時"
	totalSuffix    = "容量"
	freeSuffix     = "空き容量"

	gib = 1 << 30
)

// Record is one CSV row as an ordered list of fields.
type Record []string

// String joins the fields with commas.
func (r Record) String() string {
	return strings.Join(r, ",")
}

// Header returns the column labels for a volume set: the timestamp label,
// then a total and a free capacity label per identifier in argument order.
func Header(ids []string) Record {
	fields := make(Record, 0, 1+2*len(ids))
	fields = append(fields, timestampLabel)
	for _, id := range ids {
		fields = append(fields, id+totalSuffix, id+freeSuffix)
	}
	return fields
}

// Line samples every identifier through p and returns the data row for now.
func Line(now time.Time, ids []string, p volume.Provider) Record {
	fields := make(Record, 0, 1+2*len(ids))
	fields = append(fields, now.Format(TimeLayout))
	for _, id := range ids {
		fields = append(fields, Pair(p.Stat(id))...)
	}
	return fields
}

// Pair returns the total and free capacity fields for one volume query.
// Query errors and volumes that are not ready or not fixed yield "-1,-1".
func Pair(info volume.Info, err error) []string {
	if err != nil || !info.Usable() {
		return []string{Unavailable, Unavailable}
	}
	return []string{FormatGiB(info.TotalBytes), FormatGiB(info.FreeBytes)}
}

// FormatGiB converts bytes to GiB rounded half away from zero to two decimals.
func FormatGiB(bytes uint64) string {
	v := math.Round(float64(bytes)/gib*100) / 100
	return strconv.FormatFloat(v, 'f', 2, 64)
}
