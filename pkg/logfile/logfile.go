// Package logfile resolves, appends to and reads the monthly drive usage CSV files.
package logfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/danpilch/drivestat/pkg/record"
)

const (
	// DirName is the subdirectory of the base directory that holds the log files.
	DirName = "log"

	filePrefix  = "drive_stat_"
	fileExt     = ".csv"
	monthLayout = "2006_01"
)

// ErrNoSamples is returned when no log file exists for a volume set and month.
var ErrNoSamples = errors.New("no samples")

var unsafeChars = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// Resolver maps volume sets and months to log file paths below a base directory.
type Resolver struct {
	base string
}

// NewResolver creates a resolver rooted at base.
func NewResolver(base string) *Resolver {
	return &Resolver{base: base}
}

// Dir returns the log directory.
func (r *Resolver) Dir() string {
	return filepath.Join(r.base, DirName)
}

// EnsureDir creates the log directory and any missing parents.
func (r *Resolver) EnsureDir() (string, error) {
	dir := r.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create log directory: %w", err)
	}
	return dir, nil
}

// Path returns the log file path for ids in the month of now.
func (r *Resolver) Path(ids []string, now time.Time) string {
	return filepath.Join(r.Dir(), FileName(ids, now))
}

// FileName returns drive_stat_<id1>_..._<idN>_<YYYY>_<MM>.csv.
func FileName(ids []string, now time.Time) string {
	parts := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		parts = append(parts, unsafeChars.Replace(id))
	}
	parts = append(parts, now.Format(monthLayout))
	return filePrefix + strings.Join(parts, "_") + fileExt
}

// List returns the names of all log files in the log directory.
func (r *Resolver) List() ([]string, error) {
	entries, err := os.ReadDir(r.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || filepath.Ext(name) != fileExt {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Append writes line to path, preceded by header when the file does not exist yet.
func Append(path string, header, line record.Record) (err error) {
	exists := true
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		exists = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := newWriter(f)
	if !exists {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(line); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Read returns every row of a log file, header first.
func Read(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoSamples, filepath.Base(path))
		}
		return nil, err
	}
	defer f.Close()

	return readAll(f)
}

func readAll(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse log file: %w", err)
	}

	records := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, record.Record(row))
	}
	return records, nil
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = runtime.GOOS == "windows"
	return cw
}
