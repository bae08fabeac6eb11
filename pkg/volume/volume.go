// Package volume reads capacity metadata for storage volumes.
package volume

import (
	"errors"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// ErrUnsupported is returned by the system provider on platforms without a volume query.
var ErrUnsupported = errors.New("volume query not supported on this platform")

// ErrEmptyID is returned for a blank identifier, which names no volume.
var ErrEmptyID = errors.New("empty volume identifier")

// Info is the capacity metadata of one volume at sampling time.
type Info struct {
	ID         string
	Ready      bool
	Fixed      bool
	TotalBytes uint64
	FreeBytes  uint64
}

// Usable reports whether the volume is ready and is a fixed local volume.
func (i Info) Usable() bool {
	return i.Ready && i.Fixed
}

// Provider is the interface every volume metadata source must implement.
type Provider interface {
	// Stat queries one volume by its identifier (drive letter or mount path).
	Stat(id string) (Info, error)
}

// System queries the operating system for volume metadata.
type System struct {
	partitions func(all bool) ([]disk.PartitionStat, error)
}

// NewSystem creates a provider backed by the host operating system.
func NewSystem() *System {
	return &System{
		partitions: disk.Partitions,
	}
}

// blankID reports whether id names no volume. A blank id must not fall back to
// the working directory or the current drive.
func blankID(id string) bool {
	return strings.TrimSpace(id) == ""
}
