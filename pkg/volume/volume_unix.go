//go:build linux || darwin || freebsd

package volume

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Stat queries a mount path with statfs and classifies the mount that contains it.
func (s *System) Stat(id string) (Info, error) {
	info := Info{ID: id}
	if blankID(id) {
		return info, ErrEmptyID
	}

	path, err := filepath.Abs(id)
	if err != nil {
		return info, err
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return info, fmt.Errorf("cannot statfs %s: %w", path, err)
	}

	blockSize := uint64(stat.Bsize)
	info.Ready = true
	info.TotalBytes = uint64(stat.Blocks) * blockSize
	info.FreeBytes = uint64(stat.Bfree) * blockSize

	parts, err := s.partitions(true)
	if err != nil {
		return info, fmt.Errorf("cannot list mounts: %w", err)
	}
	mount, ok := mountFor(path, parts)
	if !ok {
		return info, nil
	}

	info.Fixed = isFixedFstype(mount.Fstype) && !isRemovable(mount.Device)
	return info, nil
}
