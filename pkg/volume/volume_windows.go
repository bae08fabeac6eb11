//go:build windows

package volume

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Stat queries a drive with the Win32 volume APIs.
func (s *System) Stat(id string) (Info, error) {
	info := Info{ID: id}
	if blankID(id) {
		return info, ErrEmptyID
	}

	root := driveRoot(id)
	p, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return info, err
	}

	if err := windows.GetVolumeInformation(p, nil, 0, nil, nil, nil, nil, 0); err != nil {
		return info, fmt.Errorf("volume %s not ready: %w", root, err)
	}
	info.Ready = true
	info.Fixed = windows.GetDriveType(p) == windows.DRIVE_FIXED

	var (
		freeBytesAvailable     uint64
		totalNumberOfBytes     uint64
		totalNumberOfFreeBytes uint64
	)
	if err := windows.GetDiskFreeSpaceEx(p, &freeBytesAvailable, &totalNumberOfBytes, &totalNumberOfFreeBytes); err != nil {
		return info, fmt.Errorf("cannot query free space of %s: %w", root, err)
	}
	info.TotalBytes = totalNumberOfBytes
	info.FreeBytes = totalNumberOfFreeBytes
	return info, nil
}
