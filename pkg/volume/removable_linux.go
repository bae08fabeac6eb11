//go:build linux

package volume

import (
	"os"
	"path/filepath"
	"strings"
)

const sysBlockDir = "/sys/class/block"

func isRemovable(device string) bool {
	return removableIn(sysBlockDir, device)
}

// removableIn reads the sysfs removable flag for a /dev node.
// Partitions carry no flag of their own, so the parent disk is consulted.
func removableIn(blockDir, device string) bool {
	if !strings.HasPrefix(device, "/dev/") {
		return false
	}

	name := filepath.Base(device)
	if resolved, err := filepath.EvalSymlinks(device); err == nil {
		name = filepath.Base(resolved)
	}

	sysPath, err := filepath.EvalSymlinks(filepath.Join(blockDir, name))
	if err != nil {
		return false
	}

	for _, dir := range []string{sysPath, filepath.Dir(sysPath)} {
		data, err := os.ReadFile(filepath.Join(dir, "removable"))
		if err != nil {
			continue
		}
		return strings.TrimSpace(string(data)) == "1"
	}
	return false
}
