package volume

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// Filesystems that are not backed by a local disk.
var (
	virtualFstypes = map[string]bool{
		"tmpfs": true, "ramfs": true, "devtmpfs": true, "sysfs": true, "proc": true,
		"devpts": true, "cgroup": true, "cgroup2": true, "securityfs": true, "debugfs": true,
		"tracefs": true, "configfs": true, "fusectl": true, "hugetlbfs": true, "mqueue": true,
		"pstore": true, "autofs": true, "binfmt_misc": true, "bpf": true, "efivarfs": true,
		"nsfs": true, "rpc_pipefs": true, "devfs": true, "fdesc": true, "fuse.gvfsd-fuse": true,
		"fuse.portal": true,
	}
	networkFstypes = map[string]bool{
		"nfs": true, "nfs4": true, "cifs": true, "smb": true, "smb2": true, "smb3": true,
		"smbfs": true, "ncpfs": true, "afs": true, "afpfs": true, "9p": true, "ceph": true,
		"glusterfs": true, "lustre": true, "gpfs": true, "sshfs": true, "fuse.sshfs": true,
		"fuse.glusterfs": true, "fuse.rclone": true, "fuse.davfs2": true, "davfs": true,
		"webdav": true,
	}
	opticalFstypes = map[string]bool{
		"iso9660": true, "udf": true, "cd9660": true,
	}
)

// isFixedFstype reports whether a filesystem type belongs to a local, non-removable disk.
// Unknown types are treated as local so new disk filesystems are not dropped.
func isFixedFstype(fstype string) bool {
	fstype = strings.ToLower(fstype)
	if fstype == "" {
		return false
	}
	return !virtualFstypes[fstype] && !networkFstypes[fstype] && !opticalFstypes[fstype]
}

// mountFor returns the partition whose mount point contains path.
// The longest mount point wins; among equal mount points the last mounted wins.
func mountFor(path string, parts []disk.PartitionStat) (disk.PartitionStat, bool) {
	path = filepath.Clean(path)

	var (
		best  disk.PartitionStat
		found bool
	)
	for _, p := range parts {
		mp := filepath.Clean(p.Mountpoint)
		if !containsPath(mp, path) {
			continue
		}
		if !found || len(mp) >= len(filepath.Clean(best.Mountpoint)) {
			best = p
			found = true
		}
	}
	return best, found
}

func containsPath(mountPoint, path string) bool {
	if mountPoint == path {
		return true
	}
	prefix := mountPoint
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// driveRoot normalizes a Windows drive identifier ("C", "C:", "C:\") to its root path.
func driveRoot(id string) string {
	id = strings.TrimSpace(id)
	switch {
	case len(id) == 1 && isLetter(id[0]):
		return id + `:\`
	case len(id) == 2 && isLetter(id[0]) && id[1] == ':':
		return id + `\`
	case strings.HasSuffix(id, `\`):
		return id
	case strings.HasSuffix(id, "/"):
		return strings.TrimSuffix(id, "/") + `\`
	default:
		return id + `\`
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
