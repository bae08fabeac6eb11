//go:build darwin || freebsd

package volume

// Removable media is not detected on these platforms.
func isRemovable(device string) bool {
	return false
}
