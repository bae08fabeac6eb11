//go:build !linux && !darwin && !freebsd && !windows

package volume

// Stat always fails on platforms without a volume query.
func (s *System) Stat(id string) (Info, error) {
	return Info{ID: id}, ErrUnsupported
}
