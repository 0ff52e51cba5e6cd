// Package disk reports filesystem capacity for health checks.
package disk

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Statfs implements domain.DiskStats using statfs(2).
type Statfs struct{}

// NewStatfs returns a DiskStats backed by the host filesystem.
func NewStatfs() *Statfs {
	return &Statfs{}
}

// FreeBytes returns the bytes available to unprivileged users on the volume
// holding path.
func (s *Statfs) FreeBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	return st.Bavail * uint64(st.Bsize), nil
}
