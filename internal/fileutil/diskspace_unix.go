//go:build unix

package fileutil

import "golang.org/x/sys/unix"

// FreeBytes returns the space available to an unprivileged user on the
// filesystem containing path.
func FreeBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bsize) * uint64(st.Bavail), nil
}
