//go:build !windows

package preflight

import (
	"os"

	"golang.org/x/sys/unix"
)

func isElevated() bool {
	return os.Geteuid() == 0
}

func freeDiskMB() (int64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs("/", &st); err != nil {
		return 0, err
	}
	free := uint64(st.Bavail) * uint64(st.Bsize) //nolint:unconvert // Bavail is int64 on some platforms
	return int64(free / (1024 * 1024)), nil
}
