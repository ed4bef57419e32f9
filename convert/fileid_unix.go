//go:build unix

package convert

import "golang.org/x/sys/unix"

const identitySupported = true

// fileID identifies a file independently of the path used to reach it.
type fileID struct {
	dev uint64
	ino uint64
}

// statID resolves symlinks and returns the device and inode of path.
func statID(path string) (fileID, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fileID{}, err
	}
	return fileID{dev: uint64(st.Dev), ino: uint64(st.Ino)}, nil
}
