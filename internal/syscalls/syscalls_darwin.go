//go:build darwin

package syscalls

import (
	"golang.org/x/sys/unix"
)

// Fsync asks the drive to flush its track cache too; a plain fsync only
// reaches the drive on this host. Filesystems without F_FULLFSYNC support
// fall back to the plain flush.
func (RealUnix) Fsync(fd int) error {
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0); err != nil {
		return unix.Fsync(fd)
	}

	return nil
}

func (RealUnix) Sync() error {
	return unix.Sync()
}

// Pipe emulates the atomic close-on-exec variant missing on this host. On
// any failure both descriptors are closed before returning.
func (RealUnix) Pipe(p []int, closeOnExec bool) error {
	if err := unix.Pipe(p); err != nil {
		return err
	}

	if !closeOnExec {
		return nil
	}

	for _, fd := range p[:2] {
		if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			p[0], p[1] = -1, -1

			return err
		}
	}

	return nil
}

func (RealUnix) Futimes(fd int, tv []unix.Timeval) error {
	return unix.Futimes(fd, tv)
}

func (RealUnix) FilesystemType(fd int) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(fd, &st); err != nil {
		return 0, err
	}

	return int64(st.Type), nil
}

func (RealUnix) CanGetHiddenFlag() bool {
	return true
}
