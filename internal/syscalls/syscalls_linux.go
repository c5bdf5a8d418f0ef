//go:build linux

package syscalls

import (
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

func (RealUnix) Fsync(fd int) error {
	return unix.Fsync(fd)
}

func (RealUnix) Sync() error {
	unix.Sync()

	return nil
}

func (RealUnix) Pipe(p []int, closeOnExec bool) error {
	flags := 0
	if closeOnExec {
		flags = unix.O_CLOEXEC
	}

	return unix.Pipe2(p, flags)
}

func (RealUnix) CloneFile(dstFd, srcFd int) error {
	return unix.IoctlFileClone(dstFd, srcFd)
}

func (RealUnix) Sendfile(outFd, inFd int, count int) (int, error) {
	return unix.Sendfile(outFd, inFd, nil, count)
}

func (RealUnix) Preadv(fd int, iovs [][]byte, offset int64) (int, error) {
	return unix.Preadv(fd, iovs, offset)
}

func (RealUnix) Pwritev(fd int, iovs [][]byte, offset int64) (int, error) {
	return unix.Pwritev(fd, iovs, offset)
}

// Futimens addresses the descriptor through /proc: utimensat with a NULL
// path is not reachable from Go, and AT_EMPTY_PATH is rejected with EINVAL
// here on kernels before 6.13.
func (RealUnix) Futimens(fd int, ts []unix.Timespec) error {
	return unix.UtimesNanoAt(unix.AT_FDCWD, "/proc/self/fd/"+strconv.Itoa(fd), ts, 0)
}

// Fallocate keeps the visible file size unchanged; only the backing
// extents are reserved.
func (RealUnix) Fallocate(fd int, offset, length int64) error {
	return unix.Fallocate(fd, unix.FALLOC_FL_KEEP_SIZE, offset, length)
}

func (RealUnix) Fadvise(fd int, offset, length int64, advice int) error {
	return unix.Fadvise(fd, offset, length, advice)
}

func (RealUnix) GetPipeSize(fd int) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_GETPIPE_SZ, 0)
}

func (RealUnix) SetPipeSize(fd int, size int) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_SETPIPE_SZ, size)
}

func (RealUnix) FilesystemType(fd int) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(fd, &st); err != nil {
		return 0, err
	}

	return int64(st.Type), nil
}

func (RealUnix) Poll(fds []unix.PollFd, timeoutMs int) (int, error) {
	return unix.Poll(fds, timeoutMs)
}

// Shared-memory objects live on the kernel tmpfs mounted at /dev/shm; a
// valid object name carries no slash beyond the optional leading one.
func shmPath(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.ContainsRune(name, '/') {
		return "", unix.EINVAL
	}

	return "/dev/shm/" + name, nil
}

func (RealUnix) ShmOpen(name string, mode int, perm uint32) (int, error) {
	path, err := shmPath(name)
	if err != nil {
		return -1, err
	}

	return unix.Open(path, mode|unix.O_CLOEXEC, perm)
}

func (RealUnix) ShmUnlink(name string) error {
	path, err := shmPath(name)
	if err != nil {
		return err
	}

	return unix.Unlink(path)
}

func (RealUnix) MadviseDontFork(b []byte) error {
	return unix.Madvise(b, unix.MADV_DONTFORK)
}

func (RealUnix) InotifyInit() (int, error) {
	return unix.InotifyInit1(0)
}

func (RealUnix) InotifyAddWatch(fd int, path string, mask uint32) (int, error) {
	return unix.InotifyAddWatch(fd, path, mask)
}

func (RealUnix) InotifyRmWatch(fd int, wd uint32) (int, error) {
	return unix.InotifyRmWatch(fd, wd)
}
