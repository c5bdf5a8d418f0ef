// Package syscalls provides the concrete native backends behind the
// library's provider interfaces. RealOS wraps standard-library path
// operations; RealUnix wraps the native syscall surface. Methods that
// exist only on some targets live in the build-tagged files and are
// discovered upstream through capability detection.
package syscalls

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// RealOS is an implementation wrapping standard-library operations.
type RealOS struct{}

// CanonicalPath resolves a path to its absolute form with all symbolic
// links expanded.
func (RealOS) CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

// RealUnix is an implementation wrapping native Unix system calls.
type RealUnix struct{}

func (RealUnix) Open(path string, mode int, perm uint32) (int, error) {
	return unix.Open(path, mode, perm)
}

func (RealUnix) Close(fd int) error {
	return unix.Close(fd)
}

func (RealUnix) FcntlInt(fd uintptr, cmd int, arg int) (int, error) {
	return unix.FcntlInt(fd, cmd, arg)
}

func (RealUnix) Unlink(path string) error {
	return unix.Unlink(path)
}

func (RealUnix) Mkdir(path string, mode uint32) error {
	return unix.Mkdir(path, mode)
}

func (RealUnix) Chmod(path string, mode uint32) error {
	return unix.Chmod(path, mode)
}

func (RealUnix) Fchmod(fd int, mode uint32) error {
	return unix.Fchmod(fd, mode)
}

func (RealUnix) Flock(fd int, how int) error {
	return unix.Flock(fd, how)
}

func (RealUnix) FcntlFlock(fd uintptr, cmd int, lk *unix.Flock_t) error {
	return unix.FcntlFlock(fd, cmd, lk)
}

func (RealUnix) Chdir(path string) error {
	return unix.Chdir(path)
}

func (RealUnix) Faccessat(dirfd int, path string, mode uint32, flags int) error {
	return unix.Faccessat(dirfd, path, mode, flags)
}

func (RealUnix) Seek(fd int, offset int64, whence int) (int64, error) {
	return unix.Seek(fd, offset, whence)
}

func (RealUnix) Link(oldpath, newpath string) error {
	return unix.Link(oldpath, newpath)
}

func (RealUnix) Symlink(oldpath, newpath string) error {
	return unix.Symlink(oldpath, newpath)
}

func (RealUnix) Readlink(path string, buf []byte) (int, error) {
	return unix.Readlink(path, buf)
}

func (RealUnix) Ftruncate(fd int, length int64) error {
	return unix.Ftruncate(fd, length)
}

func (RealUnix) Rename(oldpath, newpath string) error {
	return unix.Rename(oldpath, newpath)
}

func (RealUnix) Rmdir(path string) error {
	return unix.Rmdir(path)
}

func (RealUnix) Read(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

func (RealUnix) Write(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

func (RealUnix) Pread(fd int, p []byte, offset int64) (int, error) {
	return unix.Pread(fd, p, offset)
}

func (RealUnix) Pwrite(fd int, p []byte, offset int64) (int, error) {
	return unix.Pwrite(fd, p, offset)
}

func (RealUnix) Stat(path string, st *unix.Stat_t) error {
	return unix.Stat(path, st)
}

func (RealUnix) Lstat(path string, st *unix.Stat_t) error {
	return unix.Lstat(path, st)
}

func (RealUnix) Fstat(fd int, st *unix.Stat_t) error {
	return unix.Fstat(fd, st)
}

func (RealUnix) Getpagesize() int {
	return unix.Getpagesize()
}

func (RealUnix) Mmap(fd int, offset int64, length int, prot, flags int) ([]byte, error) {
	return unix.Mmap(fd, offset, length, prot, flags)
}

func (RealUnix) Munmap(b []byte) error {
	return unix.Munmap(b)
}

func (RealUnix) Madvise(b []byte, advice int) error {
	return unix.Madvise(b, advice)
}

func (RealUnix) Msync(b []byte, flags int) error {
	return unix.Msync(b, flags)
}

func (RealUnix) ReadDirent(fd int, buf []byte) (int, error) {
	return unix.ReadDirent(fd, buf)
}
