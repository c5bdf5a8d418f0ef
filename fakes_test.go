package syspal

import (
	"golang.org/x/sys/unix"
)

// fakeUnix is a scriptable unixProvider: tests set only the function
// fields they exercise, and any unscripted native call fails loudly with
// ENOSYS instead of silently succeeding.
type fakeUnix struct {
	openFn       func(path string, mode int, perm uint32) (int, error)
	closeFn      func(fd int) error
	fcntlIntFn   func(fd uintptr, cmd int, arg int) (int, error)
	unlinkFn     func(path string) error
	mkdirFn      func(path string, mode uint32) error
	chmodFn      func(path string, mode uint32) error
	fchmodFn     func(fd int, mode uint32) error
	fsyncFn      func(fd int) error
	syncFn       func() error
	flockFn      func(fd int, how int) error
	fcntlFlockFn func(fd uintptr, cmd int, lk *unix.Flock_t) error
	chdirFn      func(path string) error
	faccessatFn  func(dirfd int, path string, mode uint32, flags int) error
	seekFn       func(fd int, offset int64, whence int) (int64, error)
	linkFn       func(oldpath, newpath string) error
	symlinkFn    func(oldpath, newpath string) error
	readlinkFn   func(path string, buf []byte) (int, error)
	ftruncateFn  func(fd int, length int64) error
	renameFn     func(oldpath, newpath string) error
	rmdirFn      func(path string) error
	readFn       func(fd int, p []byte) (int, error)
	writeFn      func(fd int, p []byte) (int, error)
	preadFn      func(fd int, p []byte, offset int64) (int, error)
	pwriteFn     func(fd int, p []byte, offset int64) (int, error)
	statFn       func(path string, st *unix.Stat_t) error
	lstatFn      func(path string, st *unix.Stat_t) error
	fstatFn      func(fd int, st *unix.Stat_t) error
	pipeFn       func(p []int, closeOnExec bool) error
	mmapFn       func(fd int, offset int64, length int, prot, flags int) ([]byte, error)
	munmapFn     func(b []byte) error
	madviseFn    func(b []byte, advice int) error
	msyncFn      func(b []byte, flags int) error
	readDirentFn func(fd int, buf []byte) (int, error)
}

func (f *fakeUnix) Open(path string, mode int, perm uint32) (int, error) {
	if f.openFn == nil {
		return -1, unix.ENOSYS
	}

	return f.openFn(path, mode, perm)
}

func (f *fakeUnix) Close(fd int) error {
	if f.closeFn == nil {
		return unix.ENOSYS
	}

	return f.closeFn(fd)
}

func (f *fakeUnix) FcntlInt(fd uintptr, cmd int, arg int) (int, error) {
	if f.fcntlIntFn == nil {
		return -1, unix.ENOSYS
	}

	return f.fcntlIntFn(fd, cmd, arg)
}

func (f *fakeUnix) Unlink(path string) error {
	if f.unlinkFn == nil {
		return unix.ENOSYS
	}

	return f.unlinkFn(path)
}

func (f *fakeUnix) Mkdir(path string, mode uint32) error {
	if f.mkdirFn == nil {
		return unix.ENOSYS
	}

	return f.mkdirFn(path, mode)
}

func (f *fakeUnix) Chmod(path string, mode uint32) error {
	if f.chmodFn == nil {
		return unix.ENOSYS
	}

	return f.chmodFn(path, mode)
}

func (f *fakeUnix) Fchmod(fd int, mode uint32) error {
	if f.fchmodFn == nil {
		return unix.ENOSYS
	}

	return f.fchmodFn(fd, mode)
}

func (f *fakeUnix) Fsync(fd int) error {
	if f.fsyncFn == nil {
		return unix.ENOSYS
	}

	return f.fsyncFn(fd)
}

func (f *fakeUnix) Sync() error {
	if f.syncFn == nil {
		return unix.ENOSYS
	}

	return f.syncFn()
}

func (f *fakeUnix) Flock(fd int, how int) error {
	if f.flockFn == nil {
		return unix.ENOSYS
	}

	return f.flockFn(fd, how)
}

func (f *fakeUnix) FcntlFlock(fd uintptr, cmd int, lk *unix.Flock_t) error {
	if f.fcntlFlockFn == nil {
		return unix.ENOSYS
	}

	return f.fcntlFlockFn(fd, cmd, lk)
}

func (f *fakeUnix) Chdir(path string) error {
	if f.chdirFn == nil {
		return unix.ENOSYS
	}

	return f.chdirFn(path)
}

func (f *fakeUnix) Faccessat(dirfd int, path string, mode uint32, flags int) error {
	if f.faccessatFn == nil {
		return unix.ENOSYS
	}

	return f.faccessatFn(dirfd, path, mode, flags)
}

func (f *fakeUnix) Seek(fd int, offset int64, whence int) (int64, error) {
	if f.seekFn == nil {
		return -1, unix.ENOSYS
	}

	return f.seekFn(fd, offset, whence)
}

func (f *fakeUnix) Link(oldpath, newpath string) error {
	if f.linkFn == nil {
		return unix.ENOSYS
	}

	return f.linkFn(oldpath, newpath)
}

func (f *fakeUnix) Symlink(oldpath, newpath string) error {
	if f.symlinkFn == nil {
		return unix.ENOSYS
	}

	return f.symlinkFn(oldpath, newpath)
}

func (f *fakeUnix) Readlink(path string, buf []byte) (int, error) {
	if f.readlinkFn == nil {
		return -1, unix.ENOSYS
	}

	return f.readlinkFn(path, buf)
}

func (f *fakeUnix) Ftruncate(fd int, length int64) error {
	if f.ftruncateFn == nil {
		return unix.ENOSYS
	}

	return f.ftruncateFn(fd, length)
}

func (f *fakeUnix) Rename(oldpath, newpath string) error {
	if f.renameFn == nil {
		return unix.ENOSYS
	}

	return f.renameFn(oldpath, newpath)
}

func (f *fakeUnix) Rmdir(path string) error {
	if f.rmdirFn == nil {
		return unix.ENOSYS
	}

	return f.rmdirFn(path)
}

func (f *fakeUnix) Read(fd int, p []byte) (int, error) {
	if f.readFn == nil {
		return -1, unix.ENOSYS
	}

	return f.readFn(fd, p)
}

func (f *fakeUnix) Write(fd int, p []byte) (int, error) {
	if f.writeFn == nil {
		return -1, unix.ENOSYS
	}

	return f.writeFn(fd, p)
}

func (f *fakeUnix) Pread(fd int, p []byte, offset int64) (int, error) {
	if f.preadFn == nil {
		return -1, unix.ENOSYS
	}

	return f.preadFn(fd, p, offset)
}

func (f *fakeUnix) Pwrite(fd int, p []byte, offset int64) (int, error) {
	if f.pwriteFn == nil {
		return -1, unix.ENOSYS
	}

	return f.pwriteFn(fd, p, offset)
}

func (f *fakeUnix) Stat(path string, st *unix.Stat_t) error {
	if f.statFn == nil {
		return unix.ENOSYS
	}

	return f.statFn(path, st)
}

func (f *fakeUnix) Lstat(path string, st *unix.Stat_t) error {
	if f.lstatFn == nil {
		return unix.ENOSYS
	}

	return f.lstatFn(path, st)
}

func (f *fakeUnix) Fstat(fd int, st *unix.Stat_t) error {
	if f.fstatFn == nil {
		return unix.ENOSYS
	}

	return f.fstatFn(fd, st)
}

func (f *fakeUnix) Pipe(p []int, closeOnExec bool) error {
	if f.pipeFn == nil {
		return unix.ENOSYS
	}

	return f.pipeFn(p, closeOnExec)
}

func (f *fakeUnix) Getpagesize() int {
	return 4096
}

func (f *fakeUnix) Mmap(fd int, offset int64, length int, prot, flags int) ([]byte, error) {
	if f.mmapFn == nil {
		return nil, unix.ENOSYS
	}

	return f.mmapFn(fd, offset, length, prot, flags)
}

func (f *fakeUnix) Munmap(b []byte) error {
	if f.munmapFn == nil {
		return unix.ENOSYS
	}

	return f.munmapFn(b)
}

func (f *fakeUnix) Madvise(b []byte, advice int) error {
	if f.madviseFn == nil {
		return unix.ENOSYS
	}

	return f.madviseFn(b, advice)
}

func (f *fakeUnix) Msync(b []byte, flags int) error {
	if f.msyncFn == nil {
		return unix.ENOSYS
	}

	return f.msyncFn(b, flags)
}

func (f *fakeUnix) ReadDirent(fd int, buf []byte) (int, error) {
	if f.readDirentFn == nil {
		return -1, unix.ENOSYS
	}

	return f.readDirentFn(fd, buf)
}

// fakeOS is a scriptable osProvider.
type fakeOS struct {
	canonicalPathFn func(path string) (string, error)
}

func (f *fakeOS) CanonicalPath(path string) (string, error) {
	if f.canonicalPathFn == nil {
		return "", unix.ENOSYS
	}

	return f.canonicalPathFn(path)
}

// The wrappers below add exactly one optional capability on top of a
// fakeUnix, mirroring how capability detection sees a richer provider.
type fakeWholeCopyUnix struct {
	*fakeUnix
	copyFileAllFn func(srcFd, dstFd int) error
}

func (f *fakeWholeCopyUnix) CopyFileAll(srcFd, dstFd int) error {
	return f.copyFileAllFn(srcFd, dstFd)
}

type fakeCloneUnix struct {
	*fakeUnix
	cloneFileFn func(dstFd, srcFd int) error
}

func (f *fakeCloneUnix) CloneFile(dstFd, srcFd int) error {
	return f.cloneFileFn(dstFd, srcFd)
}

type fakeStreamUnix struct {
	*fakeUnix
	sendfileFn func(outFd, inFd int, count int) (int, error)
}

func (f *fakeStreamUnix) Sendfile(outFd, inFd int, count int) (int, error) {
	return f.sendfileFn(outFd, inFd, count)
}

type fakeVectorUnix struct {
	*fakeUnix
	preadvFn  func(fd int, iovs [][]byte, offset int64) (int, error)
	pwritevFn func(fd int, iovs [][]byte, offset int64) (int, error)
}

func (f *fakeVectorUnix) Preadv(fd int, iovs [][]byte, offset int64) (int, error) {
	return f.preadvFn(fd, iovs, offset)
}

func (f *fakeVectorUnix) Pwritev(fd int, iovs [][]byte, offset int64) (int, error) {
	return f.pwritevFn(fd, iovs, offset)
}

type fakeTimesUnix struct {
	*fakeUnix
	futimensFn func(fd int, ts []unix.Timespec) error
}

func (f *fakeTimesUnix) Futimens(fd int, ts []unix.Timespec) error {
	return f.futimensFn(fd, ts)
}

type fakeLegacyTimesUnix struct {
	*fakeUnix
	futimesFn func(fd int, tv []unix.Timeval) error
}

func (f *fakeLegacyTimesUnix) Futimes(fd int, tv []unix.Timeval) error {
	return f.futimesFn(fd, tv)
}

// fakeAllTimesUnix carries both timestamp capabilities, for exercising
// the resolution preference between them.
type fakeAllTimesUnix struct {
	*fakeUnix
	futimensFn func(fd int, ts []unix.Timespec) error
	futimesFn  func(fd int, tv []unix.Timeval) error
}

func (f *fakeAllTimesUnix) Futimens(fd int, ts []unix.Timespec) error {
	return f.futimensFn(fd, ts)
}

func (f *fakeAllTimesUnix) Futimes(fd int, tv []unix.Timeval) error {
	return f.futimesFn(fd, tv)
}

type fakeFsNameUnix struct {
	*fakeUnix
	filesystemNameFn func(fd int) (string, error)
}

func (f *fakeFsNameUnix) FilesystemName(fd int) (string, error) {
	return f.filesystemNameFn(fd)
}

type fakeFsTypeUnix struct {
	*fakeUnix
	filesystemTypeFn func(fd int) (int64, error)
}

func (f *fakeFsTypeUnix) FilesystemType(fd int) (int64, error) {
	return f.filesystemTypeFn(fd)
}
