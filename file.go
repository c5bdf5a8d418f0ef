package syspal

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Open opens or creates the file at path, returning an open descriptor.
// The portable flag set is validated and translated before any native
// call; mode applies when OpenCreate is present.
func (h *Handler) Open(path string, flags OpenFlag, mode uint32) (int, error) {
	native, err := translateOpenFlags(flags)
	if err != nil {
		return -1, err
	}

	fd, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Open(path, native, mode) })
	if err != nil {
		return -1, fmt.Errorf("(file) failed to open %s: %w", path, err)
	}

	return fd, nil
}

// Close releases an open descriptor. It is the paired release for every
// descriptor-returning operation; a descriptor that is never closed leaks.
// close(2) is deliberately not retried on interruption.
func (h *Handler) Close(fd int) error {
	if err := h.UnixOps.Close(fd); err != nil {
		return fmt.Errorf("(file) failed to close fd %d: %w", fd, err)
	}

	return nil
}

// Dup duplicates a descriptor. The duplicate has close-on-exec set.
func (h *Handler) Dup(fd int) (int, error) {
	dup, err := ignoringEINTR2(func() (int, error) {
		return h.UnixOps.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
	})
	if err != nil {
		return -1, fmt.Errorf("(file) failed to dup fd %d: %w", fd, err)
	}

	return dup, nil
}

// Unlink removes the directory entry at path.
func (h *Handler) Unlink(path string) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Unlink(path) }); err != nil {
		return fmt.Errorf("(file) failed to unlink %s: %w", path, err)
	}

	return nil
}

// ShmOpen opens a POSIX shared-memory object. Hosts without a usable
// shared-memory mount report ErrNotSupported.
func (h *Handler) ShmOpen(name string, flags OpenFlag, mode uint32) (int, error) {
	if h.shm == nil {
		return -1, fmt.Errorf("(file) shm open: %w", ErrNotSupported)
	}

	native, err := translateOpenFlags(flags)
	if err != nil {
		return -1, err
	}

	fd, err := ignoringEINTR2(func() (int, error) { return h.shm.ShmOpen(name, native, mode) })
	if err != nil {
		return -1, fmt.Errorf("(file) failed to shm-open %s: %w", name, err)
	}

	return fd, nil
}

// ShmUnlink removes a POSIX shared-memory object.
func (h *Handler) ShmUnlink(name string) error {
	if h.shm == nil {
		return fmt.Errorf("(file) shm unlink: %w", ErrNotSupported)
	}

	if err := ignoringEINTR(func() error { return h.shm.ShmUnlink(name) }); err != nil {
		return fmt.Errorf("(file) failed to shm-unlink %s: %w", name, err)
	}

	return nil
}

// Pipe creates a unidirectional data channel, returning the read and write
// descriptors. closeOnExec applies the close-on-exec flag to both ends,
// atomically where the host allows it and via a descriptor-flag call
// otherwise.
func (h *Handler) Pipe(closeOnExec bool) (readFd, writeFd int, err error) {
	p := make([]int, 2)
	if err := ignoringEINTR(func() error { return h.UnixOps.Pipe(p, closeOnExec) }); err != nil {
		return -1, -1, fmt.Errorf("(file) failed to create pipe: %w", err)
	}

	return p[0], p[1], nil
}

// FcntlGetFD reports whether the descriptor has close-on-exec set.
func (h *Handler) FcntlGetFD(fd int) (bool, error) {
	flags, err := h.UnixOps.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		return false, fmt.Errorf("(file) failed to get fd flags of %d: %w", fd, err)
	}

	return flags&unix.FD_CLOEXEC != 0, nil
}

// FcntlSetFD sets or clears close-on-exec on the descriptor.
func (h *Handler) FcntlSetFD(fd int, closeOnExec bool) error {
	arg := 0
	if closeOnExec {
		arg = unix.FD_CLOEXEC
	}

	_, err := ignoringEINTR2(func() (int, error) {
		return h.UnixOps.FcntlInt(uintptr(fd), unix.F_SETFD, arg)
	})
	if err != nil {
		return fmt.Errorf("(file) failed to set fd flags of %d: %w", fd, err)
	}

	return nil
}

// GetIsNonBlocking reports whether the descriptor is in non-blocking mode.
func (h *Handler) GetIsNonBlocking(fd int) (bool, error) {
	flags, err := h.UnixOps.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return false, fmt.Errorf("(file) failed to get status flags of %d: %w", fd, err)
	}

	return flags&unix.O_NONBLOCK != 0, nil
}

// SetIsNonBlocking switches the descriptor's non-blocking mode.
func (h *Handler) SetIsNonBlocking(fd int, nonBlocking bool) error {
	flags, err := h.UnixOps.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return fmt.Errorf("(file) failed to get status flags of %d: %w", fd, err)
	}

	if nonBlocking {
		flags |= unix.O_NONBLOCK
	} else {
		flags &^= unix.O_NONBLOCK
	}

	if _, err := h.UnixOps.FcntlInt(uintptr(fd), unix.F_SETFL, flags); err != nil {
		return fmt.Errorf("(file) failed to set status flags of %d: %w", fd, err)
	}

	return nil
}

// CanGetSetPipeSize reports whether pipe buffer sizing is available.
func (h *Handler) CanGetSetPipeSize() bool {
	return h.pipeSizes != nil
}

// GetPipeSize reports the kernel buffer size of a pipe descriptor.
func (h *Handler) GetPipeSize(fd int) (int, error) {
	if h.pipeSizes == nil {
		return -1, fmt.Errorf("(file) pipe sizing: %w", ErrNotSupported)
	}

	size, err := ignoringEINTR2(func() (int, error) { return h.pipeSizes.GetPipeSize(fd) })
	if err != nil {
		return -1, fmt.Errorf("(file) failed to get pipe size of %d: %w", fd, err)
	}

	return size, nil
}

// SetPipeSize changes the kernel buffer size of a pipe descriptor,
// returning the size actually granted.
func (h *Handler) SetPipeSize(fd int, size int) (int, error) {
	if h.pipeSizes == nil {
		return -1, fmt.Errorf("(file) pipe sizing: %w", ErrNotSupported)
	}

	granted, err := ignoringEINTR2(func() (int, error) { return h.pipeSizes.SetPipeSize(fd, size) })
	if err != nil {
		return -1, fmt.Errorf("(file) failed to set pipe size of %d: %w", fd, err)
	}

	return granted, nil
}

// MkDir creates a directory at path with the given permission bits.
func (h *Handler) MkDir(path string, mode uint32) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Mkdir(path, mode) }); err != nil {
		return fmt.Errorf("(file) failed to mkdir %s: %w", path, err)
	}

	return nil
}

// ChMod changes the permission bits of the file at path.
func (h *Handler) ChMod(path string, mode uint32) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Chmod(path, mode) }); err != nil {
		return fmt.Errorf("(file) failed to chmod %s: %w", path, err)
	}

	return nil
}

// FChMod changes the permission bits of an open descriptor.
func (h *Handler) FChMod(fd int, mode uint32) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Fchmod(fd, mode) }); err != nil {
		return fmt.Errorf("(file) failed to fchmod fd %d: %w", fd, err)
	}

	return nil
}

// FSync flushes a descriptor's data and metadata to stable storage, using
// the strongest flush primitive the host offers.
func (h *Handler) FSync(fd int) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Fsync(fd) }); err != nil {
		return fmt.Errorf("(file) failed to fsync fd %d: %w", fd, err)
	}

	return nil
}

// SyncAll schedules a flush of all dirty buffers system-wide.
func (h *Handler) SyncAll() error {
	if err := h.UnixOps.Sync(); err != nil {
		return fmt.Errorf("(file) failed to sync: %w", err)
	}

	return nil
}

// FlockOperation is the whole-file advisory lock operation set. The
// numeric values are specified by POSIX and identical on all targets.
type FlockOperation int32

const (
	FlockShared      FlockOperation = 0x1
	FlockExclusive   FlockOperation = 0x2
	FlockNonBlocking FlockOperation = 0x4
	FlockUnlock      FlockOperation = 0x8
)

// FLock applies or removes a whole-file advisory lock.
func (h *Handler) FLock(fd int, op FlockOperation) error {
	known := FlockShared | FlockExclusive | FlockNonBlocking | FlockUnlock
	if op&^known != 0 {
		return fmt.Errorf("(file) %w: flock operation %#x", ErrInvalidFlags, int32(op))
	}

	if err := ignoringEINTR(func() error { return h.UnixOps.Flock(fd, int(op)) }); err != nil {
		return fmt.Errorf("(file) failed to flock fd %d: %w", fd, err)
	}

	return nil
}

// LockFileRegion applies or removes an advisory lock over a byte range.
// Offset and length must be non-negative; violations are rejected before
// any native call.
func (h *Handler) LockFileRegion(fd int, offset, length int64, lockType LockType) error {
	native, err := translateLockType(lockType)
	if err != nil {
		return err
	}

	if offset < 0 || length < 0 {
		return fmt.Errorf("(file) %w: negative region %d+%d", ErrInvalidArgument, offset, length)
	}

	lk := unix.Flock_t{
		Type:   native,
		Whence: int16(unix.SEEK_SET),
		Start:  offset,
		Len:    length,
	}

	if err := ignoringEINTR(func() error {
		return h.UnixOps.FcntlFlock(uintptr(fd), unix.F_SETLK, &lk)
	}); err != nil {
		return fmt.Errorf("(file) failed to lock region of fd %d: %w", fd, err)
	}

	return nil
}

// ChDir changes the working directory of the process.
func (h *Handler) ChDir(path string) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Chdir(path) }); err != nil {
		return fmt.Errorf("(file) failed to chdir to %s: %w", path, err)
	}

	return nil
}

// Access checks the accessibility of path for the given portable mode.
func (h *Handler) Access(path string, mode AccessMode) error {
	native, err := translateAccessMode(mode)
	if err != nil {
		return err
	}

	if err := h.UnixOps.Faccessat(unix.AT_FDCWD, path, native, 0); err != nil {
		return fmt.Errorf("(file) failed to access %s: %w", path, err)
	}

	return nil
}

// SeekWhence is the seek origin set. The numeric values are specified by
// POSIX and identical on all targets.
type SeekWhence int32

const (
	SeekSet     SeekWhence = 0
	SeekCurrent SeekWhence = 1
	SeekEnd     SeekWhence = 2
)

// LSeek repositions a descriptor's offset, returning the new offset.
func (h *Handler) LSeek(fd int, offset int64, whence SeekWhence) (int64, error) {
	if whence < SeekSet || whence > SeekEnd {
		return -1, fmt.Errorf("(file) %w: seek whence %d", ErrInvalidArgument, whence)
	}

	pos, err := ignoringEINTR2(func() (int64, error) {
		return h.UnixOps.Seek(fd, offset, int(whence))
	})
	if err != nil {
		return -1, fmt.Errorf("(file) failed to seek fd %d: %w", fd, err)
	}

	return pos, nil
}

// Link creates a hard link at linkPath referring to source.
func (h *Handler) Link(source, linkPath string) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Link(source, linkPath) }); err != nil {
		return fmt.Errorf("(file) failed to link %s -> %s: %w", linkPath, source, err)
	}

	return nil
}

// SymLink creates a symbolic link at linkPath pointing at target.
func (h *Handler) SymLink(target, linkPath string) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Symlink(target, linkPath) }); err != nil {
		return fmt.Errorf("(file) failed to symlink %s -> %s: %w", linkPath, target, err)
	}

	return nil
}

// ReadLink reads the target of the symbolic link at path into buf,
// returning the number of bytes placed. The result is not NUL-terminated
// and is truncated to len(buf).
func (h *Handler) ReadLink(path string, buf []byte) (int, error) {
	if len(buf) == 0 {
		return -1, fmt.Errorf("(file) %w: empty readlink buffer", ErrInvalidArgument)
	}

	n, err := h.UnixOps.Readlink(path, buf)
	if err != nil {
		return -1, fmt.Errorf("(file) failed to readlink %s: %w", path, err)
	}

	return n, nil
}

// MksTemps creates and opens a unique temporary file from a template of
// the form prefixXXXXXXsuffix, where suffixLength names the length of the
// trailing suffix to preserve. It returns the open descriptor and the
// substituted path.
func (h *Handler) MksTemps(template string, suffixLength int) (int, string, error) {
	const placeholder = "XXXXXX"

	if suffixLength < 0 || suffixLength > len(template)-len(placeholder) {
		return -1, "", fmt.Errorf("(file) %w: suffix length %d", ErrInvalidArgument, suffixLength)
	}

	prefix := template[:len(template)-suffixLength]
	suffix := template[len(template)-suffixLength:]

	if !strings.HasSuffix(prefix, placeholder) {
		return -1, "", fmt.Errorf("(file) %w: template missing %s", ErrInvalidArgument, placeholder)
	}
	prefix = strings.TrimSuffix(prefix, placeholder)

	// Same scheme as the standard library's temp-file creation: random
	// substitutions with retry on collision, bounded to catch broken
	// generators.
	for try := 0; try < 10000; try++ {
		path := prefix + strconv.FormatUint(uint64(rand.Uint32()), 10) + suffix

		fd, err := ignoringEINTR2(func() (int, error) {
			return h.UnixOps.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, 0o600)
		})
		if err == unix.EEXIST {
			continue
		}
		if err != nil {
			return -1, "", fmt.Errorf("(file) failed to create temp file: %w", err)
		}

		return fd, path, nil
	}

	return -1, "", fmt.Errorf("(file) failed to create temp file: %w", unix.EEXIST)
}

// SysConfName selects a system configuration value for SysConf.
type SysConfName int32

const (
	SysConfClockTicks SysConfName = 1
	SysConfPageSize   SysConfName = 2
)

// clockTicksPerSecond is the kernel's userspace clock tick rate. All
// supported targets fix it at 100; the kernel-internal tick rate is not
// observable from userspace.
const clockTicksPerSecond = 100

// SysConf queries a system configuration value.
func (h *Handler) SysConf(name SysConfName) (int64, error) {
	switch name {
	case SysConfClockTicks:
		return clockTicksPerSecond, nil
	case SysConfPageSize:
		return int64(h.UnixOps.Getpagesize()), nil
	default:
		return -1, fmt.Errorf("(file) %w: sysconf name %d", ErrInvalidArgument, name)
	}
}

// FTruncate changes the size of the open file to length.
func (h *Handler) FTruncate(fd int, length int64) error {
	if length < 0 {
		return fmt.Errorf("(file) %w: negative length %d", ErrInvalidArgument, length)
	}

	if err := ignoringEINTR(func() error { return h.UnixOps.Ftruncate(fd, length) }); err != nil {
		return fmt.Errorf("(file) failed to truncate fd %d: %w", fd, err)
	}

	return nil
}

// Poll waits for readiness on the descriptor set, delegating to the host's
// polling primitive. It returns the number of descriptors with events.
func (h *Handler) Poll(fds []unix.PollFd, timeoutMs int) (int, error) {
	if h.poller == nil {
		return -1, fmt.Errorf("(file) poll: %w", ErrNotSupported)
	}

	n, err := ignoringEINTR2(func() (int, error) { return h.poller.Poll(fds, timeoutMs) })
	if err != nil {
		return -1, fmt.Errorf("(file) failed to poll: %w", err)
	}

	return n, nil
}

// PosixFAdvise announces an access pattern for a file region. Hosts
// without the primitive report ErrNotSupported, which callers may ignore
// since the call is only a hint.
func (h *Handler) PosixFAdvise(fd int, offset, length int64, advice FileAdvice) error {
	// Native advice constants may differ per platform; validation happens
	// before the capability check so malformed input is always reported.
	native, err := translateFileAdvice(advice)
	if err != nil {
		return err
	}

	if h.adviser == nil {
		return fmt.Errorf("(file) fadvise: %w", ErrNotSupported)
	}

	if err := ignoringEINTR(func() error {
		return h.adviser.Fadvise(fd, offset, length, native)
	}); err != nil {
		return fmt.Errorf("(file) failed to fadvise fd %d: %w", fd, err)
	}

	return nil
}

// FAllocate pre-allocates storage for a file region without changing the
// visible file size.
func (h *Handler) FAllocate(fd int, offset, length int64) error {
	if offset < 0 || length < 0 {
		return fmt.Errorf("(file) %w: negative region %d+%d", ErrInvalidArgument, offset, length)
	}

	if h.allocator == nil {
		return fmt.Errorf("(file) fallocate: %w", ErrNotSupported)
	}

	if err := ignoringEINTR(func() error {
		return h.allocator.Fallocate(fd, offset, length)
	}); err != nil {
		return fmt.Errorf("(file) failed to fallocate fd %d: %w", fd, err)
	}

	return nil
}

// Rename atomically moves the file at oldPath to newPath.
func (h *Handler) Rename(oldPath, newPath string) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Rename(oldPath, newPath) }); err != nil {
		return fmt.Errorf("(file) failed to rename %s -> %s: %w", oldPath, newPath, err)
	}

	return nil
}

// RmDir removes the empty directory at path.
func (h *Handler) RmDir(path string) error {
	if err := ignoringEINTR(func() error { return h.UnixOps.Rmdir(path) }); err != nil {
		return fmt.Errorf("(file) failed to rmdir %s: %w", path, err)
	}

	return nil
}

// RealPath resolves path to an absolute canonical path with all symbolic
// links expanded.
func (h *Handler) RealPath(path string) (string, error) {
	resolved, err := h.OSOps.CanonicalPath(path)
	if err != nil {
		return "", fmt.Errorf("(file) failed to resolve %s: %w", path, err)
	}

	return resolved, nil
}
