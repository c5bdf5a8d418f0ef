// Package syspal is a platform-abstraction layer over the POSIX file,
// directory, memory-mapping, locking and filesystem-introspection surface.
//
// One fixed call surface is exposed through [Handler]; the behavioral
// divergence of the underlying OS families (flag values, stat layouts,
// accelerated copy primitives, directory enumeration, error signaling) is
// normalized internally. Operations execute synchronously on the calling
// goroutine; operations on distinct descriptors and cursors are safe to use
// concurrently, while per-descriptor serialization is the caller's
// responsibility. Every resource-acquiring operation has a paired explicit
// release operation; nothing is released implicitly.
package syspal

import (
	"log/slog"

	"golang.org/x/sys/unix"
)

// osProvider is the subset of portable, path-level operations the PAL
// delegates to the standard library.
type osProvider interface {
	CanonicalPath(path string) (string, error)
}

// unixProvider is the native syscall surface required on every target.
// Platform-only primitives are not part of this interface; they are
// discovered through the capability interfaces below.
type unixProvider interface {
	Open(path string, mode int, perm uint32) (int, error)
	Close(fd int) error
	FcntlInt(fd uintptr, cmd int, arg int) (int, error)
	Unlink(path string) error
	Mkdir(path string, mode uint32) error
	Chmod(path string, mode uint32) error
	Fchmod(fd int, mode uint32) error
	Fsync(fd int) error
	Sync() error
	Flock(fd int, how int) error
	FcntlFlock(fd uintptr, cmd int, lk *unix.Flock_t) error
	Chdir(path string) error
	Faccessat(dirfd int, path string, mode uint32, flags int) error
	Seek(fd int, offset int64, whence int) (int64, error)
	Link(oldpath, newpath string) error
	Symlink(oldpath, newpath string) error
	Readlink(path string, buf []byte) (int, error)
	Ftruncate(fd int, length int64) error
	Rename(oldpath, newpath string) error
	Rmdir(path string) error
	Read(fd int, p []byte) (int, error)
	Write(fd int, p []byte) (int, error)
	Pread(fd int, p []byte, offset int64) (int, error)
	Pwrite(fd int, p []byte, offset int64) (int, error)
	Stat(path string, st *unix.Stat_t) error
	Lstat(path string, st *unix.Stat_t) error
	Fstat(fd int, st *unix.Stat_t) error
	Pipe(p []int, closeOnExec bool) error
	Getpagesize() int
	Mmap(fd int, offset int64, length int, prot, flags int) ([]byte, error)
	Munmap(b []byte) error
	Madvise(b []byte, advice int) error
	Msync(b []byte, flags int) error
	ReadDirent(fd int, buf []byte) (int, error)
}

// The capability interfaces model build-time divergence: a provider
// implements a capability only on targets exposing the native primitive.
// Detection happens once, at Handler construction, by type assertion, so
// there is one contract with many backends and no per-call branching.
type (
	// wholeFileCopier copies data and metadata fd-to-fd atomically in the
	// kernel (fcopyfile-class hosts).
	wholeFileCopier interface {
		CopyFileAll(srcFd, dstFd int) error
	}

	// fileCloner shares storage between two files via a copy-on-write
	// clone of the data extents.
	fileCloner interface {
		CloneFile(dstFd, srcFd int) error
	}

	// streamCopier performs a kernel-mediated streaming copy of up to
	// count bytes, returning the number of bytes actually sent.
	streamCopier interface {
		Sendfile(outFd, inFd int, count int) (int, error)
	}

	// vectorReader and vectorWriter expose native positional
	// scatter/gather I/O.
	vectorReader interface {
		Preadv(fd int, iovs [][]byte, offset int64) (int, error)
	}
	vectorWriter interface {
		Pwritev(fd int, iovs [][]byte, offset int64) (int, error)
	}

	// timesCopier sets descriptor timestamps at nanosecond resolution;
	// timesCopierLegacy is the microsecond-resolution fallback.
	timesCopier interface {
		Futimens(fd int, ts []unix.Timespec) error
	}
	timesCopierLegacy interface {
		Futimes(fd int, tv []unix.Timeval) error
	}

	// fileAllocator pre-allocates file extents without changing the
	// visible file size.
	fileAllocator interface {
		Fallocate(fd int, offset, length int64) error
	}

	// fileAdviser passes access-pattern hints for a file region.
	fileAdviser interface {
		Fadvise(fd int, offset, length int64, advice int) error
	}

	// pipeSizer reads and changes a pipe's kernel buffer size.
	pipeSizer interface {
		GetPipeSize(fd int) (int, error)
		SetPipeSize(fd int, size int) (int, error)
	}

	// fsTyper returns the native numeric filesystem type of a descriptor.
	fsTyper interface {
		FilesystemType(fd int) (int64, error)
	}

	// fsNamer returns the host's filesystem name string for a descriptor,
	// on hosts that expose only a name and no numeric type field.
	fsNamer interface {
		FilesystemName(fd int) (string, error)
	}

	// shmProvider opens and unlinks POSIX shared-memory objects.
	shmProvider interface {
		ShmOpen(name string, mode int, perm uint32) (int, error)
		ShmUnlink(name string) error
	}

	// pollProvider waits for readiness on a descriptor set.
	pollProvider interface {
		Poll(fds []unix.PollFd, timeoutMs int) (int, error)
	}

	// memAdviser passes fork-behavior hints for a mapped region.
	memAdviser interface {
		MadviseDontFork(b []byte) error
	}

	// watchProvider exposes kernel file-watch primitives.
	watchProvider interface {
		InotifyInit() (int, error)
		InotifyAddWatch(fd int, path string, mask uint32) (int, error)
		InotifyRmWatch(fd int, wd uint32) (int, error)
	}

	// hiddenFlagger reports whether the host stat record carries a
	// user-hidden flag.
	hiddenFlagger interface {
		CanGetHiddenFlag() bool
	}
)

// Config carries the tunables of a [Handler]. The zero value selects
// defaults for every field.
type Config struct {
	// CopyBufferSize is the buffer size of the manual copy tier.
	// Defaults to 80 KiB.
	CopyBufferSize int

	// VerifyCopies re-reads source and destination after CopyFile and
	// compares BLAKE3 digests.
	VerifyCopies bool

	// DisableWholeFileCopy, DisableClone and DisableSendfile force the
	// copy engine past the respective tier even where the host exposes it.
	DisableWholeFileCopy bool
	DisableClone         bool
	DisableSendfile      bool

	// ForceVectoredEmulation bypasses native preadv/pwritev in favor of
	// the per-vector emulation, for targets where the native call is
	// known to be unreliable.
	ForceVectoredEmulation bool

	// NonReentrantDirStrategy selects the implementation-buffered
	// directory enumeration strategy instead of the caller-buffered one.
	NonReentrantDirStrategy bool
}

// Handler is the PAL call surface. All operations are methods on it; the
// injected providers carry the native backends selected for this build.
type Handler struct {
	OSOps   osProvider
	UnixOps unixProvider

	cfg Config

	// Capabilities resolved once at construction.
	wholeCopier wholeFileCopier
	cloner      fileCloner
	streamer    streamCopier
	vecReader   vectorReader
	vecWriter   vectorWriter
	times       timesCopier
	timesLegacy timesCopierLegacy
	allocator   fileAllocator
	adviser     fileAdviser
	pipeSizes   pipeSizer
	fsType      fsTyper
	fsName      fsNamer
	shm         shmProvider
	poller      pollProvider
	memAdvise   memAdviser
	watcher     watchProvider
	hiddenFlag  bool
}

// NewHandler wires a Handler from its providers and detects the host's
// optional capabilities once, up front.
func NewHandler(osOps osProvider, unixOps unixProvider, cfg Config) *Handler {
	if cfg.CopyBufferSize <= 0 {
		cfg.CopyBufferSize = defaultCopyBufferSize
	}

	h := &Handler{
		OSOps:   osOps,
		UnixOps: unixOps,
		cfg:     cfg,
	}

	h.wholeCopier, _ = unixOps.(wholeFileCopier)
	h.cloner, _ = unixOps.(fileCloner)
	h.streamer, _ = unixOps.(streamCopier)
	h.vecReader, _ = unixOps.(vectorReader)
	h.vecWriter, _ = unixOps.(vectorWriter)
	h.times, _ = unixOps.(timesCopier)
	h.timesLegacy, _ = unixOps.(timesCopierLegacy)
	h.allocator, _ = unixOps.(fileAllocator)
	h.adviser, _ = unixOps.(fileAdviser)
	h.pipeSizes, _ = unixOps.(pipeSizer)
	h.fsType, _ = unixOps.(fsTyper)
	h.fsName, _ = unixOps.(fsNamer)
	h.shm, _ = unixOps.(shmProvider)
	h.poller, _ = unixOps.(pollProvider)
	h.memAdvise, _ = unixOps.(memAdviser)
	h.watcher, _ = unixOps.(watchProvider)

	if hf, ok := unixOps.(hiddenFlagger); ok {
		h.hiddenFlag = hf.CanGetHiddenFlag()
	}

	slog.Debug("Detected platform capabilities",
		"wholeFileCopy", h.wholeCopier != nil,
		"clone", h.cloner != nil,
		"sendfile", h.streamer != nil,
		"vectoredIO", h.vecReader != nil && h.vecWriter != nil,
		"futimens", h.times != nil,
		"fallocate", h.allocator != nil,
		"fadvise", h.adviser != nil,
		"pipeSizing", h.pipeSizes != nil,
		"shm", h.shm != nil,
		"inotify", h.watcher != nil,
		"hiddenFlag", h.hiddenFlag,
	)

	return h
}

// Capabilities describes which optional host primitives were detected at
// construction. It exists for diagnostics; the Handler itself never
// branches on it after startup.
type Capabilities struct {
	WholeFileCopy   bool
	CloneFile       bool
	Sendfile        bool
	VectoredIO      bool
	NanosecondTimes bool
	Fallocate       bool
	Fadvise         bool
	PipeSizing      bool
	SharedMemory    bool
	Inotify         bool
	HiddenFlag      bool
}

// Capabilities reports the detected host capabilities.
func (h *Handler) Capabilities() Capabilities {
	return Capabilities{
		WholeFileCopy:   h.wholeCopier != nil,
		CloneFile:       h.cloner != nil,
		Sendfile:        h.streamer != nil,
		VectoredIO:      h.vecReader != nil && h.vecWriter != nil,
		NanosecondTimes: h.times != nil,
		Fallocate:       h.allocator != nil,
		Fadvise:         h.adviser != nil,
		PipeSizing:      h.pipeSizes != nil,
		SharedMemory:    h.shm != nil,
		Inotify:         h.watcher != nil,
		HiddenFlag:      h.hiddenFlag,
	}
}
