package syspal

import (
	"errors"

	"golang.org/x/sys/unix"
)

var (
	// ErrInvalidFlags is an error that occurs when a portable flag set
	// contains bits outside the known vocabulary, or an invalid combination
	// of access-mode bits. It is reported before any native call is made.
	ErrInvalidFlags = errors.New("unrecognized or conflicting flag bits")

	// ErrInvalidArgument is an error that occurs when an argument is
	// malformed (negative offsets or lengths, nil required buffers). It is
	// reported before any native call is made.
	ErrInvalidArgument = errors.New("invalid argument combination")

	// ErrNotSupported is an error that occurs when the requested capability
	// does not exist on the current host. Callers may ignore it when the
	// requested operation was advisory.
	ErrNotSupported = errors.New("not supported on this platform")

	// ErrEndOfEntries signals the end of a directory stream. It is not a
	// failure; exactly one ErrEndOfEntries concludes every full enumeration.
	ErrEndOfEntries = errors.New("end of directory entries")

	// ErrBufferTooSmall is an error that occurs when a caller-supplied
	// scratch buffer is below the size reported by [Handler.ReadDirBufferSize].
	ErrBufferTooSmall = errors.New("scratch buffer too small")

	// ErrChecksumMismatch is an error that occurs when post-copy
	// verification finds a source/destination digest mismatch, which
	// usually means underlying transfer or hardware issues.
	ErrChecksumMismatch = errors.New("checksum mismatch between source and destination")
)

// Errno extracts the native error code from err, if one is present.
// The host's error-code space is extended by the implementation-defined
// sentinels above, which carry no native code.
func Errno(err error) (unix.Errno, bool) {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno, true
	}

	return 0, false
}

// isNotSupported reports whether a native error means the requested
// capability does not exist, as opposed to an ordinary failure.
func isNotSupported(err error) bool {
	return errors.Is(err, unix.ENOSYS) ||
		errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP)
}
