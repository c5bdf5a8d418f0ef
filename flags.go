package syspal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// The portable flag vocabularies below use a stable, platform-independent
// numbering. Native constants can differ per OS family, so every value is
// validated and translated before it reaches a native call; unknown bits are
// rejected, never silently ignored.

// OpenFlag is the portable flag set for [Handler.Open].
type OpenFlag int32

const (
	OpenReadOnly  OpenFlag = 0x0000
	OpenWriteOnly OpenFlag = 0x0001
	OpenReadWrite OpenFlag = 0x0002

	OpenCloseOnExec OpenFlag = 0x0010
	OpenCreate      OpenFlag = 0x0020
	OpenExclusive   OpenFlag = 0x0040
	OpenTruncate    OpenFlag = 0x0080
	OpenSync        OpenFlag = 0x0100

	openAccessModeMask OpenFlag = 0x000F
)

// MapProt is the portable memory-mapping protection set for [Handler.MMap].
type MapProt int32

const (
	// ProtNone is a distinct zero value, not an unset bitmask.
	ProtNone  MapProt = 0x0
	ProtRead  MapProt = 0x1
	ProtWrite MapProt = 0x2
	ProtExec  MapProt = 0x4
)

// MapFlag is the portable mapping-visibility set for [Handler.MMap].
type MapFlag int32

const (
	MapShared    MapFlag = 0x01
	MapPrivate   MapFlag = 0x02
	MapAnonymous MapFlag = 0x10
)

// SyncFlag is the portable msync mode set for [Handler.MSync].
type SyncFlag int32

const (
	SyncSynchronous  SyncFlag = 0x1
	SyncAsynchronous SyncFlag = 0x2
	SyncInvalidate   SyncFlag = 0x10
)

// LockType is the portable region-lock kind for [Handler.LockFileRegion].
type LockType int16

const (
	LockRead   LockType = 0
	LockWrite  LockType = 1
	LockUnlock LockType = 2
)

// FileAdvice is the portable access-pattern hint for [Handler.PosixFAdvise].
type FileAdvice int32

const (
	AdviceNormal FileAdvice = iota
	AdviceRandom
	AdviceSequential
	AdviceWillNeed
	AdviceDontNeed
	AdviceNoReuse
)

// MemoryAdvice is the portable mapped-region hint for [Handler.MAdvise].
type MemoryAdvice int32

const (
	AdviceDontFork MemoryAdvice = 101
)

// AccessMode is the portable accessibility-check set for [Handler.Access].
// The numeric values are specified by POSIX and identical on all targets.
type AccessMode int32

const (
	AccessExists  AccessMode = 0x0
	AccessExecute AccessMode = 0x1
	AccessWrite   AccessMode = 0x2
	AccessRead    AccessMode = 0x4
)

// translateOpenFlags converts a portable open flag set to native bits.
// Exactly one access mode must be present; any bit outside the known set
// fails with [ErrInvalidFlags] before the native call is attempted.
func translateOpenFlags(flags OpenFlag) (int, error) {
	var native int

	switch flags & openAccessModeMask {
	case OpenReadOnly:
		native = unix.O_RDONLY
	case OpenWriteOnly:
		native = unix.O_WRONLY
	case OpenReadWrite:
		native = unix.O_RDWR
	default:
		return 0, fmt.Errorf("(flags) %w: access mode %#x", ErrInvalidFlags, int32(flags&openAccessModeMask))
	}

	known := openAccessModeMask | OpenCloseOnExec | OpenCreate | OpenExclusive | OpenTruncate | OpenSync
	if flags&^known != 0 {
		return 0, fmt.Errorf("(flags) %w: open flags %#x", ErrInvalidFlags, int32(flags&^known))
	}

	if flags&OpenCloseOnExec != 0 {
		native |= unix.O_CLOEXEC
	}
	if flags&OpenCreate != 0 {
		native |= unix.O_CREAT
	}
	if flags&OpenExclusive != 0 {
		native |= unix.O_EXCL
	}
	if flags&OpenTruncate != 0 {
		native |= unix.O_TRUNC
	}
	if flags&OpenSync != 0 {
		native |= unix.O_SYNC
	}

	return native, nil
}

// translateMapProt converts portable protection bits to native bits.
// ProtNone is a distinct case, not an absence of bits.
func translateMapProt(prot MapProt) (int, error) {
	if prot == ProtNone {
		return unix.PROT_NONE, nil
	}

	if prot&^(ProtRead|ProtWrite|ProtExec) != 0 {
		return 0, fmt.Errorf("(flags) %w: protection %#x", ErrInvalidFlags, int32(prot))
	}

	var native int
	if prot&ProtRead != 0 {
		native |= unix.PROT_READ
	}
	if prot&ProtWrite != 0 {
		native |= unix.PROT_WRITE
	}
	if prot&ProtExec != 0 {
		native |= unix.PROT_EXEC
	}

	return native, nil
}

// translateMapFlags converts portable mapping-visibility bits to native bits.
func translateMapFlags(flags MapFlag) (int, error) {
	if flags&^(MapShared|MapPrivate|MapAnonymous) != 0 {
		return 0, fmt.Errorf("(flags) %w: map flags %#x", ErrInvalidFlags, int32(flags))
	}

	var native int
	if flags&MapShared != 0 {
		native |= unix.MAP_SHARED
	}
	if flags&MapPrivate != 0 {
		native |= unix.MAP_PRIVATE
	}
	if flags&MapAnonymous != 0 {
		native |= unix.MAP_ANON
	}

	return native, nil
}

// translateSyncFlags converts portable msync bits to native bits.
func translateSyncFlags(flags SyncFlag) (int, error) {
	if flags&^(SyncSynchronous|SyncAsynchronous|SyncInvalidate) != 0 {
		return 0, fmt.Errorf("(flags) %w: msync flags %#x", ErrInvalidFlags, int32(flags))
	}

	var native int
	if flags&SyncSynchronous != 0 {
		native |= unix.MS_SYNC
	}
	if flags&SyncAsynchronous != 0 {
		native |= unix.MS_ASYNC
	}
	if flags&SyncInvalidate != 0 {
		native |= unix.MS_INVALIDATE
	}

	return native, nil
}

// translateLockType converts a portable lock kind to the native lock-type
// constant. An explicit three-way switch is required because native F_RDLCK,
// F_WRLCK and F_UNLCK values are not portable across OS families, even
// though POSIX defines the concept.
func translateLockType(lockType LockType) (int16, error) {
	switch lockType {
	case LockRead:
		return unix.F_RDLCK, nil
	case LockWrite:
		return unix.F_WRLCK, nil
	case LockUnlock:
		return unix.F_UNLCK, nil
	default:
		return 0, fmt.Errorf("(flags) %w: lock type %d", ErrInvalidFlags, lockType)
	}
}

// translateAccessMode validates a portable accessibility-check set.
// The bit values are POSIX-fixed, so validation is the only required step.
func translateAccessMode(mode AccessMode) (uint32, error) {
	if mode&^(AccessExecute|AccessWrite|AccessRead) != 0 {
		return 0, fmt.Errorf("(flags) %w: access mode %#x", ErrInvalidFlags, int32(mode))
	}

	return uint32(mode), nil
}
