package syspal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// StatusFlags marks which optional [FileStatus] fields the host actually
// populated. An absent field is explicitly absent, not merely zero, so
// callers can detect the behavioral difference between hosts.
type StatusFlags uint32

const (
	// StatusHasBirthTime is set when the host exposes a creation time.
	StatusHasBirthTime StatusFlags = 1 << iota

	// StatusHasHiddenFlag is set when the host stat record carries user
	// flags and the hidden bit could be inspected.
	StatusHasHiddenFlag
)

// FileStatus is the canonical file-status record. Numeric fields are
// widened to fixed-width types regardless of the native struct layout. A
// record is constructed fresh per call and handed to the caller whole;
// nothing is cached.
type FileStatus struct {
	Dev  int64
	Ino  int64
	Mode uint32
	Uid  uint32
	Gid  uint32
	Size int64

	ATime     int64
	ATimeNsec int64
	MTime     int64
	MTimeNsec int64
	CTime     int64
	CTimeNsec int64

	// BirthTime fields are populated only when Flags carries
	// StatusHasBirthTime.
	BirthTime     int64
	BirthTimeNsec int64

	// Hidden is meaningful only when Flags carries StatusHasHiddenFlag.
	Hidden bool

	Flags StatusFlags
}

// normalizeStatus converts a native stat result into the canonical record.
// Sub-second fields come from the platform accessors in stat_GOOS.go; hosts
// without sub-second resolution report zero nanoseconds there.
func normalizeStatus(st *unix.Stat_t, out *FileStatus) {
	*out = FileStatus{
		Dev:  int64(st.Dev),
		Ino:  int64(st.Ino),
		Mode: uint32(st.Mode),
		Uid:  st.Uid,
		Gid:  st.Gid,
		Size: st.Size,
	}

	atim, mtim, ctim := statTimes(st)
	out.ATime, out.ATimeNsec = atim.Unix()
	out.MTime, out.MTimeNsec = mtim.Unix()
	out.CTime, out.CTimeNsec = ctim.Unix()

	statExtras(st, out)
}

// Stat retrieves the canonical status record for the file at path,
// following symbolic links.
func (h *Handler) Stat(path string, out *FileStatus) error {
	var st unix.Stat_t
	if err := ignoringEINTR(func() error { return h.UnixOps.Stat(path, &st) }); err != nil {
		return fmt.Errorf("(stat) failed to stat %s: %w", path, err)
	}

	normalizeStatus(&st, out)

	return nil
}

// LStat retrieves the canonical status record for the file at path without
// following a trailing symbolic link.
func (h *Handler) LStat(path string, out *FileStatus) error {
	var st unix.Stat_t
	if err := ignoringEINTR(func() error { return h.UnixOps.Lstat(path, &st) }); err != nil {
		return fmt.Errorf("(stat) failed to lstat %s: %w", path, err)
	}

	normalizeStatus(&st, out)

	return nil
}

// FStat retrieves the canonical status record for an open descriptor.
func (h *Handler) FStat(fd int, out *FileStatus) error {
	var st unix.Stat_t
	if err := ignoringEINTR(func() error { return h.UnixOps.Fstat(fd, &st) }); err != nil {
		return fmt.Errorf("(stat) failed to fstat fd %d: %w", fd, err)
	}

	normalizeStatus(&st, out)

	return nil
}

// CanGetHiddenFlag reports whether status records on this host can carry
// the hidden flag at all.
func (h *Handler) CanGetHiddenFlag() bool {
	return h.hiddenFlag
}
