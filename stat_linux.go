package syspal

import "golang.org/x/sys/unix"

// statTimes returns the nanosecond-resolution timestamps of a native stat
// result.
func statTimes(st *unix.Stat_t) (atim, mtim, ctim unix.Timespec) {
	return st.Atim, st.Mtim, st.Ctim
}

// statExtras populates the optional status fields this platform exposes.
// Linux exposes neither a birth time through stat(2) nor user flags, so the
// capability flags stay explicitly empty and callers can detect the
// absence.
func statExtras(_ *unix.Stat_t, _ *FileStatus) {}
