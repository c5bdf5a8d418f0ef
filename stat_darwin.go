package syspal

import "golang.org/x/sys/unix"

// statTimes returns the nanosecond-resolution timestamps of a native stat
// result.
func statTimes(st *unix.Stat_t) (atim, mtim, ctim unix.Timespec) {
	return st.Atimespec, st.Mtimespec, st.Ctimespec
}

// statExtras populates the optional status fields this platform exposes:
// the creation ("birth") timestamp and the user-hidden flag.
func statExtras(st *unix.Stat_t, out *FileStatus) {
	out.BirthTime, out.BirthTimeNsec = st.Birthtimespec.Unix()
	out.Flags |= StatusHasBirthTime

	out.Hidden = st.Flags&unix.UF_HIDDEN == unix.UF_HIDDEN
	out.Flags |= StatusHasHiddenFlag
}
