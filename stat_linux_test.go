package syspal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestStat_NormalizesNativeRecord(t *testing.T) {
	t.Parallel()

	fu := &fakeUnix{
		statFn: func(path string, st *unix.Stat_t) error {
			st.Dev = 2049
			st.Ino = 424242
			st.Mode = unix.S_IFREG | 0o644
			st.Uid = 1000
			st.Gid = 1000
			st.Size = 1 << 32
			st.Atim = unix.Timespec{Sec: 1700000000, Nsec: 123}
			st.Mtim = unix.Timespec{Sec: 1700000001, Nsec: 456}
			st.Ctim = unix.Timespec{Sec: 1700000002, Nsec: 789}

			return nil
		},
	}

	h := NewHandler(nil, fu, Config{})

	var out FileStatus
	require.NoError(t, h.Stat("/x", &out))

	assert.Equal(t, int64(2049), out.Dev)
	assert.Equal(t, int64(424242), out.Ino)
	assert.Equal(t, uint32(unix.S_IFREG|0o644), out.Mode)
	assert.Equal(t, uint32(1000), out.Uid)
	assert.Equal(t, int64(1<<32), out.Size)
	assert.Equal(t, int64(1700000000), out.ATime)
	assert.Equal(t, int64(123), out.ATimeNsec)
	assert.Equal(t, int64(1700000001), out.MTime)
	assert.Equal(t, int64(456), out.MTimeNsec)
	assert.Equal(t, int64(1700000002), out.CTime)
	assert.Equal(t, int64(789), out.CTimeNsec)

	// This host exposes neither a creation time nor a hidden flag; the
	// absence must be explicit, not merely zero-valued.
	assert.Zero(t, out.Flags&StatusHasBirthTime)
	assert.Zero(t, out.Flags&StatusHasHiddenFlag)
	assert.False(t, h.CanGetHiddenFlag())
}

// A fresh record is produced per call; stale fields from a reused output
// struct must not leak through.
func TestStat_OverwritesReusedRecord(t *testing.T) {
	t.Parallel()

	fu := &fakeUnix{
		lstatFn: func(path string, st *unix.Stat_t) error {
			st.Ino = 7

			return nil
		},
	}

	h := NewHandler(nil, fu, Config{})

	out := FileStatus{Ino: 999, Size: 12345, Hidden: true, Flags: StatusHasBirthTime}
	require.NoError(t, h.LStat("/x", &out))

	assert.Equal(t, int64(7), out.Ino)
	assert.Zero(t, out.Size)
	assert.False(t, out.Hidden)
	assert.Zero(t, out.Flags)
}
