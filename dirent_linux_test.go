package syspal

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDirent encodes one native directory record the way the kernel lays
// it out, with the name NUL-terminated and the record padded to 8 bytes.
func buildDirent(ino uint64, typ EntryType, name string) []byte {
	reclen := (direntNameOffset + len(name) + 1 + 7) &^ 7

	rec := make([]byte, reclen)
	binary.NativeEndian.PutUint64(rec[direntInoOffset:], ino)
	binary.NativeEndian.PutUint16(rec[direntReclenOffset:], uint16(reclen))
	rec[direntTypeOffset] = byte(typ)
	copy(rec[direntNameOffset:], name)

	return rec
}

func TestParseDirent_SingleRecord(t *testing.T) {
	t.Parallel()

	data := buildDirent(1234, TypeRegular, "file.txt")

	ent, rest, err := parseDirent(data)
	require.NoError(t, err)
	assert.Equal(t, "file.txt", string(ent.Name))
	assert.Equal(t, uint64(1234), ent.Ino)
	assert.Equal(t, TypeRegular, ent.Type)
	assert.Empty(t, rest)
}

func TestParseDirent_InvalidRecordLength(t *testing.T) {
	t.Parallel()

	data := buildDirent(1, TypeRegular, "x")

	// A record length pointing past the buffer means corruption, not a
	// short read; it must be rejected.
	binary.NativeEndian.PutUint16(data[direntReclenOffset:], uint16(len(data)+64))

	_, _, err := parseDirent(data)
	require.Error(t, err)

	_, _, err = parseDirent(data[:direntMinSize-1])
	require.Error(t, err)
}

// enumerateAll drains a cursor, returning the copied-out entries. It fails
// the test unless the stream ends with exactly one end-of-entries result
// and a zeroed record.
func enumerateAll(t *testing.T, c *DirCursor, scratch []byte) []DirEntry {
	t.Helper()

	var entries []DirEntry
	for {
		var out DirEntry
		err := c.Read(scratch, &out)
		if err != nil {
			require.ErrorIs(t, err, ErrEndOfEntries)
			assert.Equal(t, DirEntry{}, out)

			return entries
		}

		entries = append(entries, DirEntry{
			Name: append([]byte(nil), out.Name...),
			Ino:  out.Ino,
			Type: out.Type,
		})
	}
}

func TestDirCursor_EnumeratesBatches(t *testing.T) {
	t.Parallel()

	batches := [][]byte{
		append(buildDirent(1, TypeDirectory, "."), buildDirent(2, TypeDirectory, "..")...),
		buildDirent(3, TypeRegular, "data.bin"),
		buildDirent(4, TypeSymlink, "link"),
	}

	fu := &fakeUnix{
		readDirentFn: func(fd int, buf []byte) (int, error) {
			if len(batches) == 0 {
				return 0, nil
			}

			n := copy(buf, batches[0])
			batches = batches[1:]

			return n, nil
		},
	}

	h := NewHandler(nil, fu, Config{})
	c := &DirCursor{h: h, fd: 7, reentrant: true}

	entries := enumerateAll(t, c, make([]byte, h.ReadDirBufferSize()))

	require.Len(t, entries, 4)
	assert.Equal(t, ".", string(entries[0].Name))
	assert.Equal(t, "..", string(entries[1].Name))
	assert.Equal(t, "data.bin", string(entries[2].Name))
	assert.Equal(t, TypeRegular, entries[2].Type)
	assert.Equal(t, uint64(4), entries[3].Ino)
	assert.Equal(t, TypeSymlink, entries[3].Type)
}

// The implementation-buffered strategy must produce the same entry stream
// as the caller-buffered one.
func TestDirCursor_EnumeratesOwnedBuffer(t *testing.T) {
	t.Parallel()

	batches := [][]byte{
		buildDirent(10, TypeRegular, "a"),
		buildDirent(11, TypeRegular, "b"),
	}

	fu := &fakeUnix{
		readDirentFn: func(fd int, buf []byte) (int, error) {
			if len(batches) == 0 {
				return 0, nil
			}

			n := copy(buf, batches[0])
			batches = batches[1:]

			return n, nil
		},
	}

	h := NewHandler(nil, fu, Config{NonReentrantDirStrategy: true})
	c := &DirCursor{h: h, fd: 7, owned: make([]byte, dirScratchSize)}

	entries := enumerateAll(t, c, nil)

	require.Len(t, entries, 2)
	assert.Equal(t, "a", string(entries[0].Name))
	assert.Equal(t, "b", string(entries[1].Name))
}
