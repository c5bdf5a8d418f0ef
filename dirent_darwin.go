package syspal

import (
	"encoding/binary"
	"errors"
)

// dirent layout with 64-bit inodes (sys/dirent.h):
//
//	struct dirent {
//	    __uint64_t d_ino;      // 8 bytes  (offset 0)
//	    __uint64_t d_seekoff;  // 8 bytes  (offset 8)
//	    __uint16_t d_reclen;   // 2 bytes  (offset 16)
//	    __uint16_t d_namlen;   // 2 bytes  (offset 18)
//	    __uint8_t  d_type;     // 1 byte   (offset 20)
//	    char       d_name[];   // variable (offset 21)
//	};
//
// Unlike the Linux record, this host family carries an explicit d_namlen,
// so no terminator scan is needed.
const (
	direntInoOffset    = 0
	direntReclenOffset = 16
	direntNamlenOffset = 18
	direntTypeOffset   = 20
	direntNameOffset   = 21
	direntMinSize      = direntNameOffset
)

var errInvalidDirent = errors.New("invalid dirent record")

// parseDirent extracts the first native record from data, returning the
// normalized entry and the unconsumed remainder. The entry name borrows
// from data.
func parseDirent(data []byte) (DirEntry, []byte, error) {
	if len(data) < direntMinSize {
		return DirEntry{}, nil, errInvalidDirent
	}

	reclen := int(binary.NativeEndian.Uint16(data[direntReclenOffset:]))
	if reclen < direntMinSize || reclen > len(data) {
		return DirEntry{}, nil, errInvalidDirent
	}

	record := data[:reclen]
	rest := data[reclen:]

	namlen := int(binary.NativeEndian.Uint16(data[direntNamlenOffset:]))
	if direntNameOffset+namlen > reclen {
		return DirEntry{}, nil, errInvalidDirent
	}

	ent := DirEntry{
		Name: record[direntNameOffset : direntNameOffset+namlen],
		Ino:  binary.NativeEndian.Uint64(record[direntInoOffset:]),
		Type: EntryType(record[direntTypeOffset]),
	}

	return ent, rest, nil
}
