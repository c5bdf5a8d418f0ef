package syspal

import (
	"encoding/binary"
	"errors"
)

// linux_dirent64 layout (linux/dirent.h):
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    // 8 bytes  (offset 0)
//	    off64_t        d_off;    // 8 bytes  (offset 8)
//	    unsigned short d_reclen; // 2 bytes  (offset 16)
//	    unsigned char  d_type;   // 1 byte   (offset 18)
//	    char           d_name[]; // variable (offset 19)
//	};
//
// Records are parsed in place from the raw getdents64 buffer; field reads
// go through encoding/binary, so no buffer alignment is required. There is
// no d_namlen on this host family: the name length is found by scanning
// for the NUL terminator.
const (
	direntInoOffset    = 0
	direntReclenOffset = 16
	direntTypeOffset   = 18
	direntNameOffset   = 19
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

	name := record[direntNameOffset:]
	for i, b := range name {
		if b == 0 {
			name = name[:i]

			break
		}
	}

	ent := DirEntry{
		Name: name,
		Ino:  binary.NativeEndian.Uint64(record[direntInoOffset:]),
		Type: EntryType(record[direntTypeOffset]),
	}

	return ent, rest, nil
}
