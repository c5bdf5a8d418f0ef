package syspal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// EntryType classifies a directory entry. The numbering is the canonical
// (mainstream) d_type space; it is stable across hosts because the
// normalizer translates where the native values differ or are absent.
type EntryType uint8

const (
	// TypeUnknown is substituted on hosts whose directory entries carry no
	// type field. Callers are expected to fall back to a separate Stat
	// call to resolve the true type.
	TypeUnknown     EntryType = 0
	TypeFIFO        EntryType = 1
	TypeCharDevice  EntryType = 2
	TypeDirectory   EntryType = 4
	TypeBlockDevice EntryType = 6
	TypeRegular     EntryType = 8
	TypeSymlink     EntryType = 10
	TypeSocket      EntryType = 12
	TypeWhiteout    EntryType = 14
)

// DirEntry is one enumerated directory entry. Name is a borrowed view into
// the enumeration buffer: it is valid only until the next Read or Close on
// the same cursor and must be copied out to outlive it. On the end-of-stream
// and failure paths the whole record is zeroed, so stale content is never
// observed.
type DirEntry struct {
	Name []byte
	Ino  uint64
	Type EntryType
}

// minDirScratchSize is the smallest scratch buffer that can hold one
// maximum-size native directory record.
const minDirScratchSize = 512

// dirScratchSize is the recommended scratch buffer size for the reentrant
// strategy, amortizing one native read over many entries.
const dirScratchSize = 8192

// ReadDirBufferSize reports the scratch buffer size a caller should supply
// to [DirCursor.Read] when the reentrant enumeration strategy is in use.
func (h *Handler) ReadDirBufferSize() int {
	return dirScratchSize
}

// DirCursor is a stateful enumeration handle over one directory's entries:
// Open, then repeated Reads each yielding an entry, ErrEndOfEntries or a
// failure, then Close. A cursor must not be closed while a Read on it is
// still in flight.
//
// With the reentrant strategy the caller supplies (and retains ownership
// of) a scratch buffer, which must be the same buffer across Reads on one
// cursor; distinct cursors are independently thread-safe. With the
// non-reentrant strategy entry storage is cursor-owned and reads on the
// same cursor must be caller-serialized.
type DirCursor struct {
	h  *Handler
	fd int

	reentrant bool

	// pending is the unparsed remainder of the last native read; entry
	// names point into it.
	pending []byte

	// owned backs pending under the non-reentrant strategy.
	owned []byte

	// errIndicator implements the non-reentrant disambiguation protocol;
	// see readStream.
	errIndicator error
}

// OpenDir opens an enumeration cursor over the directory at path.
func (h *Handler) OpenDir(path string) (*DirCursor, error) {
	// EINTR on opendir is undocumented but happens in practice on BSD
	// descendants.
	fd, err := ignoringEINTR2(func() (int, error) {
		return h.UnixOps.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	})
	if err != nil {
		return nil, fmt.Errorf("(dir) failed to open %s: %w", path, err)
	}

	c := &DirCursor{
		h:         h,
		fd:        fd,
		reentrant: !h.cfg.NonReentrantDirStrategy,
	}
	if !c.reentrant {
		c.owned = make([]byte, dirScratchSize)
	}

	return c, nil
}

// Read advances the cursor by one entry. It returns nil and fills out on
// success, ErrEndOfEntries exactly once at the end of the stream, or the
// failure. out is fully zeroed on every non-success outcome. scratch is
// required by the reentrant strategy and ignored by the non-reentrant one.
func (c *DirCursor) Read(scratch []byte, out *DirEntry) error {
	if c.reentrant {
		return c.readReentrant(scratch, out)
	}

	return c.readStream(out)
}

// readReentrant implements the caller-buffered strategy: scratch capacity
// is validated up front, a batch of native records is read into it, and
// records are handed out one at a time with names borrowed from scratch.
func (c *DirCursor) readReentrant(scratch []byte, out *DirEntry) error {
	if len(c.pending) == 0 {
		if len(scratch) < minDirScratchSize {
			*out = DirEntry{}

			return fmt.Errorf("(dir) %w: need at least %d bytes, got %d",
				ErrBufferTooSmall, minDirScratchSize, len(scratch))
		}

		n, err := ignoringEINTR2(func() (int, error) {
			return c.h.UnixOps.ReadDirent(c.fd, scratch)
		})
		if err != nil {
			*out = DirEntry{}

			return fmt.Errorf("(dir) failed to read entries: %w", err)
		}
		if n == 0 {
			*out = DirEntry{}

			return ErrEndOfEntries
		}

		c.pending = scratch[:n]
	}

	return c.yield(out)
}

// readStream implements the non-reentrant strategy over cursor-owned
// storage. The native stream call reports end-of-stream and failure
// identically (no entry produced), so the error indicator is cleared
// before the call and re-checked afterwards to tell the two apart.
// Collapsing this protocol would silently convert legitimate end-of-stream
// into a reported error on affected hosts.
func (c *DirCursor) readStream(out *DirEntry) error {
	if len(c.pending) == 0 {
		c.errIndicator = nil

		n := c.fillOwned()
		if n == 0 {
			*out = DirEntry{}

			if c.errIndicator != nil {
				return fmt.Errorf("(dir) failed to read entries: %w", c.errIndicator)
			}

			return ErrEndOfEntries
		}

		c.pending = c.owned[:n]
	}

	return c.yield(out)
}

// fillOwned refills the cursor-owned buffer, recording any failure in the
// error indicator rather than returning it, to mirror the native stream
// signaling that readStream has to disambiguate.
func (c *DirCursor) fillOwned() int {
	n, err := ignoringEINTR2(func() (int, error) {
		return c.h.UnixOps.ReadDirent(c.fd, c.owned)
	})
	if err != nil {
		c.errIndicator = err

		return 0
	}

	return n
}

// yield parses the next native record out of pending into out.
func (c *DirCursor) yield(out *DirEntry) error {
	ent, rest, err := parseDirent(c.pending)
	if err != nil {
		*out = DirEntry{}
		c.pending = nil

		return fmt.Errorf("(dir) %w", err)
	}

	c.pending = rest
	*out = ent

	return nil
}

// Close releases the cursor. Any borrowed entry names become invalid.
func (c *DirCursor) Close() error {
	c.pending = nil
	c.owned = nil

	err := c.h.UnixOps.Close(c.fd)
	c.fd = -1

	// EINTR on closedir is undocumented but happens in practice on BSD
	// descendants; the stream is gone either way.
	if err == unix.EINTR {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("(dir) failed to close cursor: %w", err)
	}

	return nil
}
