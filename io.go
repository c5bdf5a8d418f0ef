package syspal

import (
	"fmt"
)

// Read reads up to len(p) bytes from the descriptor's current offset.
func (h *Handler) Read(fd int, p []byte) (int, error) {
	n, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Read(fd, p) })
	if err != nil {
		return -1, fmt.Errorf("(io) failed to read fd %d: %w", fd, err)
	}

	return n, nil
}

// Write writes up to len(p) bytes at the descriptor's current offset.
// Partial writes are possible and reported through the returned count.
func (h *Handler) Write(fd int, p []byte) (int, error) {
	n, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Write(fd, p) })
	if err != nil {
		return -1, fmt.Errorf("(io) failed to write fd %d: %w", fd, err)
	}

	return n, nil
}

// PRead reads up to len(p) bytes at offset without moving the descriptor's
// offset.
func (h *Handler) PRead(fd int, p []byte, offset int64) (int, error) {
	if offset < 0 {
		return -1, fmt.Errorf("(io) %w: negative offset %d", ErrInvalidArgument, offset)
	}

	n, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Pread(fd, p, offset) })
	if err != nil {
		return -1, fmt.Errorf("(io) failed to pread fd %d: %w", fd, err)
	}

	return n, nil
}

// PWrite writes up to len(p) bytes at offset without moving the
// descriptor's offset.
func (h *Handler) PWrite(fd int, p []byte, offset int64) (int, error) {
	if offset < 0 {
		return -1, fmt.Errorf("(io) %w: negative offset %d", ErrInvalidArgument, offset)
	}

	n, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Pwrite(fd, p, offset) })
	if err != nil {
		return -1, fmt.Errorf("(io) failed to pwrite fd %d: %w", fd, err)
	}

	return n, nil
}

// PReadV performs one positional scatter read over the vector list at
// offset, returning the total bytes transferred. The vector list is not
// modified and must not be mutated for the duration of the call. The
// native vectored call is used where available; otherwise the transfer is
// emulated with identical partial-transfer semantics (see vectored.go).
func (h *Handler) PReadV(fd int, vectors [][]byte, offset int64) (int64, error) {
	if offset < 0 {
		return -1, fmt.Errorf("(io) %w: negative offset %d", ErrInvalidArgument, offset)
	}

	if h.vecReader != nil && !h.cfg.ForceVectoredEmulation {
		n, err := ignoringEINTR2(func() (int, error) {
			return h.vecReader.Preadv(fd, vectors, offset)
		})
		if err != nil {
			return -1, fmt.Errorf("(io) failed to preadv fd %d: %w", fd, err)
		}

		return int64(n), nil
	}

	return h.preadVEmulated(fd, vectors, offset)
}

// PWriteV performs one positional gather write over the vector list at
// offset, returning the total bytes transferred. Semantics mirror PReadV.
func (h *Handler) PWriteV(fd int, vectors [][]byte, offset int64) (int64, error) {
	if offset < 0 {
		return -1, fmt.Errorf("(io) %w: negative offset %d", ErrInvalidArgument, offset)
	}

	if h.vecWriter != nil && !h.cfg.ForceVectoredEmulation {
		n, err := ignoringEINTR2(func() (int, error) {
			return h.vecWriter.Pwritev(fd, vectors, offset)
		})
		if err != nil {
			return -1, fmt.Errorf("(io) failed to pwritev fd %d: %w", fd, err)
		}

		return int64(n), nil
	}

	return h.pwriteVEmulated(fd, vectors, offset)
}
