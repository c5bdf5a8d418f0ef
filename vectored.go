package syspal

import "fmt"

// The emulated scatter/gather path iterates the vector list with one
// positional call per entry at successively advancing offsets. It must
// reproduce the native partial-transfer semantics exactly:
//
//   - a failing entry returns the error only if no prior entry succeeded;
//     otherwise the bytes accumulated so far are returned as a success;
//   - an entry completing short (end of file, out of space, signal) stops
//     the transfer immediately with the partial total, without touching
//     the remaining vector entries.

// preadVEmulated emulates a positional scatter read.
func (h *Handler) preadVEmulated(fd int, vectors [][]byte, offset int64) (int64, error) {
	var total int64

	for _, v := range vectors {
		n, err := ignoringEINTR2(func() (int, error) {
			return h.UnixOps.Pread(fd, v, offset+total)
		})
		if err != nil {
			if total > 0 {
				return total, nil
			}

			return -1, fmt.Errorf("(io) failed to pread fd %d: %w", fd, err)
		}

		total += int64(n)

		if n != len(v) {
			return total, nil
		}
	}

	return total, nil
}

// pwriteVEmulated emulates a positional gather write.
func (h *Handler) pwriteVEmulated(fd int, vectors [][]byte, offset int64) (int64, error) {
	var total int64

	for _, v := range vectors {
		n, err := ignoringEINTR2(func() (int, error) {
			return h.UnixOps.Pwrite(fd, v, offset+total)
		})
		if err != nil {
			if total > 0 {
				return total, nil
			}

			return -1, fmt.Errorf("(io) failed to pwrite fd %d: %w", fd, err)
		}

		total += int64(n)

		if n != len(v) {
			return total, nil
		}
	}

	return total, nil
}
