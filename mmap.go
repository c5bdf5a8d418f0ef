package syspal

import (
	"fmt"
)

// MMap maps length bytes of the descriptor at offset into memory and
// returns the mapped region. Protection and visibility flags are validated
// and translated before the native call; fd may be -1 for anonymous
// mappings. The region stays valid until passed to MUnmap, its paired
// release operation.
func (h *Handler) MMap(fd int, offset int64, length int, prot MapProt, flags MapFlag) ([]byte, error) {
	nativeProt, err := translateMapProt(prot)
	if err != nil {
		return nil, err
	}

	nativeFlags, err := translateMapFlags(flags)
	if err != nil {
		return nil, err
	}

	if length <= 0 || offset < 0 {
		return nil, fmt.Errorf("(mmap) %w: region %d+%d", ErrInvalidArgument, offset, length)
	}

	region, err := h.UnixOps.Mmap(fd, offset, length, nativeProt, nativeFlags)
	if err != nil {
		return nil, fmt.Errorf("(mmap) failed to map fd %d: %w", fd, err)
	}

	return region, nil
}

// MUnmap releases a region returned by MMap. The region must not be
// touched afterwards.
func (h *Handler) MUnmap(region []byte) error {
	if err := h.UnixOps.Munmap(region); err != nil {
		return fmt.Errorf("(mmap) failed to unmap region: %w", err)
	}

	return nil
}

// MAdvise passes a portable hint about a mapped region to the kernel.
func (h *Handler) MAdvise(region []byte, advice MemoryAdvice) error {
	switch advice {
	case AdviceDontFork:
		if h.memAdvise == nil {
			return fmt.Errorf("(mmap) madvise: %w", ErrNotSupported)
		}

		if err := h.memAdvise.MadviseDontFork(region); err != nil {
			return fmt.Errorf("(mmap) failed to madvise region: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("(mmap) %w: memory advice %d", ErrInvalidFlags, advice)
	}
}

// MSync flushes changes in a mapped region according to the portable sync
// flag set.
func (h *Handler) MSync(region []byte, flags SyncFlag) error {
	native, err := translateSyncFlags(flags)
	if err != nil {
		return err
	}

	if err := h.UnixOps.Msync(region, native); err != nil {
		return fmt.Errorf("(mmap) failed to msync region: %w", err)
	}

	return nil
}
