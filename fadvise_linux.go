package syspal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// translateFileAdvice converts a portable access-pattern hint to the
// native posix_fadvise constant, which may differ per platform.
func translateFileAdvice(advice FileAdvice) (int, error) {
	switch advice {
	case AdviceNormal:
		return unix.FADV_NORMAL, nil
	case AdviceRandom:
		return unix.FADV_RANDOM, nil
	case AdviceSequential:
		return unix.FADV_SEQUENTIAL, nil
	case AdviceWillNeed:
		return unix.FADV_WILLNEED, nil
	case AdviceDontNeed:
		return unix.FADV_DONTNEED, nil
	case AdviceNoReuse:
		return unix.FADV_NOREUSE, nil
	default:
		return 0, fmt.Errorf("(flags) %w: file advice %d", ErrInvalidFlags, advice)
	}
}
