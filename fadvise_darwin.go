package syspal

import "fmt"

// translateFileAdvice validates a portable access-pattern hint. This host
// has no posix_fadvise, so there is no native value to produce; the
// capability check downstream reports not-supported for valid hints.
func translateFileAdvice(advice FileAdvice) (int, error) {
	if advice < AdviceNormal || advice > AdviceNoReuse {
		return 0, fmt.Errorf("(flags) %w: file advice %d", ErrInvalidFlags, advice)
	}

	return 0, nil
}
