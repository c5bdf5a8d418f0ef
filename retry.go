package syspal

import "golang.org/x/sys/unix"

// Signal interruption is not a semantic failure and must be invisible to
// callers: every blocking native call is retried on EINTR without an upper
// bound, matching Go's standard library. Failures other than interruption
// propagate unchanged.
//
// close(2) is the deliberate exception and is never retried, since the
// descriptor state after an interrupted close is unspecified on some
// targets.

// ignoringEINTR retries fn until it succeeds or fails with a condition
// other than interruption.
func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}

// ignoringEINTR2 is ignoringEINTR for calls that also return a value.
func ignoringEINTR2[T any](fn func() (T, error)) (T, error) {
	for {
		v, err := fn()
		if err != unix.EINTR {
			return v, err
		}
	}
}
