package syspal

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"
)

// defaultCopyBufferSize is the manual-tier buffer size.
const defaultCopyBufferSize = 80 * 1024

// maxStreamCopyChunk caps a single kernel streaming-copy call; the host
// transfers at most this many bytes per call, so the tier has to iterate.
const maxStreamCopyChunk = 0x7ffff000

// CopyFile copies file content and best-effort metadata from an open
// source descriptor to an open destination descriptor. srcLength is a hint
// of the source length; 0 means unknown or possibly non-seekable (e.g.
// pseudo-filesystem entries that stat as empty yet produce data), which
// skips the length-driven tiers.
//
// Tiers, each attempted only when the previous is unavailable or
// inapplicable: whole-file kernel copy (data and metadata atomically),
// copy-on-write clone, kernel streaming copy, manual buffered loop. A tier
// failing with a not-supported condition falls through; any other failure
// aborts the whole operation.
func (h *Handler) CopyFile(srcFd, dstFd int, srcLength int64) error {
	if srcLength < 0 {
		return fmt.Errorf("(copy) %w: negative source length %d", ErrInvalidArgument, srcLength)
	}

	// Whole-file copy subsumes all later tiers, including the metadata
	// propagation, and the operation ends with its result.
	if h.wholeCopier != nil && !h.cfg.DisableWholeFileCopy {
		if err := ignoringEINTR(func() error { return h.wholeCopier.CopyFileAll(srcFd, dstFd) }); err != nil {
			return fmt.Errorf("(copy) whole-file copy failed: %w", err)
		}

		slog.Debug("Copied file", "tier", "whole-file", "src", srcFd, "dst", dstFd)

		return h.verifyIfConfigured(srcFd, dstFd)
	}

	copied := false
	tier := "manual"

	if h.cloner != nil && !h.cfg.DisableClone && srcLength != 0 {
		// A clone shares storage between the files; any failure here
		// (different filesystems, no reflink support) just falls through.
		if err := ignoringEINTR(func() error { return h.cloner.CloneFile(dstFd, srcFd) }); err == nil {
			copied = true
			tier = "clone"
		}
	}

	if !copied && h.streamer != nil && !h.cfg.DisableSendfile && srcLength != 0 {
		done, err := h.streamCopy(srcFd, dstFd, srcLength)
		if err != nil {
			return err
		}
		if done {
			copied = true
			tier = "stream"
		}
	}

	if !copied {
		if err := h.bufferedCopy(srcFd, dstFd); err != nil {
			return err
		}
	}

	slog.Debug("Copied file", "tier", tier, "src", srcFd, "dst", dstFd)

	if err := h.copyMetadata(srcFd, dstFd); err != nil {
		return err
	}

	return h.verifyIfConfigured(srcFd, dstFd)
}

// streamCopy runs the kernel streaming tier. It reports whether the
// declared length was fully transferred; a short result (truncation, or a
// host that rejects this descriptor kind) leaves the remainder to the next
// tier. Errors other than not-supported abort the whole operation.
func (h *Handler) streamCopy(srcFd, dstFd int, srcLength int64) (bool, error) {
	remaining := srcLength

	for remaining > 0 {
		chunk := remaining
		if chunk > maxStreamCopyChunk {
			chunk = maxStreamCopyChunk
		}

		sent, err := ignoringEINTR2(func() (int, error) {
			return h.streamer.Sendfile(dstFd, srcFd, int(chunk))
		})
		if err != nil {
			if isNotSupported(err) || errors.Is(err, unix.EINVAL) {
				break
			}

			return false, fmt.Errorf("(copy) streaming copy failed: %w", err)
		}
		if sent == 0 {
			// The file was truncated under us (or some other condition
			// ended the stream early); the remaining tiers finish the job.
			break
		}

		remaining -= int64(sent)
	}

	return remaining == 0, nil
}

// bufferedCopy is the guaranteed-correct fallback tier: read to end of
// file, writing every chunk fully before the next read, with interruption
// retried at both read and write granularity.
func (h *Handler) bufferedCopy(srcFd, dstFd int) error {
	buf := make([]byte, h.cfg.CopyBufferSize)

	for {
		n, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Read(srcFd, buf) })
		if err != nil {
			return fmt.Errorf("(copy) failed to read source: %w", err)
		}
		if n == 0 {
			return nil
		}

		off := 0
		for off < n {
			w, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Write(dstFd, buf[off:n]) })
			if err != nil {
				return fmt.Errorf("(copy) failed to write destination: %w", err)
			}
			off += w
		}
	}
}

// copyMetadata propagates timestamps and permission bits best-effort after
// a data copy. Timestamps use the highest-resolution call the host offers.
// EPERM is tolerated: filesystems that coerce ownership to a single user
// (e.g. exFAT mounts) deny metadata writes even though the data copy
// succeeded, and downstream callers depend on the copy still counting as
// a success there. Any other metadata failure is fatal.
func (h *Handler) copyMetadata(srcFd, dstFd int) error {
	var st unix.Stat_t
	if err := ignoringEINTR(func() error { return h.UnixOps.Fstat(srcFd, &st) }); err != nil {
		return fmt.Errorf("(copy) failed to stat source for metadata: %w", err)
	}

	atim, mtim, _ := statTimes(&st)

	var terr error
	switch {
	case h.times != nil:
		terr = ignoringEINTR(func() error {
			return h.times.Futimens(dstFd, []unix.Timespec{atim, mtim})
		})
	case h.timesLegacy != nil:
		terr = ignoringEINTR(func() error {
			return h.timesLegacy.Futimes(dstFd, []unix.Timeval{
				unix.NsecToTimeval(atim.Nano()),
				unix.NsecToTimeval(mtim.Nano()),
			})
		})
	}
	if terr != nil {
		if !errors.Is(terr, unix.EPERM) {
			return fmt.Errorf("(copy) failed to copy timestamps: %w", terr)
		}

		slog.Warn("Tolerated failure copying timestamps", "dst", dstFd, "err", terr)
	}

	// Only the owner/group/other permission triad is copied; type bits
	// must not be. The destination was opened under umask, so this cannot
	// be skipped even when the open mode already matched the source.
	cherr := ignoringEINTR(func() error {
		return h.UnixOps.Fchmod(dstFd, uint32(st.Mode)&0o777)
	})
	if cherr != nil {
		if !errors.Is(cherr, unix.EPERM) {
			return fmt.Errorf("(copy) failed to copy permissions: %w", cherr)
		}

		slog.Warn("Tolerated failure copying permissions", "dst", dstFd, "err", cherr)
	}

	return nil
}

// verifyIfConfigured re-reads source and destination and compares BLAKE3
// digests when verification is enabled. Positional reads are used so the
// descriptors' offsets stay untouched.
func (h *Handler) verifyIfConfigured(srcFd, dstFd int) error {
	if !h.cfg.VerifyCopies {
		return nil
	}

	srcSum, err := h.digest(srcFd)
	if err != nil {
		return fmt.Errorf("(copy) failed to digest source: %w", err)
	}

	dstSum, err := h.digest(dstFd)
	if err != nil {
		return fmt.Errorf("(copy) failed to digest destination: %w", err)
	}

	if !bytes.Equal(srcSum, dstSum) {
		return fmt.Errorf("(copy) %w", ErrChecksumMismatch)
	}

	return nil
}

// digest hashes a descriptor's full content via positional reads.
func (h *Handler) digest(fd int) ([]byte, error) {
	hasher := blake3.New()
	buf := make([]byte, h.cfg.CopyBufferSize)

	var off int64
	for {
		n, err := ignoringEINTR2(func() (int, error) { return h.UnixOps.Pread(fd, buf, off) })
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return hasher.Sum(nil), nil
		}

		_, _ = hasher.Write(buf[:n])
		off += int64(n)
	}
}
