package syspal

import "fmt"

// Kernel file-watch primitives, surfaced where the host exposes them. The
// watch descriptor space and event decoding belong to the consuming
// runtime; the PAL only normalizes availability and errors.

// INotifyInit creates a watch instance, returning its descriptor.
func (h *Handler) INotifyInit() (int, error) {
	if h.watcher == nil {
		return -1, fmt.Errorf("(notify) inotify: %w", ErrNotSupported)
	}

	fd, err := h.watcher.InotifyInit()
	if err != nil {
		return -1, fmt.Errorf("(notify) failed to create watch instance: %w", err)
	}

	return fd, nil
}

// INotifyAddWatch registers a watch for path on an open watch instance,
// returning the watch id.
func (h *Handler) INotifyAddWatch(fd int, path string, mask uint32) (int, error) {
	if h.watcher == nil {
		return -1, fmt.Errorf("(notify) inotify: %w", ErrNotSupported)
	}

	wd, err := h.watcher.InotifyAddWatch(fd, path, mask)
	if err != nil {
		return -1, fmt.Errorf("(notify) failed to add watch for %s: %w", path, err)
	}

	return wd, nil
}

// INotifyRemoveWatch removes a watch id from an open watch instance.
func (h *Handler) INotifyRemoveWatch(fd int, wd uint32) (int, error) {
	if h.watcher == nil {
		return -1, fmt.Errorf("(notify) inotify: %w", ErrNotSupported)
	}

	res, err := h.watcher.InotifyRmWatch(fd, wd)
	if err != nil {
		return -1, fmt.Errorf("(notify) failed to remove watch %d: %w", wd, err)
	}

	return res, nil
}
