package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"
)

// ErrTransientIO reports a stat or read failure that is retried on the next
// cycle.
var ErrTransientIO = errors.New("ingest: transient I/O failure")

type signature struct {
	modTime time.Time
	size    int64
}

// ChangeDetector reports whether a file changed since the last check, based
// on its modification time and size.
type ChangeDetector struct {
	path string
	stat func(string) (fs.FileInfo, error)

	mu   sync.Mutex
	last *signature
}

// NewChangeDetector creates a detector for path.
func NewChangeDetector(path string) *ChangeDetector {
	return &ChangeDetector{path: path, stat: os.Stat}
}

// Check returns true on the first observation and whenever the signature
// differs from the previous one. A stat failure leaves the signature as is.
func (d *ChangeDetector) Check() (bool, error) {
	info, err := d.stat(d.path)
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", ErrTransientIO, d.path, err)
	}
	sig := signature{modTime: info.ModTime(), size: info.Size()}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last != nil && d.last.modTime.Equal(sig.modTime) && d.last.size == sig.size {
		return false, nil
	}
	d.last = &sig
	return true, nil
}

// Forget clears the signature so the next Check reports a change.
func (d *ChangeDetector) Forget() {
	d.mu.Lock()
	d.last = nil
	d.mu.Unlock()
}
