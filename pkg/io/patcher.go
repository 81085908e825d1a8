package bpio

import (
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"io"
	"os"
)

// Patcher writes encoded payloads into existing binary files in place.
type Patcher struct {
	fs     afero.Fs
	logger log.Logger
}

// New returns a Patcher operating on the given filesystem.
func New(fs afero.Fs, logger log.Logger) *Patcher {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Patcher{fs: fs, logger: logger}
}

// OpenError reports a target file that could not be opened for update.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open binary file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// WriteError reports a patch that could not be fully written. Wrote holds
// the number of bytes that made it to the file before the failure.
type WriteError struct {
	Path   string
	Offset uint64
	Wrote  int
	Err    error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("patching %s at offset %d failed: wrote %d bytes: %v", e.Path, e.Offset, e.Wrote, e.Err)
	}
	return fmt.Sprintf("patching %s at offset %d went wrong: wrote %d bytes", e.Path, e.Offset, e.Wrote)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Apply overwrites len(payload) bytes of the file at path, starting at
// offset. The file must already exist. Seeking past its end is allowed and
// leaves a zero-filled gap before the payload. Bytes outside the patched
// range are untouched.
func (p *Patcher) Apply(path string, offset uint64, payload []byte) error {
	f, err := p.fs.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return &WriteError{Path: path, Offset: offset, Err: errors.Wrap(err, "seek")}
	}
	n, err := f.Write(payload)
	if err != nil {
		return &WriteError{Path: path, Offset: offset, Wrote: n, Err: err}
	}
	if n != len(payload) {
		return &WriteError{Path: path, Offset: offset, Wrote: n}
	}

	level.Debug(p.logger).Log("msg", "patched file", "path", path, "offset", offset, "bytes", n)
	return nil
}
