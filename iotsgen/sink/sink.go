// Package sink writes generated output.
package sink

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrFileExists is returned by a FilesystemSink with Overwrite unset when the
// target already exists.
var ErrFileExists = errors.New("file already exists")

// OutputSink receives generated file content.
// Implementations MUST be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to a slash-separated relative path.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes below a directory on the local filesystem.
type FilesystemSink struct {
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite replaces existing files. When false, existing files are an
	// ErrFileExists error.
	Overwrite bool
}

// NewFilesystemSink returns a sink rooted at root that overwrites existing files.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0o644, Overwrite: true}
}

// WriteFile writes content through a temp file in the target directory and
// renames it into place, so readers never observe a partial file.
func (s *FilesystemSink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return errors.Wrapf(err, "invalid path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	root := s.Root
	if root == "" {
		root = "."
	}
	full := filepath.Join(root, filepath.FromSlash(name))
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0o644
	}

	tmp, err := os.CreateTemp(dir, ".tsio-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if err := errors.CombineErrors(writeErr, closeErr); err != nil {
		cleanup()
		return errors.Wrap(err, "write temp file")
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return errors.Wrap(err, "set file mode")
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, full); err != nil {
			cleanup()
			return errors.Wrap(err, "rename temp file")
		}
		return nil
	}

	// Link fails if the target exists, without a stat/rename race.
	err = os.Link(tmpPath, full)
	cleanup()
	if errors.Is(err, os.ErrExist) {
		return errors.Wrapf(ErrFileExists, "%q", name)
	}
	return errors.Wrapf(err, "create %q", name)
}

// MemorySink keeps written files in memory.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

func (s *MemorySink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return errors.Wrapf(err, "invalid path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), content...)
	return nil
}

// Files returns a copy of everything written so far.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.files))
	for name, content := range s.files {
		out[name] = append([]byte(nil), content...)
	}
	return out
}

// Get returns a copy of one file, or nil.
func (s *MemorySink) Get(name string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[name]
	if !ok {
		return nil
	}
	return append([]byte(nil), content...)
}

// WriterSink copies every file to an io.Writer, ignoring the path. It is used
// for writing generated output to stdout.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteFile(ctx context.Context, _ string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(content)
	return errors.Wrap(err, "write output")
}

// ValidatePath checks that name is a clean, relative, slash-separated path
// that stays below the sink root.
func ValidatePath(name string) error {
	if name == "" || name == "." {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || hasDriveLetter(name) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(name, `\`) {
		return errors.New("path must use / as separator")
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if cleaned := path.Clean(name); cleaned != name {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, name)
	}
	return nil
}

func hasDriveLetter(name string) bool {
	if len(name) < 2 || name[1] != ':' {
		return false
	}
	c := name[0]
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}
