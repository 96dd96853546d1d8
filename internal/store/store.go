// Package store persists toggled-out values as one JSON file per path. The
// directory is the durable source of truth for what is currently hidden: a
// record exists exactly when its path is toggled out of the working document.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/jsontoggle/jsontoggle/internal/document"
	"github.com/jsontoggle/jsontoggle/internal/errors"
	"github.com/jsontoggle/jsontoggle/internal/jsonpath"
)

// RecordExtension is appended to every encoded path to form a record filename
const RecordExtension = ".json"

// Record pairs a toggled path with the original value stored for it
type Record struct {
	Path  jsonpath.Path
	Value document.Value
}

// Store is a directory of toggle records keyed by path
type Store struct {
	dir    string
	indent string
	log    commonlog.Logger
}

// New creates a store rooted at dir. The directory itself is only created by
// EnsureDirectory.
func New(dir string) *Store {
	return &Store{
		dir:    dir,
		indent: "  ",
		log:    commonlog.GetLogger("jsontoggle.store"),
	}
}

// Dir returns the store directory
func (s *Store) Dir() string {
	return s.dir
}

// FilePath returns the record file location for a path
func (s *Store) FilePath(path jsonpath.Path) string {
	return filepath.Join(s.dir, path.Filename()+RecordExtension)
}

// EnsureDirectory creates the store directory if it is absent; calling it
// again is a no-op.
func (s *Store) EnsureDirectory() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.NewStorageError(
			fmt.Sprintf("failed to create toggle directory '%s': %v", s.dir, err),
			errors.ErrStorageUnavailable,
		)
	}
	return nil
}

// Has reports whether a record exists for path, without reading its content
func (s *Store) Has(path jsonpath.Path) bool {
	info, err := os.Stat(s.FilePath(path))
	return err == nil && !info.IsDir()
}

// Read returns the stored value for path
func (s *Store) Read(path jsonpath.Path) (document.Value, error) {
	file := s.FilePath(path)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.NewStorageError(
			fmt.Sprintf("failed to read toggle record '%s': %v", file, err),
			errors.ErrStorageUnavailable,
		)
	}
	value, err := document.ParseString(string(data))
	if err != nil {
		return nil, errors.NewStorageError(
			fmt.Sprintf("toggle record '%s' is not valid JSON", file),
			errors.ErrCorruptToggleRecord,
		)
	}
	return value, nil
}

// Write creates or overwrites the record for path with the given value,
// pretty-printed.
func (s *Store) Write(path jsonpath.Path, value document.Value) error {
	out, err := document.Encode(value, s.indent)
	if err != nil {
		return err
	}
	file := s.FilePath(path)
	if err := os.WriteFile(file, []byte(out+"\n"), 0o644); err != nil {
		return errors.NewStorageError(
			fmt.Sprintf("failed to write toggle record '%s': %v", file, err),
			errors.ErrStorageUnavailable,
		)
	}
	return nil
}

// Delete removes the record for path. A missing record is not an error.
func (s *Store) Delete(path jsonpath.Path) error {
	err := os.Remove(s.FilePath(path))
	if err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError(
			fmt.Sprintf("failed to delete toggle record '%s': %v", s.FilePath(path), err),
			errors.ErrStorageUnavailable,
		)
	}
	return nil
}

// ListAll enumerates every record in the directory in filename order. A file
// whose name cannot be decoded or whose content is not valid JSON is skipped
// with a warning, so one bad file left by a crash or a manual edit cannot
// prevent the document from opening. A missing directory yields no records.
func (s *Store) ListAll() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageError(
			fmt.Sprintf("failed to read toggle directory '%s': %v", s.dir, err),
			errors.ErrStorageUnavailable,
		)
	}

	var records []Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, RecordExtension) {
			continue
		}
		path, err := jsonpath.FromFilename(strings.TrimSuffix(name, RecordExtension))
		if err != nil {
			s.log.Warningf("skipping toggle record %q: %s", name, err)
			continue
		}
		value, err := s.Read(path)
		if err != nil {
			s.log.Warningf("skipping toggle record %q: %s", name, err)
			continue
		}
		records = append(records, Record{Path: path, Value: value})
	}
	return records, nil
}
