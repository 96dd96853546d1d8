// Package toggle implements the toggle/revert state machine over a single
// JSON document. The manager holds the working document (what the user sees)
// and the derived original document (the working document with every stored
// toggle replayed back in); the toggle store, not the original document, is
// what survives a restart.
package toggle

import (
	"fmt"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/jsontoggle/jsontoggle/internal/document"
	"github.com/jsontoggle/jsontoggle/internal/errors"
	"github.com/jsontoggle/jsontoggle/internal/jsonpath"
	"github.com/jsontoggle/jsontoggle/internal/store"
)

// Action is the outcome of a Toggle call
type Action int

const (
	// ToggledOut means the node was hidden and its value stored
	ToggledOut Action = iota
	// Reverted means the stored value was restored and its record deleted
	Reverted
)

// String returns the outcome name as shown to the user
func (a Action) String() string {
	if a == Reverted {
		return "reverted"
	}
	return "toggled out"
}

// Result describes a completed toggle or revert
type Result struct {
	Path       string
	Action     Action
	RecordFile string
}

// Message renders the confirmation line for the presentation layer
func (r Result) Message() string {
	if r.Action == Reverted {
		return fmt.Sprintf("Reverted: %s", r.Path)
	}
	return fmt.Sprintf("Toggled out: %s (stored in %s)", r.Path, filepath.Base(r.RecordFile))
}

// Options control how the manager mutates and persists the working document
type Options struct {
	// Indent is the indentation unit used when rewriting the document file
	Indent string
	// Placeholder is the sentinel string left in place of a toggled node
	Placeholder string
	// DeleteNodes removes toggled nodes outright instead of placeholdering
	// them. An array element with later siblings still gets a placeholder:
	// deleting it would shift those siblings, and a record replayed after a
	// restart would then overwrite the wrong element.
	DeleteNodes bool
}

// DefaultOptions match the shipped configuration defaults
func DefaultOptions() Options {
	return Options{Indent: "  ", Placeholder: "<toggled>"}
}

// Manager owns the working and original documents for one document file
type Manager struct {
	docPath  string
	store    *store.Store
	working  document.Value
	original document.Value
	opts     Options
	log      commonlog.Logger
}

// NewManager loads the document file and reconstructs the original document
// by replaying every stored toggle into a copy of the working document. A
// missing or invalid document file is fatal; an individually unreadable
// toggle record is skipped with a warning.
func NewManager(docPath string, st *store.Store, opts Options) (*Manager, error) {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "<toggled>"
	}

	if err := st.EnsureDirectory(); err != nil {
		return nil, err
	}

	working, err := document.ParseFile(docPath)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		docPath: docPath,
		store:   st,
		working: working,
		opts:    opts,
		log:     commonlog.GetLogger("jsontoggle.manager"),
	}

	records, err := st.ListAll()
	if err != nil {
		return nil, err
	}
	original := working.Clone()
	for _, rec := range records {
		if err := document.Set(original, rec.Path, rec.Value); err != nil {
			m.log.Warningf("could not replay toggle for %s: %s", rec.Path, err)
		}
	}
	m.original = original

	return m, nil
}

// Working returns the working document: what is currently shown and edited,
// with toggled nodes absent or placeholdered.
func (m *Manager) Working() document.Value {
	return m.working
}

// Original returns the derived original document with all toggles replayed
func (m *Manager) Original() document.Value {
	return m.original
}

// DocumentPath returns the document file location
func (m *Manager) DocumentPath() string {
	return m.docPath
}

// NodeAt resolves a display path in the given document for display purposes.
// A path that does not resolve is reported as absent, not as an error; only a
// path that cannot be parsed fails.
func (m *Manager) NodeAt(doc document.Value, display string) (document.Value, bool, error) {
	path, err := jsonpath.Parse(display)
	if err != nil {
		return nil, false, err
	}
	value, ok := document.Get(doc, path)
	return value, ok, nil
}

// ActiveToggles returns the currently toggled paths in filename order
func (m *Manager) ActiveToggles() ([]jsonpath.Path, error) {
	records, err := m.store.ListAll()
	if err != nil {
		return nil, err
	}
	paths := make([]jsonpath.Path, len(records))
	for i, rec := range records {
		paths[i] = rec.Path
	}
	return paths, nil
}

// Toggle hides the node at the display path, or restores it when a record for
// the path already exists. The two directions are exact inverses: toggling
// the same path twice leaves both the working document and the record set as
// they were. On any failure the working document, the document file and the
// store are left exactly as before the call, except that a document save
// failing after a revert leaves the record in place for the next load to
// replay.
func (m *Manager) Toggle(display string) (Result, error) {
	path, err := jsonpath.Parse(display)
	if err != nil {
		return Result{}, err
	}

	value, ok := document.Get(m.original, path)
	if !ok {
		return Result{}, errors.NewToggleError(
			fmt.Sprintf("cannot toggle '%s': nothing exists at this path", display),
			errors.ErrPathNotFound,
		)
	}

	if m.store.Has(path) {
		return m.revert(display, path)
	}
	return m.toggleOut(display, path, value)
}

// revert restores the stored value into the working document, deletes the
// record, and persists the document. The document file is saved before the
// record is deleted so an interrupted revert still replays on the next load.
func (m *Manager) revert(display string, path jsonpath.Path) (Result, error) {
	stored, err := m.store.Read(path)
	if err != nil {
		return Result{}, err
	}

	next := m.working.Clone()
	if err := document.Set(next, path, stored); err != nil {
		return Result{}, errors.NewToggleError(
			fmt.Sprintf("error reverting '%s': %v", display, err),
			errors.ErrRevertFailed,
		)
	}
	m.restoreMemberOrder(next, path)

	if err := document.Save(m.docPath, next, m.opts.Indent); err != nil {
		return Result{}, err
	}
	m.working = next

	if err := m.store.Delete(path); err != nil {
		return Result{}, err
	}

	return Result{Path: display, Action: Reverted, RecordFile: m.store.FilePath(path)}, nil
}

// restoreMemberOrder moves a re-inserted object member back to the position
// its key holds in the original document. Set appends unknown keys at the
// end, so without this a delete-policy round trip would reorder the parent's
// members.
func (m *Manager) restoreMemberOrder(doc document.Value, path jsonpath.Path) {
	last := path[len(path)-1]
	if last.IsIndex() {
		return
	}
	parent, ok := document.Get(doc, path[:len(path)-1])
	if !ok {
		return
	}
	target, ok := parent.(*document.Object)
	if !ok {
		return
	}
	origParent, ok := document.Get(m.original, path[:len(path)-1])
	if !ok {
		return
	}
	reference, ok := origParent.(*document.Object)
	if !ok {
		return
	}
	pos := 0
	for _, key := range reference.Keys() {
		if key == last.Key() {
			break
		}
		if _, present := target.Get(key); present {
			pos++
		}
	}
	if value, ok := target.Get(last.Key()); ok {
		target.Insert(pos, last.Key(), value)
	}
}

// interiorArrayElement reports whether path addresses an array element with
// later siblings.
func interiorArrayElement(doc document.Value, path jsonpath.Path) bool {
	last := path[len(path)-1]
	if !last.IsIndex() {
		return false
	}
	parent, ok := document.Get(doc, path[:len(path)-1])
	if !ok {
		return false
	}
	arr, ok := parent.(*document.Array)
	if !ok {
		return false
	}
	return last.Index() < arr.Len()-1
}

// toggleOut stores the original value for the path, removes or placeholders
// the node in the working document, and persists the document. The record is
// written before the document file so the record-iff-toggled invariant is
// never violated on disk; a failed document save rolls the record back out.
func (m *Manager) toggleOut(display string, path jsonpath.Path, value document.Value) (Result, error) {
	next := m.working.Clone()
	if m.opts.DeleteNodes && !interiorArrayElement(next, path) {
		if !document.Unset(next, path) {
			return Result{}, toggleFailed(display)
		}
	} else {
		if !document.Has(next, path) {
			return Result{}, toggleFailed(display)
		}
		if err := document.Set(next, path, document.String(m.opts.Placeholder)); err != nil {
			return Result{}, toggleFailed(display)
		}
	}

	if err := m.store.Write(path, value); err != nil {
		return Result{}, err
	}
	if err := document.Save(m.docPath, next, m.opts.Indent); err != nil {
		if deleteErr := m.store.Delete(path); deleteErr != nil {
			m.log.Errorf("could not roll back toggle record for %s: %s", display, deleteErr)
		}
		return Result{}, err
	}
	m.working = next

	return Result{Path: display, Action: ToggledOut, RecordFile: m.store.FilePath(path)}, nil
}

func toggleFailed(display string) error {
	return errors.NewToggleError(
		fmt.Sprintf("error toggling out '%s': the node is not present in the working document", display),
		errors.ErrToggleFailed,
	)
}
