// Package jsonpath converts between the three representations of a document
// path: the display string a user types (settings.theme, users[0].name), the
// segment sequence the rest of the program navigates with, and the
// filesystem-safe token used to name toggle record files.
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsontoggle/jsontoggle/internal/errors"
)

// Segment is one step of a path: either an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key creates a string-key segment
func Key(key string) Segment {
	return Segment{key: key}
}

// Index creates an array-index segment
func Index(index int) Segment {
	return Segment{index: index, isIndex: true}
}

// IsIndex reports whether the segment is an array index
func (s Segment) IsIndex() bool {
	return s.isIndex
}

// Key returns the object key; only meaningful when IsIndex is false
func (s Segment) Key() string {
	return s.key
}

// Index returns the array index; only meaningful when IsIndex is true
func (s Segment) Index() int {
	return s.index
}

// Path is an ordered sequence of segments identifying a node from the
// document root.
type Path []Segment

// Parse converts a display path into segments. Segments are separated by
// dots; an index is written in brackets after a key (users[0]) or as a bare
// all-digit segment (users.0). A path cannot be empty.
func Parse(display string) (Path, error) {
	if display == "" {
		return nil, errors.NewPathError("path is empty", errors.ErrInvalidPathSyntax)
	}

	var path Path
	for _, piece := range strings.Split(display, ".") {
		if piece == "" {
			return nil, errors.NewPathError(
				fmt.Sprintf("empty segment in path '%s'", display),
				errors.ErrInvalidPathSyntax,
			)
		}
		segments, err := parsePiece(piece, display)
		if err != nil {
			return nil, err
		}
		path = append(path, segments...)
	}
	return path, nil
}

// parsePiece handles one dot-separated piece: a key, a bare index, or a key
// followed by one or more bracketed indices.
func parsePiece(piece, display string) ([]Segment, error) {
	bracket := strings.IndexByte(piece, '[')
	head := piece
	rest := ""
	if bracket >= 0 {
		head = piece[:bracket]
		rest = piece[bracket:]
	}

	var segments []Segment
	if head != "" {
		if strings.ContainsRune(head, ']') {
			return nil, errors.NewPathError(
				fmt.Sprintf("unmatched ']' in path '%s'", display),
				errors.ErrInvalidPathSyntax,
			)
		}
		if idx, ok := bareIndex(head); ok {
			segments = append(segments, Index(idx))
		} else {
			segments = append(segments, Key(head))
		}
	} else if rest == "" {
		return nil, errors.NewPathError(
			fmt.Sprintf("empty segment in path '%s'", display),
			errors.ErrInvalidPathSyntax,
		)
	}

	for rest != "" {
		if rest[0] != '[' {
			return nil, errors.NewPathError(
				fmt.Sprintf("unexpected characters after ']' in path '%s'", display),
				errors.ErrInvalidPathSyntax,
			)
		}
		closing := strings.IndexByte(rest, ']')
		if closing < 0 {
			return nil, errors.NewPathError(
				fmt.Sprintf("unclosed '[' in path '%s'", display),
				errors.ErrInvalidPathSyntax,
			)
		}
		digits := rest[1:closing]
		idx, ok := bareIndex(digits)
		if !ok {
			return nil, errors.NewPathError(
				fmt.Sprintf("index '%s' in path '%s' is not a non-negative integer", digits, display),
				errors.ErrInvalidPathSyntax,
			)
		}
		segments = append(segments, Index(idx))
		rest = rest[closing+1:]
	}
	return segments, nil
}

// bareIndex reports whether s is a plain decimal array index
func bareIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// String renders the path in display form: keys joined by dots, indices in
// brackets attached to the preceding segment (or standalone at the root).
// Parse(p.String()) yields p again for any parseable path.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.key)
	}
	return b.String()
}

// filenameSafe is the set of key bytes stored verbatim in a filename token.
// Everything else, '%' and '_' included, is percent-escaped, which keeps the
// joined token unambiguous and acceptable to any filesystem. Both letter
// cases are kept verbatim, so keys that differ only in case map to record
// files that collide on a case-insensitive filesystem; such documents need a
// store directory on a case-sensitive mount.
func filenameSafe(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '.' || c == '-'
}

// Filename encodes the path as a filesystem-safe token. Each segment becomes
// one piece: "i" plus the decimal index, or "k" plus the percent-escaped key;
// pieces are joined with underscores. Distinct paths always produce distinct
// tokens, and an all-digit key ("k0") never collides with an index ("i0").
func (p Path) Filename() string {
	pieces := make([]string, len(p))
	for i, seg := range p {
		if seg.isIndex {
			pieces[i] = "i" + strconv.Itoa(seg.index)
		} else {
			pieces[i] = "k" + escapeKey(seg.key)
		}
	}
	return strings.Join(pieces, "_")
}

func escapeKey(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if filenameSafe(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// FromFilename decodes a token produced by Filename. It is strict: every
// piece must carry a known tag and indices must be in canonical decimal form,
// so a file that was not written by this program is rejected rather than
// misread.
func FromFilename(token string) (Path, error) {
	if token == "" {
		return nil, decodeError(token, "token is empty")
	}
	pieces := strings.Split(token, "_")
	path := make(Path, 0, len(pieces))
	for _, piece := range pieces {
		if piece == "" {
			return nil, decodeError(token, "empty piece")
		}
		switch piece[0] {
		case 'i':
			idx, ok := bareIndex(piece[1:])
			if !ok || strconv.Itoa(idx) != piece[1:] {
				return nil, decodeError(token, fmt.Sprintf("'%s' is not a canonical index", piece))
			}
			path = append(path, Index(idx))
		case 'k':
			key, err := unescapeKey(piece[1:])
			if err != nil {
				return nil, decodeError(token, err.Error())
			}
			path = append(path, Key(key))
		default:
			return nil, decodeError(token, fmt.Sprintf("piece '%s' has no segment tag", piece))
		}
	}
	return path, nil
}

func unescapeKey(escaped string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(escaped) {
			return "", fmt.Errorf("truncated escape in '%s'", escaped)
		}
		decoded, err := strconv.ParseUint(escaped[i+1:i+3], 16, 8)
		if err != nil {
			return "", fmt.Errorf("bad escape '%%%s' in '%s'", escaped[i+1:i+3], escaped)
		}
		b.WriteByte(byte(decoded))
		i += 2
	}
	return b.String(), nil
}

func decodeError(token, reason string) error {
	return errors.NewPathError(
		fmt.Sprintf("cannot decode toggle filename '%s': %s", token, reason),
		errors.ErrInvalidToggleFilename,
	)
}
