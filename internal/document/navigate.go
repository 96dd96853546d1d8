package document

import (
	"fmt"

	"github.com/jsontoggle/jsontoggle/internal/jsonpath"
)

// Get walks the path from root and returns the value it reaches, reporting
// whether the path resolves. An empty path resolves to root itself.
func Get(root Value, path jsonpath.Path) (Value, bool) {
	current := root
	for _, seg := range path {
		switch c := current.(type) {
		case *Object:
			if seg.IsIndex() {
				return nil, false
			}
			next, ok := c.Get(seg.Key())
			if !ok {
				return nil, false
			}
			current = next
		case *Array:
			if !seg.IsIndex() {
				return nil, false
			}
			next, ok := c.At(seg.Index())
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

// Has reports whether the path resolves from root
func Has(root Value, path jsonpath.Path) bool {
	_, ok := Get(root, path)
	return ok
}

// Set stores value at path, creating intermediate containers as needed: a
// missing or null step becomes an object or an array depending on the next
// segment, and arrays are padded with nulls up to a written index. It fails
// when an existing intermediate node is a scalar of the wrong shape.
func Set(root Value, path jsonpath.Path, value Value) error {
	if len(path) == 0 {
		return fmt.Errorf("cannot replace the document root")
	}
	current := root
	for i, seg := range path {
		last := i == len(path)-1
		switch c := current.(type) {
		case *Object:
			if seg.IsIndex() {
				return fmt.Errorf("segment %d of '%s' is an index but the node is an object", i, path)
			}
			if last {
				c.Set(seg.Key(), value)
				return nil
			}
			next, ok := c.Get(seg.Key())
			if !ok || next.Kind() == KindNull {
				next = containerFor(path[i+1])
				c.Set(seg.Key(), next)
			}
			current = next
		case *Array:
			if !seg.IsIndex() {
				return fmt.Errorf("segment %d of '%s' is a key but the node is an array", i, path)
			}
			if last {
				c.SetAt(seg.Index(), value)
				return nil
			}
			next, ok := c.At(seg.Index())
			if !ok || next.Kind() == KindNull {
				next = containerFor(path[i+1])
				c.SetAt(seg.Index(), next)
			}
			current = next
		default:
			return fmt.Errorf("cannot descend into a %s at segment %d of '%s'", current.Kind(), i, path)
		}
	}
	return fmt.Errorf("unreachable: path '%s' was not terminated", path)
}

// containerFor picks the container kind a synthesized step must have so the
// following segment can be applied to it.
func containerFor(next jsonpath.Segment) Value {
	if next.IsIndex() {
		return NewArray()
	}
	return NewObject()
}

// Unset removes the node at path: an object member is deleted, an array
// element is removed and later elements shift down. It reports whether the
// node existed.
func Unset(root Value, path jsonpath.Path) bool {
	if len(path) == 0 {
		return false
	}
	parent, ok := Get(root, path[:len(path)-1])
	if !ok {
		return false
	}
	seg := path[len(path)-1]
	switch p := parent.(type) {
	case *Object:
		if seg.IsIndex() {
			return false
		}
		return p.Delete(seg.Key())
	case *Array:
		if !seg.IsIndex() {
			return false
		}
		return p.Remove(seg.Index())
	default:
		return false
	}
}
