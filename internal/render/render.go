// Package render turns a document into the indented text tree the CLI
// prints: container members become labeled branches, leaves show their value
// as a JSON literal. The interactive widget the tree feeds in a full UI is a
// separate concern; this package only produces its textual shape.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsontoggle/jsontoggle/internal/document"
)

const indentUnit = "  "

// Tree renders a whole document. A scalar root is printed as a single
// literal line.
func Tree(root document.Value) string {
	var b strings.Builder
	switch v := root.(type) {
	case *document.Object:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			node(&b, key, child, 0)
		}
	case *document.Array:
		for i, item := range v.Items() {
			node(&b, indexLabel(i), item, 0)
		}
	default:
		b.WriteString(literal(root))
		b.WriteByte('\n')
	}
	return b.String()
}

func node(b *strings.Builder, label string, v document.Value, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch c := v.(type) {
	case *document.Object:
		fmt.Fprintf(b, "%s%s\n", indent, label)
		for _, key := range c.Keys() {
			child, _ := c.Get(key)
			node(b, key, child, depth+1)
		}
	case *document.Array:
		fmt.Fprintf(b, "%s%s\n", indent, label)
		for i, item := range c.Items() {
			node(b, indexLabel(i), item, depth+1)
		}
	default:
		fmt.Fprintf(b, "%s%s: %s\n", indent, label, literal(v))
	}
}

func indexLabel(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// literal relies on the document model marshaling without HTML escaping, so
// a placeholder like "<toggled>" renders as written.
func literal(v document.Value) string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<unrenderable>"
	}
	return string(data)
}
