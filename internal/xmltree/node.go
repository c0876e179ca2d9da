// Package xmltree implements a schema-agnostic, mutable XML element tree
// and its serialization. The tree knows nothing about PLCopenXML; the typed
// builders in internal/xmlgen sit on top of it.
package xmltree

import (
	"sort"
	"strings"
)

const indentWidth = 4

// Node is the universal element representation: a named tag with unordered
// attributes, ordered children and an optional text payload.
//
// Attribute values and content are emitted verbatim: no XML
// special-character escaping is performed. Inputs originate from
// compiler-validated identifiers and literal text.
type Node struct {
	// Name is the element tag. It is fixed at construction.
	Name string

	// Attributes maps attribute name to value. Repeated writes to the same
	// key overwrite the previous value, supporting build-then-override.
	Attributes map[string]string

	// Children holds the nested elements in document order.
	Children []Node

	// Closed marks a self-closing element; it must have no children and no
	// content.
	Closed bool

	// Content is the optional text payload. An element has either nested
	// elements or text, never both; see Serialize for the precedence rule.
	Content *string
}

// New returns an empty open element with the given tag.
func New(name string) *Node {
	return &Node{Name: name, Attributes: make(map[string]string)}
}

// Attribute inserts or overwrites an attribute; the last write wins.
func (n *Node) Attribute(key, value string) *Node {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[key] = value
	return n
}

// Child appends a deep copy of the given node's current state. Later
// mutation of the original does not affect the attached copy.
func (n *Node) Child(child *Node) *Node {
	n.Children = append(n.Children, child.Clone())
	return n
}

// AddChildren appends copies of the given nodes, preserving input order.
func (n *Node) AddChildren(children ...*Node) *Node {
	for _, c := range children {
		n.Child(c)
	}
	return n
}

// Close marks the element self-closing.
func (n *Node) Close() *Node {
	n.Closed = true
	return n
}

// SetContent sets the text payload.
func (n *Node) SetContent(text string) *Node {
	n.Content = &text
	return n
}

// HasContent reports whether a text payload was set (even an empty one).
func (n *Node) HasContent() bool {
	return n.Content != nil
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() Node {
	out := Node{Name: n.Name, Closed: n.Closed}
	if n.Attributes != nil {
		out.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			out.Attributes[k] = v
		}
	}
	if len(n.Children) > 0 {
		out.Children = make([]Node, len(n.Children))
		for i := range n.Children {
			out.Children[i] = n.Children[i].Clone()
		}
	}
	if n.Content != nil {
		content := *n.Content
		out.Content = &content
	}
	return out
}

// Find returns the first element with the given tag in a depth-first,
// pre-order walk starting at (and including) n, or nil.
//
// The returned pointer aliases the tree: appending children through it
// mutates the document in place. Callers must not hold it across structural
// changes to the same parent.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for i := range n.Children {
		if found := n.Children[i].Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindPath descends from n through direct children matching the given tags
// in order. Returns nil when any step is missing.
func (n *Node) FindPath(names ...string) *Node {
	cur := n
	for _, name := range names {
		var next *Node
		for i := range cur.Children {
			if cur.Children[i].Name == name {
				next = &cur.Children[i]
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Indent returns the cosmetic leading whitespace for a nesting level.
func Indent(level int) string {
	return strings.Repeat(" ", level*indentWidth)
}

func (n *Node) attributeString() string {
	if len(n.Attributes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	// Map iteration order is not semantically significant, but sorted keys
	// keep output byte-identical across runs.
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(n.Attributes[k])
		sb.WriteByte('"')
	}
	return sb.String()
}

// Serialize renders the subtree as indented XML text. Priority per node:
// a closed element renders self-closing; otherwise a set content renders as
// a one-line leaf (children are ignored); otherwise children render
// recursively one level deeper.
func (n *Node) Serialize(level int) string {
	var sb strings.Builder
	n.serializeTo(&sb, level)
	return sb.String()
}

func (n *Node) serializeTo(sb *strings.Builder, level int) {
	indent := Indent(level)
	attrs := n.attributeString()

	if n.Closed {
		sb.WriteString(indent)
		sb.WriteString("<")
		sb.WriteString(n.Name)
		sb.WriteString(attrs)
		sb.WriteString("/>\n")
		return
	}

	if n.Content != nil {
		sb.WriteString(indent)
		sb.WriteString("<")
		sb.WriteString(n.Name)
		sb.WriteString(attrs)
		sb.WriteString(">")
		sb.WriteString(*n.Content)
		sb.WriteString("</")
		sb.WriteString(n.Name)
		sb.WriteString(">\n")
		return
	}

	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(n.Name)
	sb.WriteString(attrs)
	sb.WriteString(">\n")
	for i := range n.Children {
		n.Children[i].serializeTo(sb, level+1)
	}
	sb.WriteString(indent)
	sb.WriteString("</")
	sb.WriteString(n.Name)
	sb.WriteString(">\n")
}
