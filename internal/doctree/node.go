// Package doctree is the in-memory form of a resolved docutils/Sphinx document
// tree, the input of the translator.
//
// Trees are read from docutils XML (LoadXML), from a YAML or JSON dump with the
// same shape (LoadYAML), or built in code with New and Text. Every node except
// the root has a parent; the parent pointers are maintained by AppendChild.
package doctree

import (
	"math"
	"strconv"
	"strings"
)

// Attributes holds element attributes as serialized by docutils: scalar
// values verbatim, list values (ids, names, classes, ...) space separated with
// literal spaces escaped as "\ ".
type Attributes map[string]string

// Node is an element or text node of the tree.
type Node struct {
	Kind Kind
	// Tag is the element name as read; it differs from Kind.String() only for
	// KindUnknown.
	Tag      string
	Attrs    Attributes
	Text     string
	Parent   *Node
	Children []*Node
}

// New returns an element node of kind with the given children.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Tag: kind.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// NewTag returns an element node for an element name; unknown names yield a
// KindUnknown node that keeps the name.
func NewTag(tag string) *Node {
	return &Node{Kind: ParseKind(tag), Tag: tag}
}

// Text returns a text node.
func Text(s string) *Node {
	return &Node{Kind: KindText, Tag: KindText.String(), Text: s}
}

// Set sets an attribute and returns n for chaining.
func (n *Node) Set(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(Attributes)
	}
	n.Attrs[key] = value
	return n
}

// SetList sets a list attribute from its items.
func (n *Node) SetList(key string, items ...string) *Node {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = strings.ReplaceAll(item, " ", `\ `)
	}
	return n.Set(key, strings.Join(escaped, " "))
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Attr returns a scalar attribute, or "" when absent.
func (n *Node) Attr(key string) string {
	return n.Attrs[key]
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attrs[key]
	return ok
}

// List returns a list attribute split into its items.
func (n *Node) List(key string) []string {
	return splitList(n.Attrs[key])
}

// Bool interprets an attribute the way docutils serializes booleans: "1" or
// "True" are true.
func (n *Node) Bool(key string) bool {
	switch n.Attrs[key] {
	case "1", "True", "true":
		return true
	}
	return false
}

// Int returns an integer attribute, or def when absent or malformed.
func (n *Node) Int(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(n.Attrs[key]))
	if err != nil {
		return def
	}
	return v
}

// Float returns a numeric attribute, or def when absent or malformed.
func (n *Node) Float(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(n.Attrs[key]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// IDs returns the node's ids attribute.
func (n *Node) IDs() []string { return n.List("ids") }

// Classes returns the node's classes attribute.
func (n *Node) Classes() []string { return n.List("classes") }

// HasClass reports whether class is among the node's classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// Is reports whether n is of one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// FirstChild returns the first child of kind, or nil.
func (n *Node) FirstChild(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Index returns n's position among its parent's children, or -1 for a root.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// AsText returns the concatenated text of all descendant text nodes.
func (n *Node) AsText() string {
	if n.Kind == KindText {
		return n.Text
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.Children {
		if c.Kind == KindText {
			b.WriteString(c.Text)
			continue
		}
		c.writeText(b)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var (
		items []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ' ':
			cur.WriteByte(' ')
			i++
		case s[i] == ' ' || s[i] == '\t' || s[i] == '\n':
			if cur.Len() > 0 {
				items = append(items, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(s[i])
		}
	}
	if cur.Len() > 0 {
		items = append(items, cur.String())
	}
	return items
}
