// Package pom models a Maven pom.xml as a tree of elements that remember
// their byte offsets in the source, so new elements can be spliced in
// without re-serializing (and disturbing) anything else.
package pom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/modu-ai/kickstart/internal/descriptor"
)

// Node is an element of the parsed document.
type Node struct {
	Name string

	Start       int // offset of '<' of the start tag
	OpenEnd     int // offset just past the start tag
	CloseStart  int // offset of '<' of the end tag; OpenEnd for self-closing elements
	End         int // offset just past the element
	SelfClosing bool

	Parent   *Node
	Children []*Node

	text []byte
}

// Child returns the first direct child named name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children named name.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Path follows the first child with each name in turn.
func (n *Node) Path(names ...string) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Value returns the trimmed character data directly inside the element.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(string(n.text))
}

// ChildValue returns the value of the first child named name.
func (n *Node) ChildValue(name string) string {
	return n.Child(name).Value()
}

// Document is a parsed pom with its original bytes.
type Document struct {
	src     []byte
	Root    *Node
	newline string
	unit    string
}

// Parse builds the element tree. Input that is not well-formed XML, or that
// has no single root element, fails with a *descriptor.SyntaxError.
// Documents may declare UTF-8, US-ASCII or a single-byte charset such as
// ISO-8859-1; offsets always refer to the original bytes.
func Parse(src []byte) (*Document, error) {
	doc := &Document{src: src, newline: detectNewline(src)}

	text, offsets, err := decodeSource(src)
	if err != nil {
		return nil, err
	}
	pos := func(off int64) int {
		if offsets == nil {
			return int(off)
		}
		return offsets[off]
	}

	dec := xml.NewDecoder(bytes.NewReader(text))
	dec.Strict = true
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) {
		return in, nil
	}

	var stack []*Node
	for {
		before := pos(dec.InputOffset())
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, syntaxError(pos(dec.InputOffset()), err.Error())
		}
		after := pos(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Start: before, OpenEnd: after}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, syntaxError(before, "multiple root elements")
				}
				doc.Root = n
			} else {
				parent := stack[len(stack)-1]
				n.Parent = parent
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if before == after && after == n.OpenEnd {
				n.SelfClosing = true
				n.CloseStart = n.OpenEnd
			} else {
				n.CloseStart = before
			}
			n.End = after

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.text = append(top.text, t...)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, syntaxError(before, "text outside the root element")
			}
		}
	}

	if doc.Root == nil {
		return nil, syntaxError(0, "no root element")
	}
	doc.unit = doc.detectIndentUnit()
	return doc, nil
}

var declaredEncoding = regexp.MustCompile(`^(?:\x{FEFF})?\s*<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// decodeSource returns src as UTF-8. For single-byte charsets it also
// returns, for every decoded offset, the matching offset in src; a nil
// slice means the offsets are identical.
func decodeSource(src []byte) ([]byte, []int, error) {
	m := declaredEncoding.FindSubmatch(src)
	if m == nil {
		return src, nil, nil
	}
	label := string(m[1])
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, nil, syntaxError(0, fmt.Sprintf("unsupported encoding %q", label))
	}
	if enc == unicode.UTF8 {
		return src, nil, nil
	}
	if name, _ := ianaindex.IANA.Name(enc); name == "US-ASCII" {
		return src, nil, nil
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, nil, syntaxError(0, fmt.Sprintf("unsupported encoding %q", label))
	}

	text := make([]byte, 0, len(src))
	offsets := make([]int, 0, len(src)+1)
	for i, b := range src {
		before := len(text)
		text = utf8.AppendRune(text, cm.DecodeByte(b))
		for range len(text) - before {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(src))
	return text, offsets, nil
}

// Bytes returns the source the document was parsed from.
func (d *Document) Bytes() []byte {
	return d.src
}

func syntaxError(off int, msg string) error {
	return &descriptor.SyntaxError{File: "pom.xml", Offset: off, Msg: msg}
}

func detectNewline(src []byte) string {
	if bytes.Contains(src, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}

// lineIndent returns the whitespace that precedes off on its line, and
// whether only whitespace precedes it.
func (d *Document) lineIndent(off int) (string, bool) {
	i := off
	for i > 0 {
		c := d.src[i-1]
		if c == '\n' {
			break
		}
		if c != ' ' && c != '\t' {
			return "", false
		}
		i--
	}
	return string(d.src[i:off]), true
}

// indentOf returns the indentation of n, deriving it from the parent when
// n does not start its own line.
func (d *Document) indentOf(n *Node) string {
	if ind, ok := d.lineIndent(n.Start); ok {
		return ind
	}
	if n.Parent == nil {
		return ""
	}
	return d.indentOf(n.Parent) + d.unit
}

// childIndent is the indentation used for new children of n.
func (d *Document) childIndent(n *Node) string {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if ind, ok := d.lineIndent(n.Children[i].Start); ok {
			return ind
		}
	}
	return d.indentOf(n) + d.unit
}

// detectIndentUnit infers one indentation step from the first child of the
// root that starts on its own line. Four spaces when nothing can be inferred.
func (d *Document) detectIndentUnit() string {
	rootIndent, _ := d.lineIndent(d.Root.Start)
	var walk func(n *Node, parentIndent string) string
	walk = func(n *Node, parentIndent string) string {
		for _, c := range n.Children {
			ind, ok := d.lineIndent(c.Start)
			if ok && len(ind) > len(parentIndent) && strings.HasPrefix(ind, parentIndent) {
				return ind[len(parentIndent):]
			}
			if u := walk(c, ind); u != "" {
				return u
			}
		}
		return ""
	}
	if u := walk(d.Root, rootIndent); u != "" {
		return u
	}
	return "    "
}
