package pom

import (
	"sort"
	"strings"
)

// Element is a new element to be rendered into a document.
type Element struct {
	Name     string
	Text     string
	Children []*Element
}

// El builds an element with children.
func El(name string, children ...*Element) *Element {
	return &Element{Name: name, Children: children}
}

// Leaf builds a text-only element.
func Leaf(name, text string) *Element {
	return &Element{Name: name, Text: text}
}

// Child returns the first child named name.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (e *Element) render(b *strings.Builder, indent, unit, nl string) {
	b.WriteString("<" + e.Name + ">")
	if len(e.Children) == 0 {
		b.WriteString(textEscaper.Replace(e.Text))
		b.WriteString("</" + e.Name + ">")
		return
	}
	for _, c := range e.Children {
		b.WriteString(nl + indent + unit)
		c.render(b, indent+unit, unit, nl)
	}
	b.WriteString(nl + indent + "</" + e.Name + ">")
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type anchor struct {
	node  *Node
	after bool // insert after node instead of inside it
}

// Editor collects insertions against a parsed document and applies them in
// one pass. Nothing outside the insertion points changes.
type Editor struct {
	doc     *Document
	pending map[anchor][]*Element
	order   []anchor
}

// NewEditor starts an edit session on doc.
func NewEditor(doc *Document) *Editor {
	return &Editor{doc: doc, pending: make(map[anchor][]*Element)}
}

// HasEdits reports whether any insertion is pending.
func (e *Editor) HasEdits() bool {
	return len(e.order) > 0
}

func (e *Editor) add(a anchor, el *Element) {
	if _, ok := e.pending[a]; !ok {
		e.order = append(e.order, a)
	}
	e.pending[a] = append(e.pending[a], el)
}

// Append adds el as the last child of parent.
func (e *Editor) Append(parent *Node, el *Element) {
	e.add(anchor{node: parent}, el)
}

// InsertAfter adds el as the next sibling of n.
func (e *Editor) InsertAfter(n *Node, el *Element) {
	e.add(anchor{node: n, after: true}, el)
}

// AppendPath appends el below the element reached by following path from
// parent. Missing elements along the path are created once, reusing
// elements created by earlier calls.
func (e *Editor) AppendPath(parent *Node, path []string, el *Element) {
	n := parent
	i := 0
	for ; i < len(path); i++ {
		c := n.Child(path[i])
		if c == nil {
			break
		}
		n = c
	}
	if i == len(path) {
		e.Append(n, el)
		return
	}

	var holder *Element
	for _, p := range e.pending[anchor{node: n}] {
		if p.Name == path[i] {
			holder = p
			break
		}
	}
	if holder == nil {
		holder = &Element{Name: path[i]}
		e.Append(n, holder)
	}
	for i++; i < len(path); i++ {
		next := holder.Child(path[i])
		if next == nil {
			next = &Element{Name: path[i]}
			holder.Children = append(holder.Children, next)
		}
		holder = next
	}
	holder.Children = append(holder.Children, el)
}

type splice struct {
	off, end int
	text     string
	seq      int
}

// Apply returns the edited document bytes.
func (e *Editor) Apply() []byte {
	out := append([]byte(nil), e.doc.src...)
	for _, s := range e.splices() {
		tail := append([]byte(s.text), out[s.end:]...)
		out = append(out[:s.off], tail...)
	}
	return out
}

// splices renders the pending insertions in the order Apply needs them.
func (e *Editor) splices() []splice {
	d := e.doc
	nl, unit := d.newline, d.unit

	var splices []splice
	for seq, a := range e.order {
		els := e.pending[a]
		var b strings.Builder

		switch {
		case a.after:
			indent := d.indentOf(a.node)
			for _, el := range els {
				b.WriteString(nl + indent)
				el.render(&b, indent, unit, nl)
			}
			splices = append(splices, splice{off: a.node.End, end: a.node.End, text: b.String(), seq: seq})

		case a.node.SelfClosing:
			n := a.node
			indent := d.indentOf(n)
			open := strings.TrimSuffix(string(d.src[n.Start:n.OpenEnd]), "/>")
			b.WriteString(strings.TrimRight(open, " \t\r\n") + ">")
			for _, el := range els {
				b.WriteString(nl + indent + unit)
				el.render(&b, indent+unit, unit, nl)
			}
			b.WriteString(nl + indent + "</" + n.Name + ">")
			splices = append(splices, splice{off: n.Start, end: n.End, text: b.String(), seq: seq})

		default:
			n := a.node
			childIndent := d.childIndent(n)
			wsStart := n.CloseStart
			for wsStart > n.OpenEnd && isSpace(d.src[wsStart-1]) {
				wsStart--
			}
			for _, el := range els {
				b.WriteString(nl + childIndent)
				el.render(&b, childIndent, unit, nl)
			}
			off := wsStart
			if !strings.Contains(string(d.src[wsStart:n.CloseStart]), "\n") {
				off = n.CloseStart
				b.WriteString(nl + d.indentOf(n))
			}
			splices = append(splices, splice{off: off, end: off, text: b.String(), seq: seq})
		}
	}

	// Apply back to front so earlier offsets stay valid. At equal offsets,
	// replacements go first and later insertions are applied before earlier
	// ones, which leaves them in call order.
	sort.Slice(splices, func(i, j int) bool {
		si, sj := splices[i], splices[j]
		if si.off != sj.off {
			return si.off > sj.off
		}
		ri, rj := si.end > si.off, sj.end > sj.off
		if ri != rj {
			return ri
		}
		return si.seq > sj.seq
	})
	return splices
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
