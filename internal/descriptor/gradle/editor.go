package gradle

import (
	"sort"
	"strings"
)

// A snippet is one or more lines of DSL. Each leading tab on a line stands
// for one indentation unit of the target script.

type insertion struct {
	seq int
	// inside is set when the snippets go before the closing brace of block.
	block    *Block
	inside   bool
	snippets []string
}

// Editor collects statement and block insertions and applies them in one
// pass.
type Editor struct {
	s        *Script
	inserts  []*insertion
	byBlock  map[*Block]*insertion
	prepends []string
	appends  []string
}

// NewEditor starts an edit session on s.
func NewEditor(s *Script) *Editor {
	return &Editor{s: s, byBlock: make(map[*Block]*insertion)}
}

// HasEdits reports whether anything is pending.
func (e *Editor) HasEdits() bool {
	return len(e.inserts) > 0 || len(e.prepends) > 0 || len(e.appends) > 0
}

// AppendTo adds snippet as the last statement of b.
func (e *Editor) AppendTo(b *Block, snippet string) {
	if in, ok := e.byBlock[b]; ok {
		in.snippets = append(in.snippets, snippet)
		return
	}
	in := &insertion{block: b, inside: true, seq: len(e.inserts), snippets: []string{snippet}}
	e.byBlock[b] = in
	e.inserts = append(e.inserts, in)
}

// InsertAfter adds snippet as a top-level paragraph after b.
func (e *Editor) InsertAfter(b *Block, snippet string) {
	e.inserts = append(e.inserts, &insertion{block: b, seq: len(e.inserts), snippets: []string{snippet}})
}

// Prepend adds snippet at the top of the script.
func (e *Editor) Prepend(snippet string) {
	e.prepends = append(e.prepends, snippet)
}

// AppendEnd adds snippet at the end of the script.
func (e *Editor) AppendEnd(snippet string) {
	e.appends = append(e.appends, snippet)
}

func (e *Editor) render(snippet, indent string) string {
	lines := strings.Split(snippet, "\n")
	for i, line := range lines {
		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		lines[i] = indent + strings.Repeat(e.s.unit, depth) + line[depth:]
	}
	return strings.Join(lines, e.s.newline)
}

// Apply returns the edited script.
func (e *Editor) Apply() []byte {
	s := e.s
	nl := s.newline

	type splice struct {
		off, end, seq int
		text          string
	}
	splices := make([]splice, 0, len(e.inserts))

	for _, in := range e.inserts {
		var b strings.Builder
		if !in.inside {
			for _, sn := range in.snippets {
				b.WriteString(nl + nl + e.render(sn, ""))
			}
			off := in.block.Close + 1
			splices = append(splices, splice{off: off, end: off, seq: in.seq, text: b.String()})
			continue
		}

		blk := in.block
		indent := s.statementIndent(blk)
		wsStart := blk.Close
		for wsStart > blk.Open+1 && isSpace(s.src[wsStart-1]) {
			wsStart--
		}
		for _, sn := range in.snippets {
			b.WriteString(nl + e.render(sn, indent))
		}
		// A block closed on the line of its last statement gets its closing
		// brace moved to a line of its own.
		end := wsStart
		if !strings.Contains(string(s.src[wsStart:blk.Close]), "\n") {
			end = blk.Close
			b.WriteString(nl + s.indentOf(blk.Open))
		}
		splices = append(splices, splice{off: wsStart, end: end, seq: in.seq, text: b.String()})
	}

	// Back to front; at equal offsets later insertions go first so the
	// result keeps call order.
	sort.Slice(splices, func(i, j int) bool {
		if splices[i].off != splices[j].off {
			return splices[i].off > splices[j].off
		}
		return splices[i].seq > splices[j].seq
	})

	body := append([]byte(nil), s.src...)
	for _, sp := range splices {
		tail := append([]byte(sp.text), body[sp.end:]...)
		body = append(body[:sp.off], tail...)
	}

	var out strings.Builder
	if len(e.prepends) > 0 {
		parts := make([]string, len(e.prepends))
		for i, sn := range e.prepends {
			parts[i] = e.render(sn, "")
		}
		out.WriteString(strings.Join(parts, nl+nl))
		out.WriteString(nl)
		if strings.TrimSpace(string(body)) != "" {
			out.WriteString(nl)
		}
	}
	out.Write(body)
	if len(e.appends) > 0 {
		if strings.TrimSpace(out.String()) != "" {
			if !strings.HasSuffix(out.String(), "\n") {
				out.WriteString(nl)
			}
			out.WriteString(nl)
		}
		parts := make([]string, len(e.appends))
		for i, sn := range e.appends {
			parts[i] = e.render(sn, "")
		}
		out.WriteString(strings.Join(parts, nl+nl))
		out.WriteString(nl)
	}
	return []byte(out.String())
}
