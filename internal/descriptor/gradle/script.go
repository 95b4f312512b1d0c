// Package gradle merges Quarkus requirements into Groovy DSL build scripts,
// settings scripts and gradle.properties. Scripts are read as a tree of
// brace-delimited blocks; strings and comments are skipped so braces inside
// them never count. New statements are spliced in and every other byte of
// the file is kept.
package gradle

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/modu-ai/kickstart/internal/descriptor"
)

// Block is a brace-delimited region such as `plugins { ... }`.
type Block struct {
	// Name is the identifier right before the opening brace, empty when the
	// brace follows anything else (a closure argument list, for instance).
	Name      string
	NameStart int
	Open      int // offset of '{'
	Close     int // offset of '}'

	Parent   *Block
	Children []*Block
}

// Child returns the first nested block named name.
func (b *Block) Child(name string) *Block {
	if b == nil {
		return nil
	}
	for _, c := range b.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Script is a parsed Groovy DSL file.
type Script struct {
	File   string
	Blocks []*Block

	src     []byte
	code    []byte // src with comments blanked out
	newline string
	unit    string
}

// Parse scans src into its block tree. Unbalanced braces and unterminated
// strings or comments fail with a *descriptor.SyntaxError.
func Parse(file string, src []byte) (*Script, error) {
	s := &Script{
		File:    file,
		src:     src,
		code:    append([]byte(nil), src...),
		newline: "\n",
	}
	if bytes.Contains(src, []byte("\r\n")) {
		s.newline = "\r\n"
	}

	var stack []*Block
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			j := i
			for j < len(src) && src[j] != '\n' {
				s.code[j] = ' '
				j++
			}
			i = j

		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				return nil, s.errorf(i, "unterminated comment")
			}
			j := i + 2 + end + 2
			for k := i; k < j; k++ {
				if src[k] != '\n' && src[k] != '\r' {
					s.code[k] = ' '
				}
			}
			i = j

		case c == '\'' || c == '"':
			j, err := s.skipString(i)
			if err != nil {
				return nil, err
			}
			i = j

		case c == '/' && s.slashyStart(i):
			j, err := s.skipSlashy(i)
			if err != nil {
				return nil, err
			}
			i = j

		case c == '{':
			b := &Block{Open: i}
			b.Name, b.NameStart = nameBefore(s.code, i)
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				b.Parent = parent
				parent.Children = append(parent.Children, b)
			} else {
				s.Blocks = append(s.Blocks, b)
			}
			stack = append(stack, b)
			i++

		case c == '}':
			if len(stack) == 0 {
				return nil, s.errorf(i, "unexpected '}'")
			}
			stack[len(stack)-1].Close = i
			stack = stack[:len(stack)-1]
			i++

		default:
			i++
		}
	}
	if len(stack) > 0 {
		b := stack[len(stack)-1]
		return nil, s.errorf(b.Open, fmt.Sprintf("block %q is never closed", b.Name))
	}

	s.unit = s.detectIndentUnit()
	return s, nil
}

func (s *Script) errorf(off int, msg string) error {
	return &descriptor.SyntaxError{File: s.File, Offset: off, Msg: msg}
}

func (s *Script) skipString(i int) (int, error) {
	src := s.src
	q := src[i]
	if i+2 < len(src) && src[i+1] == q && src[i+2] == q {
		end := bytes.Index(src[i+3:], []byte{q, q, q})
		if end < 0 {
			return 0, s.errorf(i, "unterminated string")
		}
		return i + 3 + end + 3, nil
	}
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j + 1, nil
		case '\n':
			return 0, s.errorf(i, "unterminated string")
		}
	}
	return 0, s.errorf(i, "unterminated string")
}

// slashyStart reports whether the '/' at i opens a slashy string such as
// ~/\d+/. Only positions where a division cannot appear qualify.
func (s *Script) slashyStart(i int) bool {
	j := i
	for j > 0 && isSpace(s.code[j-1]) {
		j--
	}
	if j == 0 {
		return false
	}
	switch s.code[j-1] {
	case '~', '=', '(', ',':
		return true
	}
	return false
}

// skipSlashy returns the offset after the slashy string opened at i. Only
// "\/" is an escape inside it and it may span lines.
func (s *Script) skipSlashy(i int) (int, error) {
	src := s.src
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			if j+1 < len(src) && src[j+1] == '/' {
				j++
			}
		case '/':
			return j + 1, nil
		}
	}
	return 0, s.errorf(i, "unterminated slashy string")
}

func nameBefore(code []byte, open int) (string, int) {
	j := open
	for j > 0 && isSpace(code[j-1]) {
		j--
	}
	end := j
	for j > 0 && isIdent(code[j-1]) {
		j--
	}
	return string(code[j:end]), j
}

// Block returns the first top-level block named name.
func (s *Script) Block(name string) *Block {
	for _, b := range s.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Code returns the text of the whole script with comments blanked out.
func (s *Script) Code() string {
	return string(s.code)
}

// Body returns the comment-free text between the braces of b.
func (s *Script) Body(b *Block) string {
	return string(s.code[b.Open+1 : b.Close])
}

func (s *Script) lineStart(off int) int {
	for off > 0 && s.src[off-1] != '\n' {
		off--
	}
	return off
}

// indentOf returns the leading whitespace of the line holding off.
func (s *Script) indentOf(off int) string {
	start := s.lineStart(off)
	end := start
	for end < len(s.src) && (s.src[end] == ' ' || s.src[end] == '\t') {
		end++
	}
	return string(s.src[start:end])
}

// statementIndent is the indentation of the first statement inside b, or
// one unit deeper than the block itself when b has no statement on a line
// of its own.
func (s *Script) statementIndent(b *Block) string {
	if ind := s.statementIndentOrEmpty(b); ind != "" {
		return ind
	}
	return s.indentOf(b.Open) + s.unit
}

func (s *Script) detectIndentUnit() string {
	for _, b := range s.Blocks {
		outer := s.indentOf(b.Open)
		inner := s.statementIndentOrEmpty(b)
		if len(inner) > len(outer) && strings.HasPrefix(inner, outer) {
			return inner[len(outer):]
		}
	}
	return "    "
}

func (s *Script) statementIndentOrEmpty(b *Block) string {
	body := s.src[b.Open+1 : b.Close]
	lines := strings.Split(string(body), "\n")
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		return line[:len(line)-len(trimmed)]
	}
	return ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isIdent(c byte) bool {
	return c == '_' || c == '.' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
