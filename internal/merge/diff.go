package merge

import (
	"fmt"
	"strings"
)

// Op is the kind of a line-level edit.
type Op int

const (
	// OpEqual keeps a line.
	OpEqual Op = iota
	// OpInsert adds a line from the new text.
	OpInsert
	// OpDelete drops a line from the old text.
	OpDelete
)

// Line is one entry of an edit script.
type Line struct {
	Op   Op
	Text string
	Old  int // 0-based line in the old text, -1 for inserts
	New  int // 0-based line in the new text, -1 for deletes
}

// Lines computes a full edit script (equal lines included) between a and b
// using a longest-common-subsequence table.
func Lines(a, b []string) []Line {
	m, n := len(a), len(b)

	// lcs[i][j] = LCS length of a[i:] and b[j:]
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]Line, 0, max(m, n))
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && a[i] == b[j]:
			script = append(script, Line{Op: OpEqual, Text: a[i], Old: i, New: j})
			i++
			j++
		case j < n && (i == m || lcs[i][j+1] >= lcs[i+1][j]):
			script = append(script, Line{Op: OpInsert, Text: b[j], Old: -1, New: j})
			j++
		default:
			script = append(script, Line{Op: OpDelete, Text: a[i], Old: i, New: -1})
			i++
		}
	}
	return script
}

// Stats counts inserted and deleted lines between before and after.
func Stats(before, after []byte) (added, removed int) {
	for _, l := range Lines(splitLines(string(before)), splitLines(string(after))) {
		switch l.Op {
		case OpInsert:
			added++
		case OpDelete:
			removed++
		}
	}
	return added, removed
}

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Unified renders a unified diff of before and after for name.
// It returns the empty string when the contents are identical.
func Unified(name string, before, after []byte) string {
	script := Lines(splitLines(string(before)), splitLines(string(after)))

	var changed []int
	for idx, l := range script {
		if l.Op != OpEqual {
			changed = append(changed, idx)
		}
	}
	if len(changed) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)

	for start := 0; start < len(changed); {
		end := start
		for end+1 < len(changed) && changed[end+1]-changed[end] <= 2*contextLines {
			end++
		}
		from := max(changed[start]-contextLines, 0)
		to := min(changed[end]+contextLines+1, len(script))
		writeHunk(&sb, script[from:to])
		start = end + 1
	}
	return sb.String()
}

func writeHunk(sb *strings.Builder, hunk []Line) {
	oldStart, newStart := -1, -1
	oldCount, newCount := 0, 0
	for _, l := range hunk {
		if l.Old >= 0 {
			if oldStart < 0 {
				oldStart = l.Old
			}
			oldCount++
		}
		if l.New >= 0 {
			if newStart < 0 {
				newStart = l.New
			}
			newCount++
		}
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart+1, oldCount, newStart+1, newCount)

	for _, l := range hunk {
		switch l.Op {
		case OpEqual:
			sb.WriteString(" ")
		case OpInsert:
			sb.WriteString("+")
		case OpDelete:
			sb.WriteString("-")
		}
		sb.WriteString(l.Text)
		sb.WriteString("\n")
	}
}

// splitLines splits on "\n", dropping the empty element after a final newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
