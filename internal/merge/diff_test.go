package merge

import (
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	script := Lines([]string{"a", "b", "c"}, []string{"a", "x", "c", "d"})

	var got []string
	for _, l := range script {
		switch l.Op {
		case OpEqual:
			got = append(got, "="+l.Text)
		case OpInsert:
			got = append(got, "+"+l.Text)
		case OpDelete:
			got = append(got, "-"+l.Text)
		}
	}
	want := "=a +x -b =c +d"
	if strings.Join(got, " ") != want {
		// LCS ties may order the replace as delete-then-insert; both are valid.
		alt := "=a -b +x =c +d"
		if strings.Join(got, " ") != alt {
			t.Errorf("Lines() = %q, want %q or %q", strings.Join(got, " "), want, alt)
		}
	}
}

func TestUnified_Identical(t *testing.T) {
	if d := Unified("pom.xml", []byte("a\nb\n"), []byte("a\nb\n")); d != "" {
		t.Errorf("Unified() = %q, want empty", d)
	}
}

func TestUnified_Insertion(t *testing.T) {
	before := "<project>\n  <a/>\n</project>\n"
	after := "<project>\n  <a/>\n  <b/>\n</project>\n"

	d := Unified("pom.xml", []byte(before), []byte(after))
	for _, want := range []string{
		"--- a/pom.xml\n",
		"+++ b/pom.xml\n",
		"@@ -1,3 +1,4 @@\n",
		"+  <b/>\n",
		" </project>\n",
	} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}
}

func TestUnified_SeparateHunks(t *testing.T) {
	var a, b []string
	for i := range 20 {
		line := strings.Repeat("x", i+1)
		a = append(a, line)
		b = append(b, line)
	}
	b[1] = "changed-early"
	b[18] = "changed-late"

	d := Unified("f", []byte(strings.Join(a, "\n")), []byte(strings.Join(b, "\n")))
	if n := strings.Count(d, "@@ -"); n != 2 {
		t.Errorf("hunks = %d, want 2:\n%s", n, d)
	}
}

func TestStats(t *testing.T) {
	added, removed := Stats([]byte("a\nb\n"), []byte("a\nc\nb\nd\n"))
	if added != 2 || removed != 0 {
		t.Errorf("Stats() = (%d, %d), want (2, 0)", added, removed)
	}
}
