package pom

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/internal/merge"
	"github.com/modu-ai/kickstart/pkg/models"
)

func testRequirements() descriptor.Requirements {
	return descriptor.Requirements{
		GroupID:          "org.acme",
		ArtifactID:       "acme",
		Version:          "1.0.0-SNAPSHOT",
		PluginGroupID:    "io.quarkus.platform",
		PluginArtifactID: "quarkus-maven-plugin",
		PluginVersion:    "3.15.1",
		BOMGroupID:       "io.quarkus.platform",
		BOMArtifactID:    "quarkus-bom",
		BOMVersion:       "3.15.1",
		Dependencies: []models.Dependency{
			{GroupID: "io.quarkus", ArtifactID: "quarkus-rest"},
			{GroupID: "io.quarkus", ArtifactID: "quarkus-junit5", Scope: "test"},
		},
	}
}

const minimalPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>org.acme</groupId>
  <artifactId>acme</artifactId>
  <version>1.0.0-SNAPSHOT</version>
</project>
`

func TestParse_Offsets(t *testing.T) {
	src := []byte(`<project><a>x</a><b/></project>`)
	doc, err := Parse(src)
	require.NoError(t, err)

	a := doc.Root.Child("a")
	require.NotNil(t, a)
	assert.Equal(t, "<a>x</a>", string(src[a.Start:a.End]))
	assert.Equal(t, "x", a.Value())
	assert.False(t, a.SelfClosing)

	b := doc.Root.Child("b")
	require.NotNil(t, b)
	assert.True(t, b.SelfClosing)
	assert.Equal(t, "<b/>", string(src[b.Start:b.End]))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"unclosed", "<project><build></project>"},
		{"truncated", "<project><build>"},
		{"text outside root", "<project/>trailing"},
		{"two roots", "<project/><project/>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, descriptor.ErrMalformed), "got %v", err)
		})
	}
}

func TestMerge_InjectsEverythingOnce(t *testing.T) {
	res, err := Merge([]byte(minimalPom), testRequirements())
	require.NoError(t, err)
	require.True(t, res.Changed)

	out := string(res.Content)
	assert.True(t, strings.HasPrefix(out, minimalPom[:strings.Index(minimalPom, "</project>")-1]))
	assert.Equal(t, 1, strings.Count(out, "<artifactId>quarkus-maven-plugin</artifactId>"))
	assert.Equal(t, 1, strings.Count(out, "<scope>import</scope>"))
	assert.Contains(t, out, "<version>${quarkus-plugin.version}</version>")
	assert.Contains(t, out, "<quarkus.platform.version>3.15.1</quarkus.platform.version>")
	assert.Contains(t, out, "<artifactId>quarkus-rest</artifactId>")
	assert.Contains(t, out, "<scope>test</scope>")
	assert.Equal(t, 1, strings.Count(out, "<dependencyManagement>"))
	assert.Equal(t, 1, strings.Count(out, "<properties>"))

	// Properties land right after the coordinates, indented like siblings.
	assert.Contains(t, out, "<version>1.0.0-SNAPSHOT</version>\n  <properties>\n    <quarkus-plugin.version>")

	doc, err := Parse(res.Content)
	require.NoError(t, err)
	plugins := doc.Root.Path("build", "plugins").ChildrenNamed("plugin")
	require.Len(t, plugins, 1)
	goals := plugins[0].Path("executions", "execution", "goals").ChildrenNamed("goal")
	assert.Len(t, goals, 3)
}

func TestMerge_Idempotent(t *testing.T) {
	first, err := Merge([]byte(minimalPom), testRequirements())
	require.NoError(t, err)

	second, err := Merge(first.Content, testRequirements())
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.True(t, bytes.Equal(first.Content, second.Content))
}

func TestMerge_KeepsExistingEntries(t *testing.T) {
	src := `<project>
    <properties>
        <quarkus.platform.version>3.2.0</quarkus.platform.version>
    </properties>
    <dependencies>
        <dependency>
            <groupId>io.quarkus</groupId>
            <artifactId>quarkus-rest</artifactId>
        </dependency>
    </dependencies>
    <build>
        <plugins>
            <plugin>
                <groupId>io.quarkus</groupId>
                <artifactId>quarkus-maven-plugin</artifactId>
                <version>3.2.0</version>
            </plugin>
        </plugins>
    </build>
</project>`
	res, err := Merge([]byte(src), testRequirements())
	require.NoError(t, err)
	require.True(t, res.Changed)

	out := string(res.Content)
	assert.Equal(t, 1, strings.Count(out, "<artifactId>quarkus-rest</artifactId>"))
	assert.Equal(t, 1, strings.Count(out, "<artifactId>quarkus-maven-plugin</artifactId>"))
	assert.Contains(t, out, "<quarkus.platform.version>3.2.0</quarkus.platform.version>")
	assert.Contains(t, out, "        <quarkus.platform.group-id>io.quarkus.platform</quarkus.platform.group-id>\n    </properties>")

	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "quarkus.platform.version")
	assert.Contains(t, res.Warnings[1], "older")
}

func TestMerge_PreservesEverythingOutsideInsertions(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<!-- generated by hand -->
<project>
    <modelVersion>4.0.0</modelVersion>
    <groupId>org.acme</groupId>
    <artifactId>acme</artifactId>
    <version>1.0.0-SNAPSHOT</version>
    <properties>
        <!-- compiler -->
        <maven.compiler.release>17</maven.compiler.release>
    </properties>
    <dependencies>
        <dependency>
            <groupId>org.junit.jupiter</groupId>
            <artifactId>junit-jupiter</artifactId>
        </dependency>
        <!-- more to come -->
    </dependencies>
    <build>
        <plugins>
            <plugin>
                <artifactId>maven-surefire-plugin</artifactId>
            </plugin>
        </plugins>
        <!-- end of plugins -->
    </build>
    <profiles>
        <profile><id>native</id></profile>
    </profiles>
</project>
<!-- trailer -->
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	res, err := Merge([]byte(src), testRequirements())
	require.NoError(t, err)
	require.True(t, res.Changed)

	// Rebuild the plan Merge used and cut every inserted span out again.
	ed := NewEditor(doc)
	mergeProperties(ed, doc.Root, testRequirements())
	ed.AppendPath(doc.Root, []string{"dependencyManagement", "dependencies"}, bomElement())
	for _, dep := range testRequirements().Dependencies {
		ed.AppendPath(doc.Root, []string{"dependencies"}, dependencyElement(dep))
	}
	ed.AppendPath(doc.Root, []string{"build", "plugins"}, pluginElement(testRequirements()))
	require.Equal(t, string(res.Content), string(ed.Apply()))

	splices := ed.splices()
	sort.Slice(splices, func(i, j int) bool {
		if splices[i].off != splices[j].off {
			return splices[i].off < splices[j].off
		}
		return splices[i].seq < splices[j].seq
	})
	require.Len(t, splices, 4)

	out := string(res.Content)
	var rest strings.Builder
	pos, prev := 0, 0
	for _, sp := range splices {
		require.Equal(t, sp.off, sp.end, "splice at %d replaces source bytes", sp.off)
		kept := sp.off - prev
		rest.WriteString(out[pos : pos+kept])
		pos += kept
		require.Equal(t, sp.text, out[pos:pos+len(sp.text)])
		pos += len(sp.text)
		prev = sp.off
	}
	rest.WriteString(out[pos:])
	assert.Equal(t, src, rest.String())

	added, removed := merge.Stats([]byte(src), res.Content)
	assert.Zero(t, removed)
	assert.Positive(t, added)
	assert.Contains(t, out, "<!-- more to come -->\n        <dependency>\n            <groupId>io.quarkus</groupId>")
	assert.Contains(t, out, "</plugin>\n            <plugin>\n                <groupId>io.quarkus.platform</groupId>")
}

func TestMerge_DeclaredLatin1(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<project>\n" +
		"    <groupId>org.acme</groupId>\n" +
		"    <artifactId>acme</artifactId>\n" +
		"    <version>1.0</version>\n" +
		"    <name>Caf\xe9 \xe0 la cr\xe8me</name>\n" +
		"    <description>D\xe9j\xe0 vu</description>\n" +
		"</project>\n"

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "Café à la crème", doc.Root.ChildValue("name"))
	desc := doc.Root.Child("description")
	assert.Equal(t, "<description>D\xe9j\xe0 vu</description>", src[desc.Start:desc.End])

	res, err := Merge([]byte(src), testRequirements())
	require.NoError(t, err)
	require.True(t, res.Changed)
	out := string(res.Content)
	assert.True(t, strings.HasPrefix(out, src[:strings.Index(src, "</project>")-1]))
	assert.Contains(t, out, "</description>\n    <properties>\n")
	assert.NotContains(t, out, "\u00e9")

	second, err := Merge(res.Content, testRequirements())
	require.NoError(t, err)
	assert.False(t, second.Changed)
}

func TestParse_UnsupportedEncoding(t *testing.T) {
	_, err := Parse([]byte(`<?xml version="1.0" encoding="UTF-16"?><project/>`))
	require.ErrorIs(t, err, descriptor.ErrMalformed)
	assert.Contains(t, err.Error(), "UTF-16")

	_, err = Parse([]byte(`<?xml version="1.0" encoding="no-such-charset"?><project/>`))
	require.ErrorIs(t, err, descriptor.ErrMalformed)
}

func TestMerge_ExpandsSelfClosing(t *testing.T) {
	src := "<project>\n\t<dependencies/>\n</project>\n"
	res, err := Merge([]byte(src), testRequirements())
	require.NoError(t, err)

	out := string(res.Content)
	assert.Contains(t, out, "\t<dependencies>\n\t\t<dependency>\n\t\t\t<groupId>io.quarkus</groupId>")
	assert.NotContains(t, out, "<dependencies/>")
	_, err = Parse(res.Content)
	require.NoError(t, err)
}

func TestMerge_PreservesCRLF(t *testing.T) {
	src := strings.ReplaceAll(minimalPom, "\n", "\r\n")
	res, err := Merge([]byte(src), testRequirements())
	require.NoError(t, err)
	assert.NotContains(t, strings.ReplaceAll(string(res.Content), "\r\n", ""), "\n")
}

func TestMerge_RejectsForeignRoot(t *testing.T) {
	_, err := Merge([]byte("<settings/>"), testRequirements())
	require.Error(t, err)
	assert.ErrorIs(t, err, descriptor.ErrMalformed)

	var se *descriptor.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Msg, "<settings>")
}

func TestEditor_AppendPathSharesCreatedAncestors(t *testing.T) {
	doc, err := Parse([]byte("<project>\n  <x/>\n</project>"))
	require.NoError(t, err)

	ed := NewEditor(doc)
	ed.AppendPath(doc.Root, []string{"build", "plugins"}, Leaf("plugin", "a"))
	ed.AppendPath(doc.Root, []string{"build", "plugins"}, Leaf("plugin", "b"))
	out := string(ed.Apply())

	assert.Equal(t, 1, strings.Count(out, "<build>"))
	assert.Equal(t, 1, strings.Count(out, "<plugins>"))
	assert.Contains(t, out, "<plugin>a</plugin>\n      <plugin>b</plugin>")
}
