package gradle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/pkg/models"
)

func testRequirements() descriptor.Requirements {
	return descriptor.Requirements{
		GroupID:          "io.quarkus",
		ArtifactID:       "basic-rest",
		Version:          "1.0.0-SNAPSHOT",
		PluginGroupID:    "io.quarkus.platform",
		PluginArtifactID: "quarkus-maven-plugin",
		PluginVersion:    "3.15.1",
		GradlePluginID:   "io.quarkus",
		BOMGroupID:       "io.quarkus.platform",
		BOMArtifactID:    "quarkus-bom",
		BOMVersion:       "3.15.1",
		Dependencies: []models.Dependency{
			{GroupID: "io.quarkus", ArtifactID: "quarkus-rest"},
			{GroupID: "io.quarkus", ArtifactID: "quarkus-junit5", Scope: "test"},
		},
	}
}

func TestParse_Blocks(t *testing.T) {
	src := `// a { brace in a comment
plugins {
    id 'java'
}
/* another { */
dependencies {
    implementation "g:a:${version}"
    constraints {
        implementation 'x:y:1' // }
    }
}
def s = '''{{{'''
`
	s, err := Parse("build.gradle", []byte(src))
	require.NoError(t, err)
	require.Len(t, s.Blocks, 2)
	assert.Equal(t, "plugins", s.Blocks[0].Name)

	deps := s.Block("dependencies")
	require.NotNil(t, deps)
	require.NotNil(t, deps.Child("constraints"))
	assert.Equal(t, byte('}'), src[deps.Close])
	assert.NotContains(t, s.Code(), "brace in a comment")
}

func TestParse_SlashyStrings(t *testing.T) {
	src := "def re = ~/\\{/\n" +
		"def path = /a\\/b}/\n" +
		"def half = total / 2\n" +
		"tasks.register('check', { matches(/}/) })\n" +
		"plugins {\n    id 'java'\n}\n"
	s, err := Parse("build.gradle", []byte(src))
	require.NoError(t, err)

	var names []string
	for _, b := range s.Blocks {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"", "plugins"}, names)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed block", "plugins {\n id 'java'\n"},
		{"stray brace", "}\n"},
		{"unterminated string", "plugins { id 'java }\n"},
		{"unterminated comment", "/* plugins {}\n"},
		{"unterminated triple string", "def s = '''abc\n"},
		{"unterminated slashy string", "def re = ~/abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeBuild([]byte(tt.src), testRequirements())
			require.Error(t, err)
			assert.ErrorIs(t, err, descriptor.ErrMalformed)
		})
	}
}

func TestMergeBuild_EmptyScript(t *testing.T) {
	res, err := MergeBuild(nil, testRequirements())
	require.NoError(t, err)
	require.True(t, res.Changed)

	out := string(res.Content)
	assert.True(t, strings.HasPrefix(out, "plugins {\n    id 'io.quarkus'\n}\n"))
	assert.Contains(t, out, "${quarkusPlatformGroupId}:${quarkusPlatformArtifactId}:${quarkusPlatformVersion}")
	assert.Contains(t, out, "    implementation 'io.quarkus:quarkus-rest'\n")
	assert.Contains(t, out, "    testImplementation 'io.quarkus:quarkus-junit5'\n")
	assert.Contains(t, out, "    mavenCentral()\n")

	again, err := MergeBuild(res.Content, testRequirements())
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, out, string(again.Content))
}

func TestMergeBuild_AppendsIntoExistingBlocks(t *testing.T) {
	src := `plugins {
  id 'java'
}

repositories {
  mavenCentral()
}

dependencies {
  implementation("io.quarkus:quarkus-rest:3.15.1")
}
`
	res, err := MergeBuild([]byte(src), testRequirements())
	require.NoError(t, err)

	out := string(res.Content)
	assert.Contains(t, out, "plugins {\n  id 'java'\n  id 'io.quarkus'\n}")
	assert.Contains(t, out, "repositories {\n  mavenCentral()\n  mavenLocal()\n}")
	assert.Equal(t, 1, strings.Count(out, "quarkus-rest"))
	assert.Contains(t, out, "  "+BOMStatement+"\n  testImplementation 'io.quarkus:quarkus-junit5'\n}")
}

func TestMergeBuild_PluginsAfterBuildscript(t *testing.T) {
	src := "buildscript {\n    repositories { mavenCentral() }\n}\n"
	res, err := MergeBuild([]byte(src), testRequirements())
	require.NoError(t, err)

	out := string(res.Content)
	assert.True(t, strings.HasPrefix(out, "buildscript {"))
	assert.Less(t, strings.Index(out, "buildscript"), strings.Index(out, "plugins {"))
}

func TestMergeBuild_InlineBlock(t *testing.T) {
	src := "plugins { id 'java' }\n"
	res, err := MergeBuild([]byte(src), testRequirements())
	require.NoError(t, err)
	assert.Contains(t, string(res.Content), "plugins { id 'java'\n    id 'io.quarkus'\n}")
}

func TestMergeSettings(t *testing.T) {
	res, err := MergeSettings([]byte(""), testRequirements())
	require.NoError(t, err)

	out := string(res.Content)
	assert.True(t, strings.HasPrefix(out, "pluginManagement {"))
	assert.Contains(t, out, `        id "${quarkusPluginId}" version "${quarkusPluginVersion}"`)
	assert.True(t, strings.HasSuffix(out, "rootProject.name='basic-rest'\n"))

	again, err := MergeSettings(res.Content, testRequirements())
	require.NoError(t, err)
	assert.False(t, again.Changed)
}

func TestMergeSettings_ExistingPluginManagement(t *testing.T) {
	src := "pluginManagement {\n    repositories {\n        gradlePluginPortal()\n    }\n}\nrootProject.name = 'x'\n"
	res, err := MergeSettings([]byte(src), testRequirements())
	require.NoError(t, err)

	out := string(res.Content)
	assert.Equal(t, 1, strings.Count(out, "pluginManagement"))
	assert.Contains(t, out, "    plugins {\n        id \"${quarkusPluginId}\"")
	assert.Equal(t, 1, strings.Count(out, "rootProject.name"))
}

func TestMergeProperties(t *testing.T) {
	src := "org.gradle.jvmargs=-Xmx1g\nquarkusPlatformVersion = 3.2.0"
	res, err := MergeProperties([]byte(src), testRequirements())
	require.NoError(t, err)
	require.True(t, res.Changed)

	props := parseProperties(string(res.Content))
	assert.Equal(t, "3.2.0", props[KeyPlatformVersion])
	assert.Equal(t, "io.quarkus.platform", props[KeyPlatformGroupID])
	assert.Equal(t, "quarkus-bom", props[KeyPlatformArtifactID])
	assert.Equal(t, "io.quarkus", props[KeyPluginID])
	assert.True(t, strings.HasPrefix(string(res.Content), src+"\n"))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], KeyPlatformVersion)

	again, err := MergeProperties(res.Content, testRequirements())
	require.NoError(t, err)
	assert.False(t, again.Changed)
}
