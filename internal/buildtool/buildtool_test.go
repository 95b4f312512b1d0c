package buildtool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/pkg/models"
)

// stubRenderer serves fixed template output by name.
type stubRenderer map[string]string

func (s stubRenderer) Render(name string, _ map[string]string) ([]byte, error) {
	return []byte(s[name]), nil
}

const minimalPom = `<?xml version="1.0"?>
<project>
    <modelVersion>4.0.0</modelVersion>
    <groupId>org.acme</groupId>
    <artifactId>acme</artifactId>
    <version>1.0</version>
</project>
`

func testRequirements() descriptor.Requirements {
	return descriptor.Requirements{
		GroupID:          "org.acme",
		ArtifactID:       "acme",
		Version:          "1.0",
		PluginGroupID:    "io.quarkus.platform",
		PluginArtifactID: "quarkus-maven-plugin",
		PluginVersion:    "3.15.1",
		GradlePluginID:   "io.quarkus",
		BOMGroupID:       "io.quarkus.platform",
		BOMArtifactID:    "quarkus-bom",
		BOMVersion:       "3.15.1",
		Dependencies: []models.Dependency{
			{GroupID: "io.quarkus", ArtifactID: "quarkus-rest"},
		},
	}
}

func TestFor(t *testing.T) {
	tool, err := For("")
	require.NoError(t, err)
	assert.Equal(t, models.BuildToolMaven, tool.BuildTool())

	tool, err = For(models.BuildToolGradle)
	require.NoError(t, err)
	assert.Equal(t, []string{"build.gradle", "settings.gradle", "gradle.properties"}, tool.DescriptorFiles())
	assert.Equal(t, "build", tool.Layout().BuildDir)

	_, err = For("ant")
	assert.ErrorIs(t, err, ErrUnsupported)

	assert.Len(t, All(), len(models.ValidBuildTools()))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name         string
		tool         models.BuildTool
		files        []string
		want         models.DetectedState
		wantWarnings int
	}{
		{"empty", models.BuildToolMaven, nil, models.StateEmpty, 0},
		{"own pom", models.BuildToolMaven, []string{"pom.xml", "src"}, models.StateHasDescriptor, 0},
		{"pom for gradle", models.BuildToolGradle, []string{"pom.xml"}, models.StateForeignOrNoDescriptor, 1},
		{"gradle for maven", models.BuildToolMaven, []string{"build.gradle", "settings.gradle"}, models.StateForeignOrNoDescriptor, 2},
		{"kotlin dsl", models.BuildToolGradle, []string{"settings.gradle.kts"}, models.StateForeignOrNoDescriptor, 1},
		{"mixed", models.BuildToolGradle, []string{"build.gradle", "pom.xml"}, models.StateHasDescriptor, 1},
		{"unrelated", models.BuildToolMaven, []string{"notes.md"}, models.StateForeignOrNoDescriptor, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(root, f), nil, 0o644))
			}
			tool, err := For(tt.tool)
			require.NoError(t, err)

			state, warnings, err := tool.Detect(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
			assert.Len(t, warnings, tt.wantWarnings)
		})
	}
}

func TestDetect_MissingRoot(t *testing.T) {
	state, warnings, err := mavenTool.Detect(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, models.StateEmpty, state)
	assert.Empty(t, warnings)
}

func TestWriteDescriptor_Fresh(t *testing.T) {
	root := t.TempDir()
	r := stubRenderer{"maven/pom.xml.tmpl": minimalPom}

	changes, warnings, err := mavenTool.WriteDescriptor(context.Background(), root, r, nil, testRequirements(), false)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, changes, 1)
	assert.Equal(t, ActionCreated, changes[0].Action)
	assert.Empty(t, changes[0].Diff)

	data, err := os.ReadFile(filepath.Join(root, "pom.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<artifactId>quarkus-rest</artifactId>")

	changes, _, err = mavenTool.WriteDescriptor(context.Background(), root, r, nil, testRequirements(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, changes[0].Action)
}

func TestWriteDescriptor_DryRunUpdate(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte(minimalPom), 0o644))

	changes, _, err := mavenTool.WriteDescriptor(context.Background(), root, stubRenderer{}, nil, testRequirements(), true)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, ActionUpdated, changes[0].Action)
	assert.Contains(t, changes[0].Diff, "+            <artifactId>quarkus-rest</artifactId>")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, minimalPom, string(data), "dry run must not write")
}

func TestWriteDescriptor_WarningsArePrefixed(t *testing.T) {
	root := t.TempDir()
	props := "quarkusPlatformVersion=3.0.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "gradle.properties"), []byte(props), 0o644))
	r := stubRenderer{}

	_, warnings, err := gradleTool.WriteDescriptor(context.Background(), root, r, nil, testRequirements(), true)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "gradle.properties: ")
}

func TestWriteDescriptor_Malformed(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte("<project>"), 0o644))

	_, _, err := mavenTool.WriteDescriptor(context.Background(), root, stubRenderer{}, nil, testRequirements(), false)
	assert.ErrorIs(t, err, descriptor.ErrMalformed)
}

func TestWriteDescriptor_MalformedLaterFileWritesNothing(t *testing.T) {
	root := t.TempDir()
	build := "plugins {\n    id 'java'\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.gradle"), []byte(build), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "settings.gradle"), []byte("pluginManagement {\n"), 0o644))

	changes, _, err := gradleTool.WriteDescriptor(context.Background(), root, stubRenderer{}, nil, testRequirements(), false)
	require.ErrorIs(t, err, descriptor.ErrMalformed)
	assert.Empty(t, changes)

	got, err := os.ReadFile(filepath.Join(root, "build.gradle"))
	require.NoError(t, err)
	assert.Equal(t, build, string(got))
	assert.NoFileExists(t, filepath.Join(root, "gradle.properties"))
}

func TestWriteDescriptor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := mavenTool.WriteDescriptor(ctx, t.TempDir(), stubRenderer{}, nil, testRequirements(), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "created", ActionCreated.String())
	assert.Equal(t, "skipped", ActionSkipped.String())
}
