package template

import (
	"strings"
	"testing"

	"github.com/modu-ai/kickstart/pkg/models"
)

func TestDefaultCatalogNames(t *testing.T) {
	c := Default()
	names := c.Names()

	want := []string{
		"common/Dockerfile.jvm.tmpl",
		"common/Dockerfile.native.tmpl",
		"common/application.properties.tmpl",
		"common/index.html.tmpl",
		"gradle/README.md.tmpl",
		"gradle/build.gradle.tmpl",
		"gradle/gitignore.tmpl",
		"gradle/gradle.properties.tmpl",
		"gradle/settings.gradle.tmpl",
		ResourceTemplate,
		ResourceTestTemplate,
		NativeTestTemplate,
		SpringControllerTemplate,
		"maven/README.md.tmpl",
		"maven/gitignore.tmpl",
		"maven/pom.xml.tmpl",
	}
	for _, name := range want {
		if !c.Has(name) {
			t.Errorf("catalog missing %q (have %v)", name, names)
		}
	}
	if len(names) != len(want) {
		t.Errorf("catalog has %d templates, want %d", len(names), len(want))
	}
	if Default() != c {
		t.Error("Default() should return the same catalog")
	}
}

func TestDefaultCatalogRendersEverything(t *testing.T) {
	for _, bt := range models.ValidBuildTools() {
		t.Run(string(bt), func(t *testing.T) {
			subs, err := Resolve(models.ProjectConfig{
				GroupID:    "org.acme",
				ArtifactID: "acme",
				Version:    "1.0.0-SNAPSHOT",
				BuildTool:  bt,
				ClassName:  "org.acme.MyResource",
				Root:       t.TempDir(),
			}, nil)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}

			for _, name := range Default().Names() {
				out, err := Default().Render(name, subs)
				if err != nil {
					t.Errorf("Render(%q) error: %v", name, err)
					continue
				}
				if strings.Contains(string(out), "<no value>") {
					t.Errorf("Render(%q) produced <no value>", name)
				}
			}
		})
	}
}

func TestIgnoreTemplates(t *testing.T) {
	maven, err := Default().Render("maven/gitignore.tmpl", nil)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(string(maven), "\ntarget/\n") {
		t.Error("maven ignore file should list target/")
	}

	gradle, err := Default().Render("gradle/gitignore.tmpl", nil)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	content := string(gradle)
	if !strings.Contains(content, "\nbuild/") || !strings.Contains(content, "\n.gradle/\n") {
		t.Error("gradle ignore file should list build/ and .gradle/")
	}
	if strings.Contains(content, "\ntarget/\n") {
		t.Error("gradle ignore file should not list target/")
	}
}
