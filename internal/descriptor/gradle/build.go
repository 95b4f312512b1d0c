package gradle

import (
	"fmt"
	"regexp"

	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/pkg/models"
)

// BOMStatement imports the platform BOM through gradle.properties keys.
const BOMStatement = `implementation enforcedPlatform("${quarkusPlatformGroupId}:${quarkusPlatformArtifactId}:${quarkusPlatformVersion}")`

var repositoryStatements = []string{"mavenCentral()", "mavenLocal()"}

// MergeBuild injects the plugin, repositories, BOM import and dependencies
// of req into a build.gradle script.
func MergeBuild(src []byte, req descriptor.Requirements) (descriptor.Result, error) {
	s, err := Parse("build.gradle", src)
	if err != nil {
		return descriptor.Result{}, err
	}
	ed := NewEditor(s)

	pluginStmt := fmt.Sprintf("id '%s'", req.GradlePluginID)
	if plugins := s.Block("plugins"); plugins == nil {
		snippet := "plugins {\n\t" + pluginStmt + "\n}"
		if bs := s.Block("buildscript"); bs != nil {
			ed.InsertAfter(bs, snippet)
		} else {
			ed.Prepend(snippet)
		}
	} else if !pluginDeclared(s.Body(plugins), req.GradlePluginID) {
		ed.AppendTo(plugins, pluginStmt)
	}

	if repos := s.Block("repositories"); repos == nil {
		ed.AppendEnd("repositories {\n\t" + repositoryStatements[0] + "\n\t" + repositoryStatements[1] + "\n}")
	} else {
		body := s.Body(repos)
		for _, stmt := range repositoryStatements {
			if !callPresent(body, stmt) {
				ed.AppendTo(repos, stmt)
			}
		}
	}

	var stmts []string
	deps := s.Block("dependencies")
	body := ""
	if deps != nil {
		body = s.Body(deps)
	}
	if !bomImported(body, req.BOMArtifactID) {
		stmts = append(stmts, BOMStatement)
	}
	seen := make(map[string]bool)
	for _, dep := range req.Dependencies {
		if seen[dep.Key()] || dependencyDeclared(body, dep) {
			continue
		}
		seen[dep.Key()] = true
		stmts = append(stmts, dependencyStatement(dep))
	}
	if len(stmts) > 0 {
		if deps == nil {
			snippet := "dependencies {"
			for _, st := range stmts {
				snippet += "\n\t" + st
			}
			ed.AppendEnd(snippet + "\n}")
		} else {
			for _, st := range stmts {
				ed.AppendTo(deps, st)
			}
		}
	}

	return finish(s, ed, src)
}

func finish(s *Script, ed *Editor, src []byte) (descriptor.Result, error) {
	if !ed.HasEdits() {
		return descriptor.Result{Content: src}, nil
	}
	out := ed.Apply()
	if _, err := Parse(s.File, out); err != nil {
		return descriptor.Result{}, fmt.Errorf("merged %s is not balanced: %w", s.File, err)
	}
	return descriptor.Result{Content: out, Changed: true}, nil
}

func pluginDeclared(body, id string) bool {
	re := regexp.MustCompile(`\bid\s*\(?\s*['"]` + regexp.QuoteMeta(id) + `['"]`)
	return re.MatchString(body)
}

func callPresent(body, call string) bool {
	name := call[:len(call)-2]
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(\s*\)`)
	return re.MatchString(body)
}

func bomImported(body, bomArtifactID string) bool {
	re := regexp.MustCompile(`(?i:platform)\s*\(\s*['"][^'"\n]*(\$\{quarkusPlatformArtifactId\}|` + regexp.QuoteMeta(bomArtifactID) + `)`)
	return re.MatchString(body)
}

func dependencyDeclared(body string, dep models.Dependency) bool {
	re := regexp.MustCompile(`['"]` + regexp.QuoteMeta(dep.Key()) + `(:[^'"\n]*)?['"]`)
	return re.MatchString(body)
}

func dependencyStatement(dep models.Dependency) string {
	conf := "implementation"
	if dep.Scope == "test" {
		conf = "testImplementation"
	}
	coords := dep.Key()
	if dep.Version != "" {
		coords += ":" + dep.Version
	}
	return fmt.Sprintf("%s '%s'", conf, coords)
}
