package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/modu-ai/kickstart/internal/buildtool"
	"github.com/modu-ai/kickstart/internal/defs"
	"github.com/modu-ai/kickstart/internal/merge"
	"github.com/modu-ai/kickstart/internal/template"
)

// fileSpec pairs a template with the slash-separated path it renders to.
// Every scaffolded file is written only when it does not exist yet.
type fileSpec struct {
	template string
	target   string
}

// skeletonDirs always exist after a successful run, even without a class.
var skeletonDirs = []string{
	defs.MainJavaDir,
	defs.TestJavaDir,
}

// planFiles lists the scaffolded files for the resolved substitutions, in
// write order.
func planFiles(subs template.Substitutions) []fileSpec {
	specs := []fileSpec{
		{subs[template.KeyIgnoreTemplate], defs.GitIgnore},
		{subs[template.KeyReadmeTemplate], defs.ReadmeMD},
		{"common/application.properties.tmpl", path.Join(defs.MainResourcesDir, defs.ApplicationProperties)},
		{"common/index.html.tmpl", path.Join(defs.StaticDir, defs.IndexHTML)},
		{"common/Dockerfile.jvm.tmpl", path.Join(defs.DockerDir, defs.DockerfileJVM)},
		{"common/Dockerfile.native.tmpl", path.Join(defs.DockerDir, defs.DockerfileNative)},
	}

	class := subs[template.KeyClassName]
	if class == "" {
		return specs
	}
	pkgDir := subs[template.KeyPackagePath]
	return append(specs,
		fileSpec{subs[template.KeyResourceTemplate], path.Join(defs.MainJavaDir, pkgDir, class+".java")},
		fileSpec{template.ResourceTestTemplate, path.Join(defs.TestJavaDir, pkgDir, class+"Test.java")},
		fileSpec{template.NativeTestTemplate, path.Join(defs.TestJavaDir, pkgDir, "Native"+class+"IT.java")},
	)
}

// scaffoldWriter renders and writes the non-descriptor files of a project.
type scaffoldWriter struct {
	root    string
	catalog buildtool.Renderer
	subs    template.Substitutions
	dryRun  bool
	logger  *slog.Logger
}

// writeFiles processes specs in order, stopping at the first error.
func (w *scaffoldWriter) writeFiles(ctx context.Context, specs []fileSpec) ([]FileChange, error) {
	var changes []FileChange
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return changes, err
		}

		target := filepath.Join(w.root, filepath.FromSlash(spec.target))
		_, err := os.Lstat(target)
		if err == nil {
			w.logger.Debug("keeping existing file", "path", spec.target)
			changes = append(changes, FileChange{Path: spec.target, Action: buildtool.ActionSkipped})
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return changes, fmt.Errorf("stat %s: %w", spec.target, err)
		}

		content, err := w.catalog.Render(spec.template, w.subs)
		if err != nil {
			return changes, fmt.Errorf("render %s: %w", spec.target, err)
		}

		change := FileChange{Path: spec.target, Action: buildtool.ActionCreated}
		if w.dryRun {
			change.Diff = merge.Unified(spec.target, nil, content)
		} else {
			if err := os.MkdirAll(filepath.Dir(target), defs.DirPerm); err != nil {
				return changes, fmt.Errorf("mkdir for %s: %w", spec.target, err)
			}
			if err := merge.WriteFileAtomic(target, content, defs.FilePerm); err != nil {
				return changes, fmt.Errorf("write %s: %w", spec.target, err)
			}
			w.logger.Debug("created file", "path", spec.target)
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// ensureDirs creates the skeleton directories and returns the ones that did
// not exist before.
func (w *scaffoldWriter) ensureDirs(dirs []string) ([]string, error) {
	var created []string
	for _, dir := range dirs {
		full := filepath.Join(w.root, filepath.FromSlash(dir))
		info, err := os.Stat(full)
		if err == nil {
			if !info.IsDir() {
				return created, fmt.Errorf("%s exists and is not a directory", dir)
			}
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return created, fmt.Errorf("stat %s: %w", dir, err)
		}
		if !w.dryRun {
			if err := os.MkdirAll(full, defs.DirPerm); err != nil {
				return created, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		created = append(created, dir)
	}
	return created, nil
}
