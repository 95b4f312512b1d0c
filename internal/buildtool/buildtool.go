// Package buildtool describes the supported build ecosystems: which files
// make up their descriptor, how a project directory is classified, which
// templates provide the ignore file and README, and how descriptors are
// created or merged.
package buildtool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/modu-ai/kickstart/internal/defs"
	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/internal/merge"
	"github.com/modu-ai/kickstart/pkg/models"
)

// ErrUnsupported is returned by For for a build tool outside the enumeration.
var ErrUnsupported = errors.New("buildtool: unsupported build tool")

// Renderer renders a named template with string substitutions.
type Renderer interface {
	Render(name string, data map[string]string) ([]byte, error)
}

// Action tells what happened, or would happen, to a file.
type Action int

const (
	ActionUnchanged Action = iota
	ActionCreated
	ActionUpdated
	ActionSkipped
)

// String returns the lower-case action name.
func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	case ActionSkipped:
		return "skipped"
	default:
		return "unchanged"
	}
}

// FileChange records the effect on one file. Path is relative to the
// project root and slash separated. Diff is only filled in dry runs.
type FileChange struct {
	Path   string
	Action Action
	Diff   string
}

// Layout carries the commands and output directory of a build tool, as
// quoted in generated documentation and container files.
type Layout struct {
	WrapperCommand string
	DevCommand     string
	PackageCommand string
	NativeCommand  string
	BuildDir       string
}

// Tool is one supported build ecosystem.
type Tool interface {
	// BuildTool returns the enumeration value.
	BuildTool() models.BuildTool

	// DescriptorFiles lists the files WriteDescriptor creates or merges.
	DescriptorFiles() []string

	// Detect classifies root by the presence of top-level entries only.
	// Warnings name descriptors of other ecosystems found there.
	Detect(root string) (models.DetectedState, []string, error)

	// WriteDescriptor renders every missing descriptor file, merges req into
	// every file, and writes the ones that changed. Nothing is written
	// unless every file merged. With dryRun nothing is written and each
	// change carries a unified diff.
	WriteDescriptor(ctx context.Context, root string, r Renderer, data map[string]string,
		req descriptor.Requirements, dryRun bool) ([]FileChange, []string, error)

	// IgnoreTemplate names the template of the VCS ignore file.
	IgnoreTemplate() string

	// ReadmeTemplate names the template of the README.
	ReadmeTemplate() string

	// Layout returns the tool's commands and build output directory.
	Layout() Layout
}

type mergeFunc func(src []byte, req descriptor.Requirements) (descriptor.Result, error)

type descriptorFile struct {
	name     string
	template string
	merge    mergeFunc
}

type tool struct {
	kind    models.BuildTool
	files   []descriptorFile
	markers []string
	ignore  string
	readme  string
	layout  Layout
}

// foreignMarkers maps descriptor names to the ecosystem they belong to.
var foreignMarkers = []struct {
	name  string
	owner string
}{
	{defs.PomXML, "Maven"},
	{defs.BuildGradle, "Gradle"},
	{defs.SettingsGradle, "Gradle"},
	{defs.BuildGradleKts, "Gradle Kotlin DSL"},
	{defs.SettingsGradleKts, "Gradle Kotlin DSL"},
}

// For returns the Tool for bt. The empty value selects the default tool.
func For(bt models.BuildTool) (Tool, error) {
	if bt == "" {
		bt = models.DefaultBuildTool
	}
	switch bt {
	case models.BuildToolMaven:
		return mavenTool, nil
	case models.BuildToolGradle:
		return gradleTool, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, bt)
	}
}

// All returns every supported tool in enumeration order.
func All() []Tool {
	return []Tool{mavenTool, gradleTool}
}

func (t *tool) BuildTool() models.BuildTool { return t.kind }
func (t *tool) IgnoreTemplate() string      { return t.ignore }
func (t *tool) ReadmeTemplate() string      { return t.readme }
func (t *tool) Layout() Layout              { return t.layout }

func (t *tool) DescriptorFiles() []string {
	names := make([]string, len(t.files))
	for i, f := range t.files {
		names[i] = f.name
	}
	return names
}

func (t *tool) Detect(root string) (models.DetectedState, []string, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return models.StateEmpty, nil, nil
	}
	if err != nil {
		return models.StateEmpty, nil, fmt.Errorf("inspect %s: %w", root, err)
	}
	if len(entries) == 0 {
		return models.StateEmpty, nil, nil
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name()] = true
	}

	state := models.StateForeignOrNoDescriptor
	for _, m := range t.markers {
		if present[m] {
			state = models.StateHasDescriptor
			break
		}
	}

	var warnings []string
	for _, fm := range foreignMarkers {
		if !present[fm.name] || t.owns(fm.name) {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("found %s (%s); it is left untouched", fm.name, fm.owner))
	}
	return state, warnings, nil
}

func (t *tool) owns(name string) bool {
	for _, f := range t.files {
		if f.name == name {
			return true
		}
	}
	return false
}

// pendingWrite is a merged descriptor file waiting for the write pass.
type pendingWrite struct {
	path    string
	content []byte
	change  FileChange
}

// WriteDescriptor merges every descriptor file before writing any of them,
// so a file that fails to parse leaves the whole set untouched.
func (t *tool) WriteDescriptor(ctx context.Context, root string, r Renderer, data map[string]string,
	req descriptor.Requirements, dryRun bool) ([]FileChange, []string, error) {
	var warnings []string
	pending := make([]pendingWrite, 0, len(t.files))

	for _, f := range t.files {
		if err := ctx.Err(); err != nil {
			return nil, warnings, err
		}

		path := filepath.Join(root, f.name)
		existed := true
		src, err := os.ReadFile(path) //nolint:gosec // path is inside the target directory
		switch {
		case errors.Is(err, fs.ErrNotExist):
			existed = false
			src, err = r.Render(f.template, data)
			if err != nil {
				return nil, warnings, fmt.Errorf("render %s: %w", f.name, err)
			}
		case err != nil:
			return nil, warnings, fmt.Errorf("read %s: %w", f.name, err)
		}

		res, err := f.merge(src, req)
		if err != nil {
			return nil, warnings, fmt.Errorf("merge %s: %w", f.name, err)
		}
		for _, w := range res.Warnings {
			warnings = append(warnings, f.name+": "+w)
		}

		p := pendingWrite{path: path, content: res.Content, change: FileChange{Path: f.name, Action: ActionUnchanged}}
		switch {
		case !existed:
			p.change.Action = ActionCreated
			if dryRun {
				p.change.Diff = merge.Unified(f.name, nil, res.Content)
			}
		case res.Changed:
			p.change.Action = ActionUpdated
			if dryRun {
				p.change.Diff = merge.Unified(f.name, src, res.Content)
			}
		}
		pending = append(pending, p)
	}

	changes := make([]FileChange, 0, len(pending))
	for _, p := range pending {
		if p.change.Action != ActionUnchanged && !dryRun {
			if err := ctx.Err(); err != nil {
				return changes, warnings, err
			}
			if err := merge.WriteFileAtomic(p.path, p.content, defs.FilePerm); err != nil {
				return changes, warnings, fmt.Errorf("write %s: %w", p.change.Path, err)
			}
		}
		changes = append(changes, p.change)
	}
	return changes, warnings, nil
}
