package pom

import (
	"fmt"

	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/internal/platform"
	"github.com/modu-ai/kickstart/pkg/models"
)

// Property names the injected plugin and BOM refer to.
const (
	PropPluginVersion      = "quarkus-plugin.version"
	PropPlatformGroupID    = "quarkus.platform.group-id"
	PropPlatformArtifactID = "quarkus.platform.artifact-id"
	PropPlatformVersion    = "quarkus.platform.version"
)

var propertyOrder = []string{
	PropPluginVersion,
	PropPlatformArtifactID,
	PropPlatformGroupID,
	PropPlatformVersion,
}

// headerElements are the project children the properties block goes after
// when it has to be created.
var headerElements = map[string]bool{
	"modelVersion": true,
	"parent":       true,
	"groupId":      true,
	"artifactId":   true,
	"version":      true,
	"packaging":    true,
	"name":         true,
	"description":  true,
}

// Merge injects whatever req needs that src lacks. When nothing is missing
// the returned content is src itself and Changed is false.
func Merge(src []byte, req descriptor.Requirements) (descriptor.Result, error) {
	doc, err := Parse(src)
	if err != nil {
		return descriptor.Result{}, err
	}
	root := doc.Root
	if root.Name != "project" {
		return descriptor.Result{}, syntaxError(root.Start, fmt.Sprintf("root element is <%s>, want <project>", root.Name))
	}

	ed := NewEditor(doc)
	var warnings []string

	warnings = append(warnings, mergeProperties(ed, root, req)...)

	if !hasBOMImport(root, req) {
		ed.AppendPath(root, []string{"dependencyManagement", "dependencies"}, bomElement())
	}

	present := dependencyKeys(root.Child("dependencies"))
	for _, dep := range req.Dependencies {
		if present[dep.Key()] {
			continue
		}
		present[dep.Key()] = true
		ed.AppendPath(root, []string{"dependencies"}, dependencyElement(dep))
	}

	if plugin := findPlugin(root, req.PluginArtifactID); plugin == nil {
		ed.AppendPath(root, []string{"build", "plugins"}, pluginElement(req))
	} else if v := plugin.ChildValue("version"); v != "" {
		if older, ok := platform.IsOlder(v, req.PluginVersion); ok && older {
			warnings = append(warnings, fmt.Sprintf(
				"%s version %s is older than the platform's %s", req.PluginArtifactID, v, req.PluginVersion))
		}
	}

	if !ed.HasEdits() {
		return descriptor.Result{Content: src, Warnings: warnings}, nil
	}

	out := ed.Apply()
	if _, err := Parse(out); err != nil {
		return descriptor.Result{}, fmt.Errorf("merged pom.xml is not well-formed: %w", err)
	}
	return descriptor.Result{Content: out, Changed: true, Warnings: warnings}, nil
}

func mergeProperties(ed *Editor, root *Node, req descriptor.Requirements) []string {
	want := map[string]string{
		PropPluginVersion:      req.PluginVersion,
		PropPlatformGroupID:    req.BOMGroupID,
		PropPlatformArtifactID: req.BOMArtifactID,
		PropPlatformVersion:    req.BOMVersion,
	}

	props := root.Child("properties")
	var warnings []string
	var missing []*Element
	for _, key := range propertyOrder {
		if existing := props.Child(key); existing != nil {
			if got := existing.Value(); got != want[key] {
				warnings = append(warnings, fmt.Sprintf(
					"property %s is %q, platform default is %q; keeping the existing value", key, got, want[key]))
			}
			continue
		}
		missing = append(missing, Leaf(key, want[key]))
	}
	if len(missing) == 0 {
		return warnings
	}

	if props != nil {
		for _, el := range missing {
			ed.Append(props, el)
		}
		return warnings
	}

	var last *Node
	for _, c := range root.Children {
		if headerElements[c.Name] {
			last = c
		}
	}
	if last != nil {
		ed.InsertAfter(last, El("properties", missing...))
	} else {
		ed.Append(root, El("properties", missing...))
	}
	return warnings
}

func hasBOMImport(root *Node, req descriptor.Requirements) bool {
	deps := root.Path("dependencyManagement", "dependencies")
	for _, d := range deps.ChildrenNamed("dependency") {
		a := d.ChildValue("artifactId")
		if a != "${"+PropPlatformArtifactID+"}" && a != req.BOMArtifactID {
			continue
		}
		if d.ChildValue("scope") == "import" || d.ChildValue("type") == "pom" {
			return true
		}
	}
	return false
}

func dependencyKeys(deps *Node) map[string]bool {
	keys := make(map[string]bool)
	for _, d := range deps.ChildrenNamed("dependency") {
		keys[d.ChildValue("groupId")+":"+d.ChildValue("artifactId")] = true
	}
	return keys
}

func findPlugin(root *Node, artifactID string) *Node {
	for _, p := range root.Path("build", "plugins").ChildrenNamed("plugin") {
		if p.ChildValue("artifactId") == artifactID {
			return p
		}
	}
	return nil
}

func bomElement() *Element {
	return El("dependency",
		Leaf("groupId", "${"+PropPlatformGroupID+"}"),
		Leaf("artifactId", "${"+PropPlatformArtifactID+"}"),
		Leaf("version", "${"+PropPlatformVersion+"}"),
		Leaf("type", "pom"),
		Leaf("scope", "import"),
	)
}

func dependencyElement(dep models.Dependency) *Element {
	el := El("dependency",
		Leaf("groupId", dep.GroupID),
		Leaf("artifactId", dep.ArtifactID),
	)
	if dep.Version != "" {
		el.Children = append(el.Children, Leaf("version", dep.Version))
	}
	if dep.Scope != "" {
		el.Children = append(el.Children, Leaf("scope", dep.Scope))
	}
	return el
}

func pluginElement(req descriptor.Requirements) *Element {
	return El("plugin",
		Leaf("groupId", req.PluginGroupID),
		Leaf("artifactId", req.PluginArtifactID),
		Leaf("version", "${"+PropPluginVersion+"}"),
		Leaf("extensions", "true"),
		El("executions",
			El("execution",
				El("goals",
					Leaf("goal", "build"),
					Leaf("goal", "generate-code"),
					Leaf("goal", "generate-code-tests"),
				),
			),
		),
	)
}
