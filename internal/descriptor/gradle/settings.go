package gradle

import (
	"fmt"
	"regexp"

	"github.com/modu-ai/kickstart/internal/descriptor"
)

const pluginManagementBlock = `pluginManagement {
	repositories {
		mavenLocal()
		mavenCentral()
		gradlePluginPortal()
	}
	plugins {
		id "${quarkusPluginId}" version "${quarkusPluginVersion}"
	}
}`

const pluginManagementPlugin = `id "${quarkusPluginId}" version "${quarkusPluginVersion}"`

var rootProjectName = regexp.MustCompile(`\brootProject\.name\s*=`)

// MergeSettings makes a settings.gradle resolve the Quarkus plugin through
// gradle.properties and name the root project.
func MergeSettings(src []byte, req descriptor.Requirements) (descriptor.Result, error) {
	s, err := Parse("settings.gradle", src)
	if err != nil {
		return descriptor.Result{}, err
	}
	ed := NewEditor(s)

	if pm := s.Block("pluginManagement"); pm == nil {
		ed.Prepend(pluginManagementBlock)
	} else if plugins := pm.Child("plugins"); plugins == nil {
		ed.AppendTo(pm, "plugins {\n\t"+pluginManagementPlugin+"\n}")
	} else if !pluginManaged(s.Body(plugins), req.GradlePluginID) {
		ed.AppendTo(plugins, pluginManagementPlugin)
	}

	if !rootProjectName.MatchString(s.Code()) {
		ed.AppendEnd(fmt.Sprintf("rootProject.name='%s'", req.ArtifactID))
	}

	return finish(s, ed, src)
}

func pluginManaged(body, id string) bool {
	return pluginDeclared(body, "${quarkusPluginId}") || pluginDeclared(body, id)
}
