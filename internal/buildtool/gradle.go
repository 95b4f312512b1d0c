package buildtool

import (
	"github.com/modu-ai/kickstart/internal/defs"
	"github.com/modu-ai/kickstart/internal/descriptor/gradle"
	"github.com/modu-ai/kickstart/pkg/models"
)

// Kotlin DSL scripts are detected but not generated.
var gradleTool = &tool{
	kind: models.BuildToolGradle,
	files: []descriptorFile{
		{name: defs.BuildGradle, template: "gradle/build.gradle.tmpl", merge: gradle.MergeBuild},
		{name: defs.SettingsGradle, template: "gradle/settings.gradle.tmpl", merge: gradle.MergeSettings},
		{name: defs.GradleProperties, template: "gradle/gradle.properties.tmpl", merge: gradle.MergeProperties},
	},
	markers: []string{defs.BuildGradle, defs.SettingsGradle},
	ignore:  "gradle/gitignore.tmpl",
	readme:  "gradle/README.md.tmpl",
	layout: Layout{
		WrapperCommand: "./gradlew",
		DevCommand:     "./gradlew quarkusDev",
		PackageCommand: "./gradlew build",
		NativeCommand:  "./gradlew build -Dquarkus.native.enabled=true",
		BuildDir:       "build",
	},
}
