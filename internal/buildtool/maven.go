package buildtool

import (
	"github.com/modu-ai/kickstart/internal/defs"
	"github.com/modu-ai/kickstart/internal/descriptor/pom"
	"github.com/modu-ai/kickstart/pkg/models"
)

var mavenTool = &tool{
	kind: models.BuildToolMaven,
	files: []descriptorFile{
		{name: defs.PomXML, template: "maven/pom.xml.tmpl", merge: pom.Merge},
	},
	markers: []string{defs.PomXML},
	ignore:  "maven/gitignore.tmpl",
	readme:  "maven/README.md.tmpl",
	layout: Layout{
		WrapperCommand: "./mvnw",
		DevCommand:     "./mvnw quarkus:dev",
		PackageCommand: "./mvnw package",
		NativeCommand:  "./mvnw package -Dnative",
		BuildDir:       "target",
	},
}
