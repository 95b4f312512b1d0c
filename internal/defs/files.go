package defs

import "io/fs"

// Build descriptor file names.
const (
	// PomXML is the Maven project descriptor.
	PomXML = "pom.xml"

	// BuildGradle is the Gradle (Groovy DSL) build script.
	BuildGradle = "build.gradle"

	// SettingsGradle is the Gradle settings script.
	SettingsGradle = "settings.gradle"

	// GradleProperties holds the platform coordinates read by the Gradle scripts.
	GradleProperties = "gradle.properties"

	// BuildGradleKts and SettingsGradleKts are Kotlin DSL scripts. They are
	// recognized but never written.
	BuildGradleKts    = "build.gradle.kts"
	SettingsGradleKts = "settings.gradle.kts"
)

// Scaffolded file names.
const (
	GitIgnore             = ".gitignore"
	ReadmeMD              = "README.md"
	ApplicationProperties = "application.properties"
	IndexHTML             = "index.html"
	DockerfileJVM         = "Dockerfile.jvm"
	DockerfileNative      = "Dockerfile.native"
)

// Source tree layout, relative to the project root, slash separated.
const (
	MainJavaDir      = "src/main/java"
	TestJavaDir      = "src/test/java"
	MainResourcesDir = "src/main/resources"
	StaticDir        = "src/main/resources/META-INF/resources"
	DockerDir        = "src/main/docker"
)

// User settings locations.
const (
	// ConfigDir is the per-user directory under the home directory.
	ConfigDir = ".kickstart"

	// ConfigYAML is the user settings file inside ConfigDir.
	ConfigYAML = "config.yaml"

	// EnvPrefix prefixes environment variables that override settings.
	EnvPrefix = "KICKSTART"
)

// Permissions for everything the tool writes.
const (
	FilePerm fs.FileMode = 0o644
	DirPerm  fs.FileMode = 0o755
)
