// Package models provides the shared data model for kickstart.
//
// # Build Tools
//
// Projects are scaffolded for one of the supported build tools:
//   - Maven: a single pom.xml descriptor
//   - Gradle: build.gradle, settings.gradle and gradle.properties
//
// Use [BuildTool] and [ParseBuildTool]:
//
//	tool, err := models.ParseBuildTool("gradle")
//	if err != nil {
//	    return err
//	}
//
// # Project Configuration
//
// [ProjectConfig] carries the coordinates (group, artifact, version), the
// optional sample class name, typed feature flags and the target root. It is
// a plain value: once a command starts executing it works on its own copy.
//
// # Detected State
//
// [DetectedState] classifies a target directory before anything is written:
// Empty, HasDescriptorForChosenTool, or HasForeignOrNoDescriptor.
package models
