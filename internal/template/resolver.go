package template

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modu-ai/kickstart/internal/buildtool"
	"github.com/modu-ai/kickstart/internal/defs"
	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/internal/platform"
	"github.com/modu-ai/kickstart/pkg/models"
)

// Substitution keys, as referenced by templates ({{.groupId}}).
const (
	KeyGroupID               = "groupId"
	KeyArtifactID            = "artifactId"
	KeyVersion               = "version"
	KeyProjectName           = "projectName"
	KeyBuildTool             = "buildTool"
	KeyPackageName           = "packageName"
	KeyPackagePath           = "packagePath"
	KeyClassName             = "className"
	KeyQualifiedClassName    = "qualifiedClassName"
	KeyResourcePath          = "resourcePath"
	KeyResourceTemplate      = "resourceTemplate"
	KeySourceDir             = "sourceDir"
	KeyTestDir               = "testDir"
	KeyResourcesDir          = "resourcesDir"
	KeyPluginGroupID         = "pluginGroupId"
	KeyPluginArtifactID      = "pluginArtifactId"
	KeyPluginVersion         = "pluginVersion"
	KeyGradlePluginID        = "gradlePluginId"
	KeyBOMGroupID            = "bomGroupId"
	KeyBOMArtifactID         = "bomArtifactId"
	KeyBOMVersion            = "bomVersion"
	KeyJavaRelease           = "javaRelease"
	KeyCompilerPluginVersion = "compilerPluginVersion"
	KeySurefirePluginVersion = "surefirePluginVersion"
	KeyIgnoreTemplate        = "ignoreTemplate"
	KeyReadmeTemplate        = "readmeTemplate"
	KeyWrapperCommand        = "wrapperCommand"
	KeyDevCommand            = "devCommand"
	KeyPackageCommand        = "packageCommand"
	KeyNativeCommand         = "nativeCommand"
	KeyBuildDir              = "buildDir"
)

// Class template names.
const (
	ResourceTemplate         = "java/resource.java.tmpl"
	SpringControllerTemplate = "java/spring-controller.java.tmpl"
	ResourceTestTemplate     = "java/resource-test.java.tmpl"
	NativeTestTemplate       = "java/native-test.java.tmpl"
)

// platformKeys maps substitution keys to the descriptor keys they come from.
var platformKeys = []struct {
	sub, desc string
}{
	{KeyPluginGroupID, platform.KeyPluginGroupID},
	{KeyPluginArtifactID, platform.KeyPluginArtifactID},
	{KeyPluginVersion, platform.KeyPluginVersion},
	{KeyGradlePluginID, platform.KeyGradlePluginID},
	{KeyBOMGroupID, platform.KeyBOMGroupID},
	{KeyBOMArtifactID, platform.KeyBOMArtifactID},
	{KeyBOMVersion, platform.KeyBOMVersion},
	{KeyJavaRelease, platform.KeyJavaRelease},
	{KeyCompilerPluginVersion, platform.KeyCompilerPluginVersion},
	{KeySurefirePluginVersion, platform.KeySurefirePluginVersion},
}

// Substitutions is the flat key/value mapping every template is rendered
// with.
type Substitutions map[string]string

// Resolve derives the substitutions for cfg. It reads nothing but its
// arguments. Invalid input yields *models.ValidationErrors, which matches
// models.ErrInvalidConfiguration.
func Resolve(cfg models.ProjectConfig, desc platform.Descriptor) (Substitutions, error) {
	desc, err := effectiveDescriptor(desc, cfg.PlatformOverrides)
	if err != nil {
		return nil, err
	}

	errs := collectValidation(cfg, desc)
	if len(errs) > 0 {
		return nil, &models.ValidationErrors{Errors: errs}
	}

	tool, err := buildtool.For(cfg.EffectiveBuildTool())
	if err != nil {
		return nil, err
	}
	layout := tool.Layout()

	pkg, simple := splitClassName(cfg.ClassName)
	if pkg == "" {
		pkg = packageFromGroup(cfg.GroupID)
	}

	s := Substitutions{
		KeyGroupID:        cfg.GroupID,
		KeyArtifactID:     cfg.ArtifactID,
		KeyVersion:        cfg.Version,
		KeyProjectName:    projectName(cfg.ArtifactID),
		KeyBuildTool:      string(tool.BuildTool()),
		KeyPackageName:    pkg,
		KeyPackagePath:    strings.ReplaceAll(pkg, ".", "/"),
		KeyClassName:      simple,
		KeyResourcePath:   cfg.EffectiveResourcePath(),
		KeySourceDir:      defs.MainJavaDir,
		KeyTestDir:        defs.TestJavaDir,
		KeyResourcesDir:   defs.MainResourcesDir,
		KeyIgnoreTemplate: tool.IgnoreTemplate(),
		KeyReadmeTemplate: tool.ReadmeTemplate(),
		KeyWrapperCommand: layout.WrapperCommand,
		KeyDevCommand:     layout.DevCommand,
		KeyPackageCommand: layout.PackageCommand,
		KeyNativeCommand:  layout.NativeCommand,
		KeyBuildDir:       layout.BuildDir,
	}
	if simple != "" {
		s[KeyQualifiedClassName] = pkg + "." + simple
		s[KeyResourceTemplate] = ResourceTemplate
		if cfg.Features.SpringController {
			s[KeyResourceTemplate] = SpringControllerTemplate
		}
	} else {
		s[KeyQualifiedClassName] = ""
		s[KeyResourceTemplate] = ""
	}
	for _, k := range platformKeys {
		s[k.sub] = platform.Value(desc, k.desc)
	}
	return s, nil
}

// Dependencies lists what the descriptor must declare for cfg: the web
// extension (JAX-RS or Spring flavored), the requested extensions and the
// test dependencies of the generated tests. Duplicates keep their first
// occurrence.
func Dependencies(cfg models.ProjectConfig, desc platform.Descriptor) ([]models.Dependency, error) {
	desc, err := effectiveDescriptor(desc, cfg.PlatformOverrides)
	if err != nil {
		return nil, err
	}
	group := platform.Value(desc, platform.KeyExtensionGroupID)
	prefix := platform.Value(desc, platform.KeyExtensionPrefix)

	web := platform.KeyDefaultExtension
	if cfg.Features.SpringController {
		web = platform.KeySpringExtension
	}
	specs := append([]string{platform.Value(desc, web)}, cfg.Extensions...)

	var deps []models.Dependency
	seen := make(map[string]bool)
	add := func(d models.Dependency) {
		if !seen[d.Key()] {
			seen[d.Key()] = true
			deps = append(deps, d)
		}
	}
	for _, spec := range specs {
		d, err := models.ParseDependency(spec, group, prefix)
		if err != nil {
			return nil, err
		}
		add(d)
	}
	add(models.Dependency{GroupID: group, ArtifactID: prefix + "junit5", Scope: "test"})
	add(models.Dependency{GroupID: "io.rest-assured", ArtifactID: "rest-assured", Scope: "test"})
	return deps, nil
}

// Requirements assembles the merge requirements from resolved substitutions.
func (s Substitutions) Requirements(deps []models.Dependency) descriptor.Requirements {
	return descriptor.Requirements{
		GroupID:          s[KeyGroupID],
		ArtifactID:       s[KeyArtifactID],
		Version:          s[KeyVersion],
		PluginGroupID:    s[KeyPluginGroupID],
		PluginArtifactID: s[KeyPluginArtifactID],
		PluginVersion:    s[KeyPluginVersion],
		GradlePluginID:   s[KeyGradlePluginID],
		BOMGroupID:       s[KeyBOMGroupID],
		BOMArtifactID:    s[KeyBOMArtifactID],
		BOMVersion:       s[KeyBOMVersion],
		Dependencies:     append([]models.Dependency(nil), deps...),
	}
}

func collectValidation(cfg models.ProjectConfig, desc platform.Descriptor) []models.ValidationError {
	var errs []models.ValidationError
	if err := cfg.Validate(); err != nil {
		var verrs *models.ValidationErrors
		if errors.As(err, &verrs) {
			errs = append(errs, verrs.Errors...)
		} else {
			errs = append(errs, models.ValidationError{Field: "config", Message: err.Error()})
		}
	}

	for _, k := range platformKeys {
		if _, err := platform.Require(desc, k.desc); err != nil {
			errs = append(errs, models.ValidationError{
				Field:   "platform." + k.desc,
				Message: "missing from the platform descriptor",
			})
		}
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.PlatformOverrides)) {
		value := cfg.PlatformOverrides[key]
		if err := platform.CheckOverride(key, value); err != nil {
			errs = append(errs, models.ValidationError{
				Field:   "platform_overrides." + key,
				Message: "not a valid value for this platform key",
				Value:   value,
			})
		}
	}

	group := platform.Value(desc, platform.KeyExtensionGroupID)
	prefix := platform.Value(desc, platform.KeyExtensionPrefix)
	for _, spec := range cfg.Extensions {
		if _, err := models.ParseDependency(spec, group, prefix); err != nil {
			errs = append(errs, models.ValidationError{
				Field:   "extensions",
				Message: "must be an artifact id or group:artifact[:version]",
				Value:   spec,
			})
		}
	}
	return errs
}

// effectiveDescriptor layers overrides over desc, or over the embedded
// default when desc is nil.
func effectiveDescriptor(desc platform.Descriptor, overrides map[string]string) (platform.Descriptor, error) {
	if desc == nil {
		d, err := platform.Default()
		if err != nil {
			return nil, err
		}
		desc = d
	}
	return platform.WithOverrides(desc, overrides), nil
}

// splitClassName returns the package and simple name of a possibly
// qualified class name.
func splitClassName(name string) (pkg, simple string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// packageFromGroup turns a group id into a legal Java package name.
func packageFromGroup(groupID string) string {
	segments := strings.Split(groupID, ".")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "-", "_")
		if seg != "" && seg[0] >= '0' && seg[0] <= '9' {
			seg = "_" + seg
		}
		if models.IsJavaKeyword(seg) {
			seg += "_"
		}
		segments[i] = seg
	}
	return strings.Join(segments, ".")
}

// projectName is the human readable form of an artifact id:
// "basic-rest" becomes "Basic Rest".
func projectName(artifactID string) string {
	words := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(artifactID)
	return cases.Title(language.English).String(strings.Join(strings.Fields(words), " "))
}
