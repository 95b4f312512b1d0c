package models

import (
	"regexp"
	"strings"
)

var (
	javaIdentPattern  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	groupIDPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*(\.[A-Za-z_][A-Za-z0-9_-]*)*$`)
	artifactIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	versionPattern    = regexp.MustCompile(`^([0-9][A-Za-z0-9_.+-]*|\$\{[A-Za-z0-9_.-]+\})$`)
	resourcePattern   = regexp.MustCompile(`^/[A-Za-z0-9_./{}-]*$`)
)

// javaKeywords cannot be used as package segments or class names.
var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "_": true,
}

// IsJavaKeyword reports whether s is reserved in Java source.
func IsJavaKeyword(s string) bool {
	return javaKeywords[s]
}

// Validate checks every field of the configuration and returns
// *ValidationErrors listing all problems, or nil.
func (c ProjectConfig) Validate() error {
	var errs []ValidationError

	errs = append(errs, checkPattern("group_id", c.GroupID, groupIDPattern,
		"must be dot-separated identifiers (example: org.acme)")...)
	errs = append(errs, checkPattern("artifact_id", c.ArtifactID, artifactIDPattern,
		"must start with a letter or digit and contain only letters, digits, '.', '_' or '-'")...)
	errs = append(errs, checkPattern("version", c.Version, versionPattern,
		"must start with a digit (example: 1.0.0-SNAPSHOT)")...)

	if c.BuildTool != "" && !c.BuildTool.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "build_tool",
			Message: "must be one of: " + strings.Join(buildToolStrings(), ", "),
			Value:   string(c.BuildTool),
		})
	}

	if c.ClassName != "" && !isQualifiedJavaName(c.ClassName) {
		errs = append(errs, ValidationError{
			Field:   "class_name",
			Message: "must be a valid, optionally package-qualified, Java class name",
			Value:   c.ClassName,
		})
	}

	if p := c.Features.ResourcePath; p != "" && !resourcePattern.MatchString(p) {
		errs = append(errs, ValidationError{
			Field:   "features.resource_path",
			Message: "must start with '/' and contain only path characters",
			Value:   p,
		})
	}

	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, ValidationError{
			Field:   "root",
			Message: "target directory is required",
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func checkPattern(field, value string, re *regexp.Regexp, hint string) []ValidationError {
	if value == "" {
		return []ValidationError{{Field: field, Message: "required field is empty"}}
	}
	if !re.MatchString(value) {
		return []ValidationError{{Field: field, Message: hint, Value: value}}
	}
	return nil
}

// isQualifiedJavaName accepts "Name" and "a.b.Name" made of non-keyword identifiers.
func isQualifiedJavaName(s string) bool {
	for seg := range strings.SplitSeq(s, ".") {
		if !javaIdentPattern.MatchString(seg) || javaKeywords[seg] {
			return false
		}
	}
	return true
}

// ValidGroupID reports whether s is a dotted group id such as org.acme.
func ValidGroupID(s string) bool { return groupIDPattern.MatchString(s) }

// ValidVersion reports whether s is an acceptable project version.
func ValidVersion(s string) bool { return versionPattern.MatchString(s) }
