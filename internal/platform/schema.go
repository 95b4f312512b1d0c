package platform

import (
	"bytes"
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/platform.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// String joins the issues into one line.
func (r *ValidationResult) String() string {
	parts := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		if issue.Path != "" {
			parts[i] = issue.Path + ": " + issue.Message
		} else {
			parts[i] = issue.Message
		}
	}
	return strings.Join(parts, "; ")
}

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Path    string
	Message string
	Keyword string
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("platform.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("platform.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw YAML against the platform schema without building a descriptor.
func Validate(data []byte) (*ValidationResult, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return validateDocument(doc)
}

func validateDocument(doc map[string]any) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = []ValidationIssue{{Message: ve.Error()}}
	}
	return &ValidationResult{Valid: false, Issues: issues}, nil
}

// collectIssues walks the error tree and keeps leaf errors.
func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}

// Value patterns mirrored from schema/platform.schema.json. Overrides are
// layered over an already validated descriptor, so each one is checked on
// its own against the pattern of its key.
var (
	dottedPattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*(\.[A-Za-z_][A-Za-z0-9_-]*)*$`)
	artifactPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	versionPattern  = regexp.MustCompile(`^[0-9][A-Za-z0-9_.+-]*$`)
	releasePattern  = regexp.MustCompile(`^[0-9]+$`)
	prefixPattern   = regexp.MustCompile(`^[A-Za-z0-9_.-]*$`)
)

var overridePatterns = map[string]*regexp.Regexp{
	KeyBOMGroupID:            dottedPattern,
	KeyBOMArtifactID:         artifactPattern,
	KeyBOMVersion:            versionPattern,
	KeyPluginGroupID:         dottedPattern,
	KeyPluginArtifactID:      artifactPattern,
	KeyPluginVersion:         versionPattern,
	KeyGradlePluginID:        dottedPattern,
	KeyExtensionGroupID:      dottedPattern,
	KeyExtensionPrefix:       prefixPattern,
	KeyDefaultExtension:      artifactPattern,
	KeySpringExtension:       artifactPattern,
	KeyJavaRelease:           releasePattern,
	KeyCompilerPluginVersion: versionPattern,
	KeySurefirePluginVersion: versionPattern,
}

// CheckOverride reports whether value is acceptable for key. Keys without
// a known pattern only need to be free of markup characters.
func CheckOverride(key, value string) error {
	if re, ok := overridePatterns[key]; ok {
		if !re.MatchString(value) {
			return fmt.Errorf("%w: %s: %q does not match %s", ErrInvalidDescriptor, key, value, re)
		}
		return nil
	}
	if value == "" || strings.ContainsAny(value, "<>&\"'{}") {
		return fmt.Errorf("%w: %s: %q is not a plain value", ErrInvalidDescriptor, key, value)
	}
	return nil
}
