package platform

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Well-known descriptor keys.
const (
	KeyBOMGroupID            = "bom.group-id"
	KeyBOMArtifactID         = "bom.artifact-id"
	KeyBOMVersion            = "bom.version"
	KeyPluginGroupID         = "plugin.group-id"
	KeyPluginArtifactID      = "plugin.artifact-id"
	KeyPluginVersion         = "plugin.version"
	KeyGradlePluginID        = "gradle-plugin.id"
	KeyExtensionGroupID      = "extensions.group-id"
	KeyExtensionPrefix       = "extensions.artifact-prefix"
	KeyDefaultExtension      = "extensions.default"
	KeySpringExtension       = "extensions.spring"
	KeyJavaRelease           = "java.release"
	KeyCompilerPluginVersion = "maven.compiler-plugin-version"
	KeySurefirePluginVersion = "maven.surefire-plugin-version"
)

// Sentinel errors for descriptor loading.
var (
	// ErrInvalidDescriptor indicates the descriptor document failed schema validation.
	ErrInvalidDescriptor = errors.New("platform: invalid descriptor")

	// ErrMissingKey indicates a required coordinate is absent.
	ErrMissingKey = errors.New("platform: missing key")
)

// Descriptor is a read-only lookup of platform coordinate values.
type Descriptor interface {
	// Lookup returns the value stored under key.
	Lookup(key string) (string, bool)
}

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultDesc *Static
	defaultErr  error
)

// Default returns the embedded platform descriptor. It is parsed once and
// shared; Static values are never mutated after construction.
func Default() (Descriptor, error) {
	defaultOnce.Do(func() {
		defaultDesc, defaultErr = Parse(defaultYAML)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultDesc, nil
}

// Static is an immutable Descriptor backed by a flat map.
type Static struct {
	values map[string]string
}

// NewStatic copies values into a new Static descriptor.
func NewStatic(values map[string]string) *Static {
	return &Static{values: maps.Clone(values)}
}

// Lookup implements Descriptor.
func (s *Static) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns all keys in sorted order.
func (s *Static) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Load reads and validates a descriptor file.
func Load(path string) (*Static, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied path
	if err != nil {
		return nil, fmt.Errorf("read platform descriptor %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML, validates it against the embedded schema and flattens
// nested mappings into dotted keys ("bom.version").
func Parse(data []byte) (*Static, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	result, err := validateDocument(doc)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDescriptor, result)
	}

	values := make(map[string]string)
	flatten("", doc, values)
	return &Static{values: values}, nil
}

// Value returns the value for key or the empty string.
func Value(d Descriptor, key string) string {
	v, _ := d.Lookup(key)
	return v
}

// Require returns the value for key or ErrMissingKey.
func Require(d Descriptor, key string) (string, error) {
	v, ok := d.Lookup(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return v, nil
}

// overlay layers per-request overrides over a base descriptor.
type overlay struct {
	base      Descriptor
	overrides map[string]string
}

func (o overlay) Lookup(key string) (string, bool) {
	if v, ok := o.overrides[key]; ok {
		return v, true
	}
	return o.base.Lookup(key)
}

// WithOverrides returns a descriptor where overrides win over base.
// The overrides map is copied.
func WithOverrides(base Descriptor, overrides map[string]string) Descriptor {
	if len(overrides) == 0 {
		return base
	}
	return overlay{base: base, overrides: maps.Clone(overrides)}
}

// decodeDocument converts YAML into nested map[string]any keeping every
// scalar as its literal string, so "3.10" stays "3.10".
func decodeDocument(data []byte) (map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: parse YAML: %v", ErrInvalidDescriptor, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDescriptor)
	}
	v, err := nodeValue(root.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidDescriptor)
	}
	return m, nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	}
	return nil, fmt.Errorf("%w: unsupported YAML node at line %d", ErrInvalidDescriptor, n.Line)
}

func flatten(prefix string, v any, out map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case string:
		out[prefix] = val
	}
}
