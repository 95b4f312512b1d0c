package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"text/template"

	lru "github.com/hashicorp/golang-lru/v2"
)

// parsedCacheSize bounds the parsed templates kept per renderer. The
// embedded catalog has fewer entries, so nothing is ever evicted there.
const parsedCacheSize = 64

// unexpandedTokenPattern detects leftover template actions in rendered
// output. ${...} is not matched: build descriptors use it for their own
// property references.
var unexpandedTokenPattern = regexp.MustCompile(`\{\{-?\s*\.?[A-Za-z_][A-Za-z0-9_.]*\s*-?\}\}`)

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the backing FS and executes it
	// with data. Returns ErrMissingTemplateKey if a key is missing and
	// ErrUnexpandedToken if template actions remain after rendering.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer. Parsed templates
// are cached by name; a *template.Template is safe for concurrent Execute.
type renderer struct {
	fsys   fs.FS
	parsed *lru.Cache[string, *template.Template]
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	cache, err := lru.New[string, *template.Template](parsedCacheSize)
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}
	return &renderer{fsys: fsys, parsed: cache}
}

// Render parses and executes a template with strict mode (missingkey=error).
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	tmpl, err := r.lookup(templateName)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()
	if loc := unexpandedTokenPattern.Find(result); loc != nil {
		return nil, fmt.Errorf("%w: found %q in %s", ErrUnexpandedToken, string(loc), templateName)
	}
	return result, nil
}

func (r *renderer) lookup(name string) (*template.Template, error) {
	if tmpl, ok := r.parsed.Get(name); ok {
		return tmpl, nil
	}

	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", name, err)
	}
	r.parsed.Add(name, tmpl)
	return tmpl, nil
}
