package template

import (
	"embed"
	"io/fs"
	"slices"
	"sync"
)

//go:embed all:templates
var embedded embed.FS

// Catalog is a named set of templates. Names are slash-separated paths
// relative to the catalog root, e.g. "maven/pom.xml.tmpl".
type Catalog struct {
	fsys     fs.FS
	renderer Renderer
}

// NewCatalog creates a Catalog over fsys.
// In production fsys is the embedded tree; tests pass a fstest.MapFS.
func NewCatalog(fsys fs.FS) *Catalog {
	return &Catalog{fsys: fsys, renderer: NewRenderer(fsys)}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog of embedded templates. It is built once and
// safe for concurrent use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			panic(err)
		}
		defaultCatalog = NewCatalog(sub)
	})
	return defaultCatalog
}

// Render renders the named template with the given substitutions.
func (c *Catalog) Render(name string, data map[string]string) ([]byte, error) {
	return c.renderer.Render(name, data)
}

// Has reports whether the catalog contains name.
func (c *Catalog) Has(name string) bool {
	info, err := fs.Stat(c.fsys, name)
	return err == nil && !info.IsDir()
}

// Names returns every template name in sorted order.
func (c *Catalog) Names() []string {
	var names []string
	_ = fs.WalkDir(c.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path)
		}
		return nil
	})
	slices.Sort(names)
	return names
}
