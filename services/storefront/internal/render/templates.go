package render

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
)

// Page template names.
const (
	PageHome     = "index"
	PageCatalog  = "products"
	PageProduct  = "product"
	PageCheckout = "checkout"
)

var pageNames = []string{PageHome, PageCatalog, PageProduct, PageCheckout}

//go:embed templates/pages/*.html
var pageFS embed.FS

// Templates holds the raw page documents. Each request parses its own copy.
type Templates struct {
	pages map[string][]byte
}

// LoadTemplates reads the page documents from dir, or the built-in pages
// when dir is empty. Every page must be present.
func LoadTemplates(dir string) (*Templates, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(pageFS, "templates/pages")
		if err != nil {
			return nil, fmt.Errorf("open built-in pages: %w", err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}
	return loadTemplates(fsys)
}

func loadTemplates(fsys fs.FS) (*Templates, error) {
	t := &Templates{pages: make(map[string][]byte, len(pageNames))}
	for _, name := range pageNames {
		raw, err := fs.ReadFile(fsys, name+".html")
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		t.pages[name] = raw
	}
	return t, nil
}

// NewPage parses a fresh document for the named page.
func (t *Templates) NewPage(name string) (*Page, error) {
	raw, ok := t.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	return NewPage(bytes.NewReader(raw))
}
