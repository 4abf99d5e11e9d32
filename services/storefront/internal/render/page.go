package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed HTML document implementing Renderer. All mutations are
// serialized so concurrent views can share one page.
type Page struct {
	mu    sync.Mutex
	doc   *goquery.Document
	empty Fragment
}

// NewPage parses an HTML document.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Page{doc: doc, empty: NoProductsFound()}, nil
}

// byID finds the first element with the id.
func (p *Page) byID(id string) *goquery.Selection {
	return p.doc.Find(`[id="` + strings.ReplaceAll(id, `"`, `\"`) + `"]`).First()
}

// Has reports whether the element exists.
func (p *Page) Has(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byID(id).Length() > 0
}

// RenderList appends items to the container.
func (p *Page) RenderList(container string, items []Fragment) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sel := p.byID(container)
	for _, item := range items {
		sel.AppendHtml(string(item))
	}
}

// ShowEmptyState appends the empty-state marker to the container.
func (p *Page) ShowEmptyState(container string) {
	p.RenderList(container, []Fragment{p.empty})
}

// Hide sets display:none on the element.
func (p *Page) Hide(id string) {
	p.setDisplay(id, "none")
}

// Show sets display:block on the element.
func (p *Page) Show(id string) {
	p.setDisplay(id, "block")
}

// SetValue sets a control's value. Inputs get a value attribute, selects get
// the matching option marked selected, textareas get their text replaced.
func (p *Page) SetValue(id, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sel := p.byID(id)
	if sel.Length() == 0 {
		return
	}

	switch goquery.NodeName(sel) {
	case "select":
		sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
			v, ok := opt.Attr("value")
			if !ok {
				v = opt.Text()
			}
			if v == value {
				opt.SetAttr("selected", "selected")
			} else {
				opt.RemoveAttr("selected")
			}
		})
	case "textarea":
		sel.SetText(value)
	default:
		sel.SetAttr("value", value)
	}
}

// SetText replaces the element's children with text.
func (p *Page) SetText(id, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID(id).SetText(text)
}

// HTML serializes the document.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	html, err := p.doc.Html()
	if err != nil {
		return "", fmt.Errorf("serialize page: %w", err)
	}
	return html, nil
}

func (p *Page) setDisplay(id, display string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sel := p.byID(id)
	if sel.Length() == 0 {
		return
	}
	style, _ := sel.Attr("style")
	sel.SetAttr("style", withDisplay(style, display))
}

// withDisplay replaces or adds the display declaration of an inline style.
func withDisplay(style, display string) string {
	decls := make([]string, 0, 4)
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), "display") {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, "display: "+display)
	return strings.Join(decls, "; ")
}
