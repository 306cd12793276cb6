package doc

import (
	"strings"

	"github.com/matzehuels/screenforge/pkg/fonts"
)

// Page is a named canvas holding top-level nodes.
type Page struct {
	Name  string  `json:"name"`
	Nodes []*Node `json:"nodes"`
}

// Add appends top-level nodes, detaching them from any previous container
// or page. Nodes should only be added through Add so that each one records
// its page.
func (p *Page) Add(nodes ...*Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.Detach()
		n.page = p
		p.Nodes = append(p.Nodes, n)
	}
}

func (p *Page) remove(n *Node) {
	for i, c := range p.Nodes {
		if c == n {
			p.Nodes = append(p.Nodes[:i:i], p.Nodes[i+1:]...)
			return
		}
	}
}

// Find returns the first top-level node with the given name.
func (p *Page) Find(name string) *Node {
	for _, n := range p.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// PaintStyle is a named reusable paint.
type PaintStyle struct {
	Name   string  `json:"name"`
	Paints []Paint `json:"paints"`
}

// TextStyle is a named reusable text setting.
type TextStyle struct {
	Name       string        `json:"name"`
	Font       fonts.FontRef `json:"font"`
	FontSize   float64       `json:"font_size"`
	LineHeight float64       `json:"line_height"`
}

// Document is the whole output: pages and design-system styles.
type Document struct {
	Pages       []*Page       `json:"pages"`
	PaintStyles []*PaintStyle `json:"paint_styles"`
	TextStyles  []*TextStyle  `json:"text_styles"`
}

// New returns an empty document.
func New() *Document { return &Document{} }

// AddPage appends a new page.
func (d *Document) AddPage(name string) *Page {
	p := &Page{Name: name}
	d.Pages = append(d.Pages, p)
	return p
}

// Page returns the first page with the given name.
func (d *Document) Page(name string) *Page {
	for _, p := range d.Pages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PagesContaining returns the names of pages whose name contains substr.
func (d *Document) PagesContaining(substr string) []string {
	var names []string
	for _, p := range d.Pages {
		if strings.Contains(p.Name, substr) {
			names = append(names, p.Name)
		}
	}
	return names
}

// RemovePage removes every page with the given name and reports whether any
// was found.
func (d *Document) RemovePage(name string) bool {
	kept := d.Pages[:0]
	removed := false
	for _, p := range d.Pages {
		if p.Name == name {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(d.Pages); i++ {
		d.Pages[i] = nil
	}
	d.Pages = kept
	return removed
}

// UpsertPaintStyle creates or replaces the paint style with the given name.
func (d *Document) UpsertPaintStyle(name string, paints ...Paint) *PaintStyle {
	for _, s := range d.PaintStyles {
		if s.Name == name {
			s.Paints = paints
			return s
		}
	}
	s := &PaintStyle{Name: name, Paints: paints}
	d.PaintStyles = append(d.PaintStyles, s)
	return s
}

// UpsertTextStyle creates or replaces the text style with the same name.
func (d *Document) UpsertTextStyle(ts TextStyle) *TextStyle {
	for _, s := range d.TextStyles {
		if s.Name == ts.Name {
			*s = ts
			return s
		}
	}
	s := &ts
	d.TextStyles = append(d.TextStyles, s)
	return s
}

// Stats summarizes a document.
type Stats struct {
	Pages       int `json:"pages"`
	TopLevel    int `json:"top_level"`
	Nodes       int `json:"nodes"`
	PaintStyles int `json:"paint_styles"`
	TextStyles  int `json:"text_styles"`
}

// Stats counts pages, top-level nodes, all nodes and styles.
func (d *Document) Stats() Stats {
	s := Stats{Pages: len(d.Pages), PaintStyles: len(d.PaintStyles), TextStyles: len(d.TextStyles)}
	for _, p := range d.Pages {
		s.TopLevel += len(p.Nodes)
		for _, n := range p.Nodes {
			s.Nodes += n.Count()
		}
	}
	return s
}
