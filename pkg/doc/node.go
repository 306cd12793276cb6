// Package doc is the in-memory document model: a tree of positioned
// containers, text runs and shapes grouped into pages, plus the named paint
// and text styles of a design system.
//
// A Node is owned by at most one parent, which is either a container or a
// page. Append and Page.Add move a node that already has an owner, so
// ownership stays exclusive. The model is not safe for
// concurrent mutation; build detached subtrees concurrently and attach them
// from one goroutine.
package doc

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/theme"
)

// Kind tags the variant of a Node.
type Kind string

const (
	KindContainer Kind = "container"
	KindText      Kind = "text"
	KindShape     Kind = "shape"
)

// Rect is a position relative to the parent plus a size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// LayoutMode is the auto-layout direction of a container.
type LayoutMode string

const (
	LayoutNone       LayoutMode = ""
	LayoutVertical   LayoutMode = "vertical"
	LayoutHorizontal LayoutMode = "horizontal"
)

// Align positions content along an axis.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// AutoLayout holds the flow layout settings of a container.
type AutoLayout struct {
	Mode          LayoutMode `json:"mode"`
	PaddingTop    float64    `json:"padding_top,omitempty"`
	PaddingRight  float64    `json:"padding_right,omitempty"`
	PaddingBottom float64    `json:"padding_bottom,omitempty"`
	PaddingLeft   float64    `json:"padding_left,omitempty"`
	ItemSpacing   float64    `json:"item_spacing,omitempty"`
	PrimaryAlign  Align      `json:"primary_align,omitempty"`
	CounterAlign  Align      `json:"counter_align,omitempty"`
}

// Padding sets all four paddings.
func (l AutoLayout) Padding(top, right, bottom, left float64) AutoLayout {
	l.PaddingTop, l.PaddingRight, l.PaddingBottom, l.PaddingLeft = top, right, bottom, left
	return l
}

// ShapeKind selects the geometry of a shape node.
type ShapeKind string

const (
	ShapeLine    ShapeKind = "line"
	ShapePolygon ShapeKind = "polygon"
	ShapeEllipse ShapeKind = "ellipse"
	ShapeVector  ShapeKind = "vector"
)

// Point is a vector path point relative to the node origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one element of the tree. Fields below the Kind-specific markers
// are only meaningful for that kind.
type Node struct {
	Kind         Kind        `json:"kind"`
	Name         string      `json:"name,omitempty"`
	Geometry     Rect        `json:"geometry"`
	Fills        []Paint     `json:"fills,omitempty"`
	Strokes      []Paint     `json:"strokes,omitempty"`
	StrokeWeight float64     `json:"stroke_weight,omitempty"`
	CornerRadius float64     `json:"corner_radius,omitempty"`
	Effects      []Effect    `json:"effects,omitempty"`
	Layout       *AutoLayout `json:"layout,omitempty"`

	// Text
	Characters string        `json:"characters,omitempty"`
	Font       fonts.FontRef `json:"font,omitzero"`
	FontSize   float64       `json:"font_size,omitempty"`
	TextAlign  Align         `json:"text_align,omitempty"`
	TextVAlign Align         `json:"text_valign,omitempty"`

	// Shape
	Shape      ShapeKind `json:"shape,omitempty"`
	PointCount int       `json:"point_count,omitempty"`
	Points     []Point   `json:"points,omitempty"`
	Rotation   float64   `json:"rotation,omitempty"`

	parent   *Node
	page     *Page
	children []*Node
}

// NewContainer returns an empty container.
func NewContainer(name string, g Rect, fills ...Paint) *Node {
	return &Node{Kind: KindContainer, Name: name, Geometry: g, Fills: fills}
}

// NewText returns a text run sized by a rough glyph-width estimate. Call
// Size to fix the box.
func NewText(chars string, font fonts.FontRef, size float64, fill theme.Color) *Node {
	n := utf8.RuneCountInString(chars)
	return &Node{
		Kind:       KindText,
		Name:       chars,
		Characters: chars,
		Font:       font,
		FontSize:   size,
		Fills:      []Paint{Solid(fill)},
		Geometry:   Rect{W: math.Ceil(float64(n) * size * 0.55), H: math.Ceil(size * 1.25)},
	}
}

// NewShape returns a shape of the given kind.
func NewShape(kind ShapeKind, g Rect) *Node {
	return &Node{Kind: KindShape, Shape: kind, Geometry: g}
}

// TreeError reports a violated ownership rule. Append panics with it.
type TreeError struct {
	Parent, Child string
	Reason        string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("append %q to %q: %s", e.Child, e.Parent, e.Reason)
}

// Append adds children in order and returns n. A child that already has a
// parent is detached from it first. Appending to a non-container, or
// appending a node into its own subtree, panics with a *TreeError.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		if n.Kind != KindContainer {
			panic(&TreeError{Parent: n.Name, Child: c.Name, Reason: fmt.Sprintf("parent is a %s", n.Kind)})
		}
		for p := n; p != nil; p = p.parent {
			if p == c {
				panic(&TreeError{Parent: n.Name, Child: c.Name, Reason: "child is an ancestor of parent"})
			}
		}
		c.Detach()
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Detach removes n from its parent container or page, if any.
func (n *Node) Detach() {
	if pg := n.page; pg != nil {
		pg.remove(n)
		n.page = nil
	}
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent returns the owning container or nil.
func (n *Node) Parent() *Node { return n.parent }

// OwnerPage returns the page holding n as a top-level node, or nil.
func (n *Node) OwnerPage() *Page { return n.page }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// RemoveChildren detaches every child.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the subtree of the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(x *Node, _ int) bool {
		if found != nil {
			return false
		}
		if x.Name == name {
			found = x
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree including n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Texts returns the characters of every text node in the subtree.
func (n *Node) Texts() []string {
	var out []string
	n.Walk(func(x *Node, _ int) bool {
		if x.Kind == KindText {
			out = append(out, x.Characters)
		}
		return true
	})
	return out
}

// At sets the position.
func (n *Node) At(x, y float64) *Node {
	n.Geometry.X, n.Geometry.Y = x, y
	return n
}

// Size sets the size.
func (n *Node) Size(w, h float64) *Node {
	n.Geometry.W, n.Geometry.H = w, h
	return n
}

// Named sets the name.
func (n *Node) Named(name string) *Node {
	n.Name = name
	return n
}

// Fill replaces the fills with one solid paint.
func (n *Node) Fill(c theme.Color) *Node {
	n.Fills = []Paint{Solid(c)}
	return n
}

// NoFill clears the fills.
func (n *Node) NoFill() *Node {
	n.Fills = nil
	return n
}

// Stroke replaces the strokes with one solid paint of the given weight.
func (n *Node) Stroke(c theme.Color, weight float64) *Node {
	n.Strokes = []Paint{Solid(c)}
	n.StrokeWeight = weight
	return n
}

// Radius sets the corner radius.
func (n *Node) Radius(r float64) *Node {
	n.CornerRadius = r
	return n
}

// Shadow appends a drop shadow.
func (n *Node) Shadow(e Effect) *Node {
	n.Effects = append(n.Effects, e)
	return n
}

// WithLayout sets the auto-layout of a container.
func (n *Node) WithLayout(l AutoLayout) *Node {
	n.Layout = &l
	return n
}

// Aligned sets the horizontal and vertical text alignment.
func (n *Node) Aligned(h, v Align) *Node {
	n.TextAlign, n.TextVAlign = h, v
	return n
}
