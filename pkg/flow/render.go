package flow

import (
	"math"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/theme"
)

// Style configures the boxes and connectors of a materialized flow map.
type Style struct {
	BoxWidth    float64
	BoxHeight   float64
	Radius      float64
	StrokeWidth float64
	ArrowSize   float64
	FontSize    float64
	Stroke      theme.Color
	Fill        theme.Color
	Text        theme.Color
}

// DefaultStyle returns 160x80 white boxes outlined in the brand green.
func DefaultStyle() Style {
	brand := theme.MustHex("#22c55e")
	return Style{
		BoxWidth:    160,
		BoxHeight:   80,
		Radius:      12,
		StrokeWidth: 2,
		ArrowSize:   10,
		FontSize:    12,
		Stroke:      brand,
		Fill:        theme.White,
		Text:        brand,
	}
}

// Materialize builds one box per node followed by one connector and one
// arrowhead per edge. The returned nodes are detached and ready to be added
// to a page in order.
func Materialize(g Graph, fc fonts.Context, st Style) []*doc.Node {
	out := make([]*doc.Node, 0, len(g.Nodes)+2*len(g.Edges))
	for _, n := range g.Nodes {
		out = append(out, box(n, fc, st))
	}
	for _, e := range g.Edges {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		line, arrow := connector(from, to, st)
		out = append(out, line, arrow)
	}
	return out
}

func box(n Node, fc fonts.Context, st Style) *doc.Node {
	b := doc.NewContainer(n.Name, doc.Rect{X: n.X, Y: n.Y, W: st.BoxWidth, H: st.BoxHeight}, doc.Solid(st.Fill)).
		Radius(st.Radius).
		Stroke(st.Stroke, st.StrokeWidth).
		Shadow(doc.DropShadow(0.1, 4, 8))
	label := doc.NewText(n.Name, fc.Bold, st.FontSize, st.Text).
		At(20, (st.BoxHeight-20)/2).
		Size(st.BoxWidth-40, 20).
		Aligned(doc.AlignCenter, doc.AlignCenter)
	return b.Append(label)
}

// connector draws a straight line between the boundaries of the two boxes
// along the line joining their centers, plus a triangular arrowhead
// centered on the target boundary and rotated to the line direction.
func connector(from, to Node, st Style) (line, arrow *doc.Node) {
	sx, sy := from.X+st.BoxWidth/2, from.Y+st.BoxHeight/2
	tx, ty := to.X+st.BoxWidth/2, to.Y+st.BoxHeight/2
	dx, dy := tx-sx, ty-sy

	start := boundary(sx, sy, dx, dy, st)
	end := boundary(tx, ty, -dx, -dy, st)

	minX, minY := math.Min(start.X, end.X), math.Min(start.Y, end.Y)
	line = doc.NewShape(doc.ShapeLine, doc.Rect{
		X: minX,
		Y: minY,
		W: math.Abs(end.X - start.X),
		H: math.Abs(end.Y - start.Y),
	}).Named(from.Name+" → "+to.Name).Stroke(st.Stroke, st.StrokeWidth)
	line.Points = []doc.Point{
		{X: start.X - minX, Y: start.Y - minY},
		{X: end.X - minX, Y: end.Y - minY},
	}

	half := st.ArrowSize / 2
	arrow = doc.NewShape(doc.ShapePolygon, doc.Rect{
		X: math.Max(0, end.X-half),
		Y: math.Max(0, end.Y-half),
		W: st.ArrowSize,
		H: st.ArrowSize,
	}).Named("arrow " + to.Name).Fill(st.Stroke)
	arrow.PointCount = 3
	arrow.Rotation = math.Atan2(dy, dx) * 180 / math.Pi
	return line, arrow
}

// boundary returns the point where a ray from the box center (cx, cy) in
// direction (dx, dy) leaves the box.
func boundary(cx, cy, dx, dy float64, st Style) doc.Point {
	if dx == 0 && dy == 0 {
		return doc.Point{X: cx, Y: cy}
	}
	t := math.Inf(1)
	if dx != 0 {
		t = math.Min(t, st.BoxWidth/2/math.Abs(dx))
	}
	if dy != 0 {
		t = math.Min(t, st.BoxHeight/2/math.Abs(dy))
	}
	return doc.Point{X: cx + dx*t, Y: cy + dy*t}
}
