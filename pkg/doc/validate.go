package doc

import (
	"fmt"
	"math"
	"strings"
)

// GeometryError reports a node whose geometry is not finite and
// non-negative.
type GeometryError struct {
	Path  string
	Field string
	Value float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("node %s: invalid %s %v", e.Path, e.Field, e.Value)
}

// Validate checks every node in the subtree: position, size, stroke
// weight, corner radius and font size must be finite and non-negative.
// The first violation is returned.
func Validate(root *Node) error {
	var err error
	root.walkPath(nil, func(n *Node, path []string) bool {
		if err != nil {
			return false
		}
		err = checkNode(n, strings.Join(path, "/"))
		return err == nil
	})
	return err
}

func (n *Node) walkPath(prefix []string, fn func(*Node, []string) bool) {
	path := append(prefix[:len(prefix):len(prefix)], nodeLabel(n))
	if !fn(n, path) {
		return
	}
	for _, c := range n.children {
		c.walkPath(path, fn)
	}
}

func nodeLabel(n *Node) string {
	if n.Name != "" {
		return n.Name
	}
	return string(n.Kind)
}

func checkNode(n *Node, path string) error {
	fields := [...]struct {
		name string
		v    float64
	}{
		{"x", n.Geometry.X},
		{"y", n.Geometry.Y},
		{"width", n.Geometry.W},
		{"height", n.Geometry.H},
		{"stroke weight", n.StrokeWeight},
		{"corner radius", n.CornerRadius},
		{"font size", n.FontSize},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return &GeometryError{Path: path, Field: f.name, Value: f.v}
		}
	}
	for _, p := range n.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return &GeometryError{Path: path, Field: "point", Value: p.X}
		}
	}
	if math.IsNaN(n.Rotation) || math.IsInf(n.Rotation, 0) {
		return &GeometryError{Path: path, Field: "rotation", Value: n.Rotation}
	}
	return nil
}
