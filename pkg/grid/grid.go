// Package grid computes fixed-column placement for an ordered sequence of
// equally sized items.
//
// Placement is a pure function of (index, Config): no cursor is carried
// between calls, so positions can be computed out of order, in parallel or
// without building anything.
//
// Items fill rows left to right. When RowsPerPage is positive, row counting
// restarts after that many rows and the page origin advances by one page
// height plus PageGap.
package grid

import (
	"math"

	"github.com/matzehuels/screenforge/pkg/errors"
)

// Config describes the grid.
type Config struct {
	Columns     int     `toml:"columns" json:"columns"`
	ItemWidth   float64 `toml:"item_width" json:"item_width"`
	ItemHeight  float64 `toml:"item_height" json:"item_height"`
	ColumnGap   float64 `toml:"column_gap" json:"column_gap"`
	RowGap      float64 `toml:"row_gap" json:"row_gap"`
	RowsPerPage int     `toml:"rows_per_page" json:"rows_per_page"` // 0 disables paging
	PageGap     float64 `toml:"page_gap" json:"page_gap"`
	OriginX     float64 `toml:"origin_x" json:"origin_x"`
	OriginY     float64 `toml:"origin_y" json:"origin_y"`
}

// Mobile frame defaults: four 375x812 frames per row on a 455 by 900 pitch.
const (
	DefaultColumns    = 4
	DefaultItemWidth  = 375
	DefaultItemHeight = 812
	DefaultColumnGap  = 80
	DefaultRowGap     = 88
)

// Default returns the mobile screen grid.
func Default() Config {
	return Config{
		Columns:    DefaultColumns,
		ItemWidth:  DefaultItemWidth,
		ItemHeight: DefaultItemHeight,
		ColumnGap:  DefaultColumnGap,
		RowGap:     DefaultRowGap,
	}
}

// SetDefaults fills zero sizing fields with the mobile defaults. Gaps are
// left as given because zero is a valid gap.
func (c *Config) SetDefaults() {
	if c.Columns == 0 {
		c.Columns = DefaultColumns
	}
	if c.ItemWidth == 0 {
		c.ItemWidth = DefaultItemWidth
	}
	if c.ItemHeight == 0 {
		c.ItemHeight = DefaultItemHeight
	}
}

// Validate checks the config for values that would produce negative or
// non-finite coordinates.
func (c Config) Validate() error {
	if c.Columns <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "grid: columns must be positive, got %d", c.Columns)
	}
	if c.RowsPerPage < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "grid: rows per page must not be negative, got %d", c.RowsPerPage)
	}
	for _, f := range []struct {
		name string
		v    float64
		pos  bool
	}{
		{"item width", c.ItemWidth, true},
		{"item height", c.ItemHeight, true},
		{"column gap", c.ColumnGap, false},
		{"row gap", c.RowGap, false},
		{"page gap", c.PageGap, false},
		{"origin x", c.OriginX, false},
		{"origin y", c.OriginY, false},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 || (f.pos && f.v == 0) {
			return errors.New(errors.ErrCodeInvalidOptions, "grid: invalid %s %v", f.name, f.v)
		}
	}
	return nil
}

// ColumnStep is the horizontal pitch between item origins.
func (c Config) ColumnStep() float64 { return c.ItemWidth + c.ColumnGap }

// RowStep is the vertical pitch between item origins within a page.
func (c Config) RowStep() float64 { return c.ItemHeight + c.RowGap }

// PageStep is the vertical distance between page origins.
func (c Config) PageStep() float64 {
	return float64(c.RowsPerPage)*c.RowStep() + c.PageGap
}

// Placement is the computed position of one item.
type Placement struct {
	X, Y   float64
	Column int
	Row    int // row within the page
	Page   int
}

// columns is Columns clamped to at least one.
func (c Config) columns() int {
	if c.Columns < 1 {
		return 1
	}
	return c.Columns
}

// Place returns the position of the item at index. Negative indexes are
// treated as zero and a config with fewer than one column as a single
// column.
func Place(index int, c Config) Placement {
	if index < 0 {
		index = 0
	}
	cols := c.columns()
	col := index % cols
	row := index / cols
	page := 0
	if c.RowsPerPage > 0 {
		page = row / c.RowsPerPage
		row %= c.RowsPerPage
	}
	pageOrigin := c.OriginY
	if page > 0 {
		pageOrigin += float64(page) * c.PageStep()
	}
	return Placement{
		X:      c.OriginX + float64(col)*c.ColumnStep(),
		Y:      pageOrigin + float64(row)*c.RowStep(),
		Column: col,
		Row:    row,
		Page:   page,
	}
}

// Rows returns the number of rows needed for n items, across all pages.
func Rows(n int, c Config) int {
	if n <= 0 {
		return 0
	}
	cols := c.columns()
	return (n + cols - 1) / cols
}

// Pages returns the number of pages n items span.
func Pages(n int, c Config) int {
	rows := Rows(n, c)
	if rows == 0 {
		return 0
	}
	if c.RowsPerPage <= 0 {
		return 1
	}
	return (rows + c.RowsPerPage - 1) / c.RowsPerPage
}

// BandOrigin returns the Y origin of a band placed below n items, leaving
// one empty row between them. For 30 mobile frames this is 8100.
func BandOrigin(n int, c Config) float64 {
	return Place((Rows(n, c)+1)*c.columns(), c).Y
}

// Bounds returns the width and height of the area covered by n items.
func Bounds(n int, c Config) (w, h float64) {
	if n <= 0 {
		return 0, 0
	}
	cols := c.columns()
	if n < cols {
		cols = n
	}
	last := Place(n-1, c)
	w = float64(cols)*c.ItemWidth + float64(cols-1)*c.ColumnGap
	h = last.Y - c.OriginY + c.ItemHeight
	return w, h
}
