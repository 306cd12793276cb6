package grid

import (
	"math"
	"testing"
)

func TestPlaceThirtyScreens(t *testing.T) {
	cfg := Default()

	xs := []float64{0, 455, 910, 1365}
	for i := 0; i < 30; i++ {
		p := Place(i, cfg)
		wantX := xs[i%4]
		wantY := float64(i/4) * 900
		if p.X != wantX || p.Y != wantY {
			t.Errorf("Place(%d) = (%v, %v), want (%v, %v)", i, p.X, p.Y, wantX, wantY)
		}
		if p.Page != 0 {
			t.Errorf("Place(%d).Page = %d, want 0", i, p.Page)
		}
	}

	// Spot checks against the hand-computed table.
	checks := []struct {
		i    int
		x, y float64
	}{
		{0, 0, 0},
		{3, 1365, 0},
		{4, 0, 900},
		{13, 455, 2700},
		{27, 1365, 5400},
		{28, 0, 6300},
		{29, 455, 6300},
	}
	for _, c := range checks {
		p := Place(c.i, cfg)
		if p.X != c.x || p.Y != c.y {
			t.Errorf("Place(%d) = (%v, %v), want (%v, %v)", c.i, p.X, p.Y, c.x, c.y)
		}
	}
}

func TestPlacePaging(t *testing.T) {
	cfg := Default()
	cfg.RowsPerPage = 3
	cfg.PageGap = 300

	tests := []struct {
		i         int
		y         float64
		row, page int
	}{
		{0, 0, 0, 0},
		{11, 1800, 2, 0},
		{12, 3000, 0, 1}, // 3*900 + 300
		{16, 3900, 1, 1},
		{24, 6000, 0, 2},
		{29, 6900, 1, 2},
	}
	for _, tt := range tests {
		p := Place(tt.i, cfg)
		if p.Y != tt.y || p.Row != tt.row || p.Page != tt.page {
			t.Errorf("Place(%d) = %+v, want y=%v row=%d page=%d", tt.i, p, tt.y, tt.row, tt.page)
		}
	}
	if got := Pages(30, cfg); got != 3 {
		t.Errorf("Pages(30) = %d, want 3", got)
	}
}

func TestPlaceIsPure(t *testing.T) {
	cfg := Default()
	a := Place(17, cfg)
	for i := 0; i < 40; i++ {
		Place(i, cfg)
	}
	if b := Place(17, cfg); a != b {
		t.Errorf("Place(17) changed: %+v vs %+v", a, b)
	}
}

func TestPlaceProperties(t *testing.T) {
	cfgs := []Config{
		Default(),
		{Columns: 3, ItemWidth: 100, ItemHeight: 50, ColumnGap: 10, RowGap: 5, RowsPerPage: 2, PageGap: 40, OriginX: 7, OriginY: 11},
		{Columns: 1, ItemWidth: 10, ItemHeight: 10},
	}
	for _, cfg := range cfgs {
		if err := cfg.Validate(); err != nil {
			t.Fatal(err)
		}
		seen := map[[2]float64]int{}
		for i := 0; i < 100; i++ {
			p := Place(i, cfg)
			if p.X < 0 || p.Y < 0 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
				t.Fatalf("Place(%d) = %+v not finite non-negative", i, p)
			}
			key := [2]float64{p.X, p.Y}
			if j, dup := seen[key]; dup {
				t.Fatalf("items %d and %d share position %v", j, i, key)
			}
			seen[key] = i
			if want := cfg.OriginX + float64(i%cfg.Columns)*cfg.ColumnStep(); p.X != want {
				t.Errorf("Place(%d).X = %v, want %v", i, p.X, want)
			}
		}
	}
}

func TestBandOrigin(t *testing.T) {
	cfg := Default()
	if got := BandOrigin(30, cfg); got != 8100 {
		t.Errorf("BandOrigin(30) = %v, want 8100", got)
	}
	if got := BandOrigin(32, cfg); got != 8100 {
		t.Errorf("BandOrigin(32) = %v, want 8100", got)
	}
	if got := BandOrigin(0, cfg); got != 900 {
		t.Errorf("BandOrigin(0) = %v, want 900", got)
	}
}

func TestBounds(t *testing.T) {
	w, h := Bounds(30, Default())
	if w != 1740 || h != 6300+812 {
		t.Errorf("Bounds(30) = %v x %v", w, h)
	}
	w, h = Bounds(2, Default())
	if w != 830 || h != 812 {
		t.Errorf("Bounds(2) = %v x %v", w, h)
	}
}

func TestZeroColumnsActAsOne(t *testing.T) {
	cfg := Default()
	cfg.Columns = 0

	for i := 0; i < 3; i++ {
		p := Place(i, cfg)
		if p.X != 0 || p.Column != 0 || p.Y != float64(i)*900 {
			t.Errorf("Place(%d) = %+v, want single column", i, p)
		}
	}
	if got := Rows(3, cfg); got != 3 {
		t.Errorf("Rows(3) = %d, want 3", got)
	}
	if got := BandOrigin(0, cfg); got != 900 {
		t.Errorf("BandOrigin(0) = %v, want 900", got)
	}
	w, h := Bounds(3, cfg)
	if w != 375 || h != 2*900+812 {
		t.Errorf("Bounds(3) = %v x %v", w, h)
	}

	cfg.Columns = -2
	if got := Place(5, cfg); got.Y != 4500 {
		t.Errorf("Place(5) with negative columns = %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero columns", func(c *Config) { c.Columns = 0 }},
		{"negative gap", func(c *Config) { c.ColumnGap = -1 }},
		{"zero height", func(c *Config) { c.ItemHeight = 0 }},
		{"nan origin", func(c *Config) { c.OriginY = math.NaN() }},
		{"negative rows per page", func(c *Config) { c.RowsPerPage = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
