package validation

import (
	"testing"

	"github.com/matzehuels/screenforge/pkg/errors"
)

type sample struct {
	ID   string `validate:"required,key"`
	Name string `validate:"required,name"`
	Hex  string `validate:"required,hexcolor"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{ID: "home-premium", Name: "13. Home (Premium)", Hex: "#22c55e"}, false},
		{"bad key", sample{ID: "Home Premium", Name: "x", Hex: "#22c55e"}, true},
		{"control char name", sample{ID: "home", Name: "a\tb", Hex: "#22c55e"}, true},
		{"bad hex", sample{ID: "home", Name: "x", Hex: "green"}, true},
		{"missing", sample{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in, errors.ErrCodeInvalidCatalog)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCatalog) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestInstanceIsShared(t *testing.T) {
	if Instance() != Instance() {
		t.Error("Instance() returned different validators")
	}
}

func TestField(t *testing.T) {
	if got := Field("screens", 3, "id"); got != "screens[3].id" {
		t.Errorf("Field() = %q", got)
	}
}
