package errors

import "testing"

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "screens.json", false},
		{"nested", "out/screens.json", false},
		{"absolute", "/tmp/screens.json", false},

		{"empty", "", true},
		{"traversal", "../screens.json", true},
		{"backslash", "out\\screens.json", true},
		{"null byte", "out\x00.json", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"login", false},
		{"home-no-package", false},
		{"onboarding1", false},

		{"", true},
		{"Home", true},
		{"home--premium", true},
		{"-login", true},
		{"login page", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateKey(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"01. Login", "📱 DDA Mobile — All Screens"} {
		if err := ValidateName(ok); err != nil {
			t.Errorf("ValidateName(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "   ", "a\nb"} {
		if err := ValidateName(bad); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", bad)
		}
	}
}
