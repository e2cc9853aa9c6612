package instrument

import (
	"errors"
	"reflect"
	"testing"
)

func TestBand(t *testing.T) {
	tests := []struct {
		selector string
		wantName string
		wantErr  bool
	}{
		{"so", "SO", false},
		{"lno", "LNO", false},
		{"uvis", "UVIS", false},
		{"LNO", "LNO", false},
		{"acs", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			b, err := Band(tt.selector)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBand) {
					t.Fatalf("Band(%q) = %v, want ErrUnknownBand", tt.selector, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Band(%q): %v", tt.selector, err)
			}
			if b.Name != tt.wantName {
				t.Errorf("Band(%q).Name = %q, want %q", tt.selector, b.Name, tt.wantName)
			}
			if b.CenterWavelength <= 0 || b.FullWidthHalfMax <= 0 {
				t.Errorf("Band(%q) has non-positive wavelengths: %+v", tt.selector, b)
			}
		})
	}
}

func TestBandsFailsOnFirstUnknown(t *testing.T) {
	if _, err := Bands([]string{"so", "acs"}); !errors.Is(err, ErrUnknownBand) {
		t.Fatalf("Bands = %v, want ErrUnknownBand", err)
	}

	got, err := Bands([]string{"so", "lno"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Bands returned %d bands, want 2", len(got))
	}
}

func TestNames(t *testing.T) {
	if got, want := Names(), []string{"lno", "so", "uvis"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
