package types

import "testing"

func TestNewGenotype(t *testing.T) {
	tests := []struct {
		raw  string
		want Genotype
	}{
		{"AG", "AG"},
		{"ag", "AG"},
		{"(A;G)", "AG"},
		{"( a ; g )", "AG"},
		{"--", "--"},
		{"II", "II"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NewGenotype(tt.raw); got != tt.want {
			t.Errorf("NewGenotype(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestComplement(t *testing.T) {
	tests := []struct {
		gt   Genotype
		want Genotype
	}{
		{"AG", "TC"},
		{"CC", "GG"},
		{"AT", "TA"},
		{"--", "--"}, // no-call passes through
		{"DI", "DI"}, // indel markers pass through
	}
	for _, tt := range tests {
		if got := tt.gt.Complement(); got != tt.want {
			t.Errorf("Complement(%q) = %q, want %q", tt.gt, got, tt.want)
		}
	}
}
