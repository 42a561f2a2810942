package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane doe"},
		{"  JANE   DOE  ", "jane doe"},
		{"Jane A. Doe", "jane a doe"},
		{"Müller, Jörg", "müller jörg"},
		{"Groß123 (iPad)", "groß ipad"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestNamesSimilar(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "identical", a: "Jane Doe", b: "Jane Doe", want: true},
		{name: "case and spacing", a: "jane  DOE", b: "Jane Doe", want: true},
		{name: "middle initial", a: "Jane A. Doe", b: "Jane Doe", want: true},
		{name: "extra surname", a: "Jane Doe", b: "Jane Doe Miller", want: true},
		{name: "different person", a: "Jane Doe", b: "John Smith", want: false},
		{name: "shared first name only", a: "Jane Doe", b: "Jane Smith", want: false},
		{name: "empty", a: "", b: "Jane Doe", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesSimilar(tt.a, tt.b))
		})
	}
}
