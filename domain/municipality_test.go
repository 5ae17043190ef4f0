package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single word", in: "Riohacha", want: "riohacha"},
		{name: "two words", in: "Santa Marta", want: "santa_marta"},
		{name: "surrounding and repeated whitespace", in: "  Test \t Town ", want: "test_town"},
		{name: "punctuation stripped", in: "San Juan del Cesar (La Guajira)", want: "san_juan_del_cesar_la_guajira"},
		{name: "non-ascii letters stripped", in: "Ciénaga", want: "cinaga"},
		{name: "digits kept", in: "Zona 2", want: "zona_2"},
		{name: "existing underscore kept", in: "el_molino", want: "el_molino"},
		{name: "only symbols", in: "¡¿!?", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.in))
		})
	}
}
