package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	cases := map[string]string{
		"  frutas   TROPICALES ": "Frutas tropicales",
		"Lácteos":               "Lacteos",
		"ÑANDÚ":                 "Nandu",
		"":                      "",
		"   ":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Category(in), "entrada %q", in)
	}
}

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "accion cafe", StripAccents("acción café"))
}
