package nit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationDigit(t *testing.T) {
	// 8001972684: NIT publicado de la DIAN, dígito 4
	dv, ok := VerificationDigit("800197268")
	assert.True(t, ok)
	assert.Equal(t, byte('4'), dv)

	_, ok = VerificationDigit("12345")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"800197268":     "800.197.268-4",
		"800.197.268-4": "800.197.268-4",
		" 8001972684 ":  "800.197.268-4",
		"1020304":       "1020304",
		"N/A":           "N/A",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(in), in)
	}
}
