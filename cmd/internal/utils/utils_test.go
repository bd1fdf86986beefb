package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCNPJValid(t *testing.T) {
	assert.True(t, IsCNPJValid("11222333000181"))
	assert.True(t, IsCNPJValid("11444777000161"))

	assert.False(t, IsCNPJValid("11222333000182"))
	assert.False(t, IsCNPJValid("11111111111111"))
	assert.False(t, IsCNPJValid("11.222.333/0001-81"))
	assert.False(t, IsCNPJValid("1122233300018"))
}

func TestIsCPFValid(t *testing.T) {
	assert.True(t, IsCPFValid("52998224725"))

	assert.False(t, IsCPFValid("52998224726"))
	assert.False(t, IsCPFValid("00000000000"))
	assert.False(t, IsCPFValid("5299822472"))
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "11222333000181", OnlyDigits("11.222.333/0001-81"))
	assert.Equal(t, "", OnlyDigits("n/a"))
}

func TestSanitize(t *testing.T) {
	type inner struct {
		City string
	}
	type form struct {
		Name    string
		Tags    []string
		Address *inner
		Nested  inner
		Missing *inner
		Rate    float64
		hidden  string
	}

	f := &form{
		Name:    "  Maria ",
		Tags:    []string{" a", "b "},
		Address: &inner{City: " Campinas "},
		Nested:  inner{City: "\tSorocaba\n"},
		Rate:    10,
		hidden:  " keep ",
	}
	Sanitize(f)

	assert.Equal(t, "Maria", f.Name)
	assert.Equal(t, []string{"a", "b"}, f.Tags)
	assert.Equal(t, "Campinas", f.Address.City)
	assert.Equal(t, "Sorocaba", f.Nested.City)
	assert.Nil(t, f.Missing)
	assert.Equal(t, " keep ", f.hidden)

	assert.Panics(t, func() { Sanitize(form{}) })
}

func TestFormatEpoch(t *testing.T) {
	assert.Equal(t, "2026-10-16T00:00:00Z", FormatEpoch(1792108800000))
}
