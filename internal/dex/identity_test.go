package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Bulbasaur", "bulbasaur"},
		{"apostrophe", "Farfetch'd", "farfetchd"},
		{"hyphen and dot", "Mr. Mime", "mrmime"},
		{"form suffix collapses", "Ho-Oh", "hooh"},
		{"digits kept", "Porygon2", "porygon2"},
		{"spaces stripped", "Tapu Koko", "tapukoko"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identity(tt.in))
			// Deterministic: same input, same key.
			assert.Equal(t, Identity(tt.in), Identity(tt.in))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Garchomp", Capitalize("garchomp"))
	assert.Equal(t, "", Capitalize(""))
}
