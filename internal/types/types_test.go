package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenusOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Brodiaea californica", "Brodiaea"},
		{"Brodiaea californica 'Babylon'", "Brodiaea"},
		{"Brodiaea", "Brodiaea"},
		{"  Iris douglasiana  ", "Iris"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GenusOf(tt.name), "GenusOf(%q)", tt.name)
	}
}

func TestIsCultivarName(t *testing.T) {
	assert.True(t, IsCultivarName("Iris douglasiana 'Canyon Snow'"))
	assert.False(t, IsCultivarName("Iris douglasiana"))
	assert.False(t, IsCultivarName(""))
}

func TestPlantHelpers(t *testing.T) {
	p := Plant{BotanicalName: "Dichelostemma capitatum 'Pink Diamond'"}
	assert.Equal(t, "Dichelostemma", p.Genus())
	assert.True(t, p.IsCultivar())
}
