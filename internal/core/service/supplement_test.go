package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplementProducts(t *testing.T) {
	ps := SupplementProducts()
	require.Len(t, ps, 2)
	assert.Equal(t, 9002, ps[0].ID)
	assert.Equal(t, 9003, ps[1].ID)
	for _, p := range ps {
		assert.Zero(t, p.Stock)
		assert.False(t, p.InStock())
		assert.Equal(t, "Out of Stock", p.AvailabilityStatus)
	}

	ps[0].Tags[0] = "changed"
	assert.Equal(t, "smartwatch", SupplementProducts()[0].Tags[0])
}

func TestMatchesQuery(t *testing.T) {
	smartwatch := SupplementProducts()[0]

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"Title", "Smartwatch", true},
		{"Description", "limited production", true},
		{"Category", "WEARABLES", true},
		{"Brand", "techtime", true},
		{"Tag", "health", true},
		{"Trimmed", "  watch  ", true},
		{"NoMatch", "keyboard", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesQuery(smartwatch, tt.query))
		})
	}
}

func TestFilterProducts(t *testing.T) {
	ps := SupplementProducts()

	assert.Len(t, FilterProducts(ps, "out of stock"), 2)
	assert.Empty(t, FilterProducts(ps, "phone"))

	got := FilterProducts(ps, "gaming")
	require.Len(t, got, 1)
	assert.Equal(t, 9003, got[0].ID)
}
