package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var countries = []string{"France", "Germany", "Ghana", "Bulgaria", "Niger", "Nigeria"}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "empty query returns all options",
			query: "",
			want:  countries,
		},
		{
			name:  "single letter keeps order",
			query: "g",
			want:  []string{"Germany", "Ghana", "Bulgaria", "Niger", "Nigeria"},
		},
		{
			name:  "uppercase query matches lowercase label",
			query: "GER",
			want:  []string{"Germany", "Niger", "Nigeria"},
		},
		{
			name:  "substring in the middle",
			query: "ulg",
			want:  []string{"Bulgaria"},
		},
		{
			name:  "no match returns empty",
			query: "zz",
			want:  []string{},
		},
		{
			name:  "whitespace query matches nothing here",
			query: " ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(countries, tt.query)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterKeepsDuplicates(t *testing.T) {
	options := []string{"Chad", "Chile", "Chad"}
	assert.Equal(t, []string{"Chad", "Chad"}, Filter(options, "ad"))
}

func TestFilterNilOptions(t *testing.T) {
	assert.Empty(t, Filter(nil, "a"))
	assert.Nil(t, Filter(nil, ""))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Ghana", ""))
	assert.True(t, Contains("Ghana", "HAN"))
	assert.False(t, Contains("Ghana", "gha na"))
}

func TestCacheFilter(t *testing.T) {
	cache := NewCache(countries, 2)

	require.Equal(t, countries, cache.Filter(""))
	assert.Equal(t, 0, cache.Len(), "empty query must not be cached")

	first := cache.Filter("Ger")
	assert.Equal(t, []string{"Germany", "Niger", "Nigeria"}, first)
	assert.Equal(t, 1, cache.Len())

	again := cache.Filter("gER")
	assert.Equal(t, first, again)
	assert.Equal(t, 1, cache.Len(), "queries differing only in case share an entry")

	cache.Filter("a")
	cache.Filter("n")
	assert.Equal(t, 2, cache.Len(), "cache is bounded by its size")
}

func TestCacheMatchesFilter(t *testing.T) {
	cache := NewCache(countries, 0)
	for _, query := range []string{"", "g", "ia", "NIG", "x", "an"} {
		assert.Equal(t, Filter(countries, query), cache.Filter(query), "query %q", query)
	}
	assert.Equal(t, countries, cache.Options())
}
