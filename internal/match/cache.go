package match

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of distinct queries a Cache remembers.
const DefaultCacheSize = 128

// Cache memoizes Filter results for a single option list. The option list must not
// be modified after the cache is created; a new list needs a new Cache.
type Cache struct {
	options []string
	folded  []string
	results *lru.Cache[string, []string]
}

// NewCache creates a cache over options holding up to size query results.
func NewCache(options []string, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	results, _ := lru.New[string, []string](size)

	folded := make([]string, len(options))
	for i, option := range options {
		folded[i] = Fold(option)
	}

	return &Cache{
		options: options,
		folded:  folded,
		results: results,
	}
}

// Options returns the option list the cache was built for.
func (c *Cache) Options() []string {
	return c.options
}

// Filter behaves like the package-level Filter over the cached option list.
// The returned slice is shared with the cache and must not be modified.
func (c *Cache) Filter(query string) []string {
	if query == "" {
		return c.options
	}

	needle := Fold(query)
	if hit, ok := c.results.Get(needle); ok {
		return hit
	}

	result := make([]string, 0, len(c.options))
	for i, option := range c.options {
		if strings.Contains(c.folded[i], needle) {
			result = append(result, option)
		}
	}
	c.results.Add(needle, result)
	return result
}

// Len reports how many query results are currently cached.
func (c *Cache) Len() int {
	return c.results.Len()
}
