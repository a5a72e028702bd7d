package datasource

import (
	_ "embed"
	"fmt"
)

//go:embed countries.json
var countriesJSON []byte

// Offline returns a Static source over the bundled country sample, for use without
// network access.
func Offline() (Static, error) {
	options, err := ParseOptions(countriesJSON, DefaultField)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundled countries: %w", err)
	}
	return Static(options), nil
}
