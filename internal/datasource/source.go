// Package datasource supplies the option list shown by the typeahead.
//
// A Source makes exactly one attempt per Fetch call: it returns either the full
// option list or an error, never both and never neither. Retrying is left to the
// caller (the typeahead deliberately does not retry).
package datasource

import (
	"context"
	"errors"
)

var (
	// ErrInjected is the default failure returned by a Simulated source.
	ErrInjected = errors.New("simulated fetch failure")

	// ErrMalformed marks a payload that could not be turned into options.
	ErrMalformed = errors.New("malformed options payload")

	// ErrNoSource is reported when no source has been configured.
	ErrNoSource = errors.New("no option source configured")
)

// Source fetches the full option list.
type Source interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) ([]string, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Static is a Source over a fixed option list.
type Static []string

// Fetch returns a copy of the list so callers cannot alter it.
func (s Static) Fetch(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), s...), nil
}
