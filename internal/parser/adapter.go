// Package parser turns raw user text into backend expressions.
// Every entry point normalizes first, so callers may pass text straight
// from the prompt.
package parser

import (
	"fmt"

	"mathshell/internal/normalize"
	"mathshell/pkg/mathtypes"
)

// Adapter wraps a Backend with the normalizer. Implicit multiplication is
// always on: 2x parses as 2*x.
type Adapter struct {
	backend mathtypes.Backend
}

// NewAdapter creates an Adapter over the given backend.
func NewAdapter(backend mathtypes.Backend) *Adapter {
	return &Adapter{backend: backend}
}

// Backend returns the wrapped backend.
func (a *Adapter) Backend() mathtypes.Backend {
	return a.backend
}

// Parse normalizes text and parses it. Failures unwrap to
// mathtypes.ErrParse.
func (a *Adapter) Parse(text string) (mathtypes.Expression, error) {
	return a.parse(normalize.Normalize(text))
}

// ParseNormalized parses text that the caller already normalized. The text
// is normalized again, which is a no-op on normalized input.
func (a *Adapter) ParseNormalized(text string) (mathtypes.Expression, error) {
	return a.parse(normalize.Normalize(text))
}

func (a *Adapter) parse(text string) (mathtypes.Expression, error) {
	if a.backend == nil {
		return nil, fmt.Errorf("no algebra backend: %w", mathtypes.ErrDependencyMissing)
	}
	return a.backend.Parse(text)
}
