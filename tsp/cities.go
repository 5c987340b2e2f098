package tsp

import "math/rand"

// Bounds describes the rectangle RandomCities draws from. Cities land on
// integer coordinates in [Margin, Width−Margin] × [Margin, Height−Margin].
type Bounds struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	Margin int `json:"margin" yaml:"margin"`
}

// DefaultBounds is a 1200×800 field with a 50-unit margin.
func DefaultBounds() Bounds {
	return Bounds{Width: 1200, Height: 800, Margin: 50}
}

// RandomCities draws n cities uniformly on integer coordinates inside b.
//
// Errors: ErrInvalidInput if n < MinCities or the inset rectangle is empty.
//
// Complexity: O(n).
func RandomCities(n int, b Bounds, rng *rand.Rand) ([]City, error) {
	if n < MinCities {
		return nil, ErrInvalidInput
	}
	var (
		spanX = b.Width - 2*b.Margin
		spanY = b.Height - 2*b.Margin
	)
	if b.Margin < 0 || spanX < 0 || spanY < 0 {
		return nil, ErrInvalidInput
	}

	out := make([]City, n)

	var i int
	for i = 0; i < n; i++ {
		out[i] = City{
			X: float64(b.Margin + rng.Intn(spanX+1)),
			Y: float64(b.Margin + rng.Intn(spanY+1)),
		}
	}

	return out, nil
}
