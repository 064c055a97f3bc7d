// Package math provides the small vector types shared by the brush engine and its hosts.
package math

// Vec2 is a 2D vector. In grid space X is the column and Y the row.
type Vec2 struct {
	X, Y float64
}
