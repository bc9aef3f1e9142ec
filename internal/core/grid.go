// Package core provides fundamental types and utilities for the café engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Grid maps device (pixel/terminal-cell) coordinates to the fixed logical
// play grid and back. It holds only calibration constants and has no state.
type Grid struct {
	Cols, Rows int     // Logical grid dimensions
	CellW      float64 // Device units per logical cell, horizontal
	CellH      float64 // Device units per logical cell, vertical
	OriginX    float64 // Device coordinate of the grid's top-left corner
	OriginY    float64
}

// NewGrid creates a grid with the given logical size and calibration.
func NewGrid(cols, rows int, cellW, cellH, originX, originY float64) Grid {
	return Grid{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH, OriginX: originX, OriginY: originY}
}

// ToCell converts device coordinates to logical grid coordinates,
// clamped into [0, Cols) x [0, Rows).
func (g Grid) ToCell(px, py float64) (float64, float64) {
	gx := (px - g.OriginX) / g.CellW
	gy := (py - g.OriginY) / g.CellH
	gx = ClampF(gx, 0, float64(g.Cols)-1)
	gy = ClampF(gy, 0, float64(g.Rows)-1)
	return gx, gy
}

// ToDevice converts logical grid coordinates back to device coordinates.
func (g Grid) ToDevice(gx, gy float64) (float64, float64) {
	return g.OriginX + gx*g.CellW, g.OriginY + gy*g.CellH
}

// CellIndex returns the integer cell containing the device point, clamped
// into the grid bounds.
func (g Grid) CellIndex(px, py float64) (int, int) {
	gx, gy := g.ToCell(px, py)
	return Clamp(int(gx), 0, g.Cols-1), Clamp(int(gy), 0, g.Rows-1)
}

// Rect is an axis-aligned rectangle in logical grid coordinates.
// Used for item sensitivity areas and proximity checks.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Extend grows the rectangle by (dx, dy); negative values grow toward the
// top-left by shifting the origin.
func (r Rect) Extend(dx, dy float64) Rect {
	if dx < 0 {
		r.X += dx
	}
	if dy < 0 {
		r.Y += dy
	}
	r.W += AbsF(dx)
	r.H += AbsF(dy)
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
