package models

import (
	"gonum.org/v1/gonum/mat"
)

// Point represents a single neuron coordinate in microns.
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned rectangle in microns. The same type serves
// both the density-estimation grid and the plot limits; the two default
// to identical ranges but may be configured independently.
type Bounds struct {
	XMin float64 `yaml:"xMin"`
	XMax float64 `yaml:"xMax"`
	YMin float64 `yaml:"yMin"`
	YMax float64 `yaml:"yMax"`
}

// Valid reports whether the rectangle is non-degenerate.
func (b Bounds) Valid() bool {
	return b.XMin < b.XMax && b.YMin < b.YMax
}

// Width returns the x extent of the rectangle.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns the y extent of the rectangle.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Dataset represents one neuron-coordinate file with metadata
type Dataset struct {
	// Name is the display name derived from the file name
	Name string

	// Path is the full path to the source file
	Path string

	// FileName is the raw file name including extension
	FileName string

	// Points holds the loaded coordinates, mirrored across the y-axis.
	// Loaded once and read-only thereafter.
	Points []Point
}

// DensityField is a square grid of kernel density estimates for one
// dataset, together with the grid axis coordinates. The method set
// satisfies gonum/plot's plotter.GridXYZ so a field can be contoured
// directly.
type DensityField struct {
	// Xs and Ys are the grid axis coordinates, each of length Bins
	Xs []float64
	Ys []float64

	// Values is the Bins x Bins density matrix in row-major (y, x) order
	Values *mat.Dense
}

// Dims returns the number of columns and rows in the grid.
func (f *DensityField) Dims() (c, r int) { return len(f.Xs), len(f.Ys) }

// Z returns the density value at column c, row r.
func (f *DensityField) Z(c, r int) float64 { return f.Values.At(r, c) }

// X returns the x coordinate of column c.
func (f *DensityField) X(c int) float64 { return f.Xs[c] }

// Y returns the y coordinate of row r.
func (f *DensityField) Y(r int) float64 { return f.Ys[r] }

// MinMax returns the smallest and largest density values in the field.
func (f *DensityField) MinMax() (min, max float64) {
	rows, cols := f.Values.Dims()
	min = f.Values.At(0, 0)
	max = min
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := f.Values.At(r, c)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

// Peak returns the grid coordinates of the cell holding the maximum
// density value.
func (f *DensityField) Peak() (x, y float64) {
	rows, cols := f.Values.Dims()
	best := f.Values.At(0, 0)
	br, bc := 0, 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v := f.Values.At(r, c); v > best {
				best = v
				br, bc = r, c
			}
		}
	}
	return f.Xs[bc], f.Ys[br]
}
