// Package density implements 2-D Gaussian kernel density estimation
// over a fixed square grid.
package density

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"neurodensity/internal/models"
)

// InsufficientDataError reports a point set too degenerate for density
// estimation: fewer than two points, or zero spread on an axis.
type InsufficientDataError struct {
	Points int
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for density estimation (%d points): %s", e.Points, e.Reason)
}

// Estimate computes a Gaussian kernel density estimate for the given
// points, sampled on a bins x bins uniform grid spanning grid. The
// per-axis bandwidth follows Scott's rule (sigma * n^(-1/6) in two
// dimensions). Points outside the grid bounds still contribute to the
// density inside it; only the output extent is clipped. The result is
// deterministic for identical inputs.
func Estimate(points []models.Point, bins int, grid models.Bounds) (*models.DensityField, error) {
	if len(points) < 2 {
		return nil, &InsufficientDataError{Points: len(points), Reason: "need at least 2 points"}
	}
	if bins < 2 {
		return nil, fmt.Errorf("grid resolution must be at least 2, got %d", bins)
	}
	if !grid.Valid() {
		return nil, fmt.Errorf("invalid kde grid bounds: x [%g,%g] y [%g,%g]",
			grid.XMin, grid.XMax, grid.YMin, grid.YMax)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	sigmaX := stat.StdDev(xs, nil)
	sigmaY := stat.StdDev(ys, nil)
	if sigmaX == 0 || sigmaY == 0 {
		return nil, &InsufficientDataError{Points: len(points), Reason: "zero spread on one axis"}
	}

	n := float64(len(points))
	factor := math.Pow(n, -1.0/6.0)
	hx := sigmaX * factor
	hy := sigmaY * factor

	gx := make([]float64, bins)
	gy := make([]float64, bins)
	floats.Span(gx, grid.XMin, grid.XMax)
	floats.Span(gy, grid.YMin, grid.YMax)

	// The Gaussian product kernel separates per axis, so the full
	// bins x bins evaluation reduces to one matrix product of the
	// per-axis kernel matrices.
	kx := mat.NewDense(bins, len(points), nil)
	ky := mat.NewDense(bins, len(points), nil)
	for k := 0; k < len(points); k++ {
		for i := 0; i < bins; i++ {
			dx := (gx[i] - xs[k]) / hx
			kx.Set(i, k, math.Exp(-0.5*dx*dx))
			dy := (gy[i] - ys[k]) / hy
			ky.Set(i, k, math.Exp(-0.5*dy*dy))
		}
	}

	var z mat.Dense
	z.Mul(ky, kx.T())
	z.Scale(1/(n*2*math.Pi*hx*hy), &z)

	return &models.DensityField{Xs: gx, Ys: gy, Values: &z}, nil
}

// Levels returns count evenly spaced interior contour levels between
// the field's minimum and maximum density. Interior spacing avoids
// empty contours at the extremes.
func Levels(f *models.DensityField, count int) []float64 {
	min, max := f.MinMax()
	if count < 1 || max <= min {
		return nil
	}
	step := (max - min) / float64(count+1)
	levels := make([]float64, count)
	for i := range levels {
		levels[i] = min + step*float64(i+1)
	}
	return levels
}
