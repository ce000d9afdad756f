// Package outline provides the fixed anatomical cross-section polygon
// drawn behind every scatter and contour plot for spatial reference.
// The vertex data is embedded at build time and rescaled once per run
// to the configured plot limits.
package outline

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"neurodensity/internal/models"
)

//go:embed assets/outline.yaml
var outlineAsset []byte

// Shape is a closed polygon given as parallel vertex coordinate slices.
type Shape struct {
	X []float64
	Y []float64
}

type assetFile struct {
	Vertices [][2]float64 `yaml:"vertices"`
}

// Load parses the embedded outline asset. Vertices are in the
// normalized unit range and must be rescaled before drawing.
func Load() (Shape, error) {
	var asset assetFile
	if err := yaml.Unmarshal(outlineAsset, &asset); err != nil {
		return Shape{}, fmt.Errorf("parsing outline asset: %w", err)
	}
	if len(asset.Vertices) < 3 {
		return Shape{}, fmt.Errorf("outline asset has %d vertices, need at least 3", len(asset.Vertices))
	}

	sh := Shape{
		X: make([]float64, len(asset.Vertices)),
		Y: make([]float64, len(asset.Vertices)),
	}
	for i, v := range asset.Vertices {
		sh.X[i] = v[0]
		sh.Y[i] = v[1]
	}
	return sh, nil
}

// Bounds returns the bounding box of the shape.
func (s Shape) Bounds() models.Bounds {
	b := models.Bounds{XMin: s.X[0], XMax: s.X[0], YMin: s.Y[0], YMax: s.Y[0]}
	for i := range s.X {
		if s.X[i] < b.XMin {
			b.XMin = s.X[i]
		}
		if s.X[i] > b.XMax {
			b.XMax = s.X[i]
		}
		if s.Y[i] < b.YMin {
			b.YMin = s.Y[i]
		}
		if s.Y[i] > b.YMax {
			b.YMax = s.Y[i]
		}
	}
	return b
}

// Rescale maps the shape affinely so its bounding box equals b exactly,
// with the minimum vertex translated to (b.XMin, b.YMin). Called once
// per run so every subplot draws an identical outline.
func (s Shape) Rescale(b models.Bounds) Shape {
	src := s.Bounds()
	sx := b.Width() / src.Width()
	sy := b.Height() / src.Height()

	out := Shape{
		X: make([]float64, len(s.X)),
		Y: make([]float64, len(s.Y)),
	}
	for i := range s.X {
		out.X[i] = b.XMin + (s.X[i]-src.XMin)*sx
		out.Y[i] = b.YMin + (s.Y[i]-src.YMin)*sy
	}
	return out
}
