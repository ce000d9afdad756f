// Package render draws datasets onto gonum plots: the shared anatomical
// outline, scatter points, density contours, and standardized axes. It
// also exports composed figures as multi-panel PDF files.
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"neurodensity/internal/models"
	"neurodensity/pkg/outline"
)

// OutlineFill is the fixed near-white fill for the anatomical outline.
var OutlineFill = color.RGBA{R: 250, G: 248, B: 245, A: 255}

// uniformPalette repeats one color for every contour level so all
// lines of a single contour call share a stroke color.
type uniformPalette struct {
	colors []color.Color
}

func (p uniformPalette) Colors() []color.Color { return p.colors }

// AddOutline draws the outline shape onto p as a filled polygon with a
// solid black stroke. The shape must already be rescaled to the plot
// limits.
func AddOutline(p *plot.Plot, sh outline.Shape) error {
	xys := make(plotter.XYs, len(sh.X))
	for i := range sh.X {
		xys[i].X = sh.X[i]
		xys[i].Y = sh.Y[i]
	}

	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return fmt.Errorf("creating outline polygon: %w", err)
	}
	poly.Color = OutlineFill
	poly.LineStyle.Color = color.Black
	poly.LineStyle.Width = vg.Points(1)

	p.Add(poly)
	return nil
}

// AddScatter draws the dataset's points onto p in the given color.
func AddScatter(p *plot.Plot, points []models.Point, c color.Color) error {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("creating scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(scatter)
	return nil
}

// AddContours draws unfilled contour lines of the density field onto p
// at the given levels, all in one uniform stroke color.
func AddContours(p *plot.Plot, f *models.DensityField, levels []float64, c color.Color) error {
	if len(levels) == 0 {
		return fmt.Errorf("no contour levels to draw")
	}

	pal := uniformPalette{colors: make([]color.Color, len(levels))}
	for i := range pal.colors {
		pal.colors[i] = c
	}

	contour := plotter.NewContour(f, levels, pal)
	p.Add(contour)
	return nil
}

// StandardizeAxes applies the shared axis convention to p: limits set
// exactly to lims, micrometer labels, and three ticks per axis. The
// middle tick is the rounded mean of the bounds when both are
// non-negative, and zero otherwise. Must be called after the last
// plotter is added: Plot.Add widens the axis ranges to each plotter's
// data range, so points or grids beyond lims would otherwise stretch
// the exported frame.
func StandardizeAxes(p *plot.Plot, lims models.Bounds) {
	p.X.Min = lims.XMin
	p.X.Max = lims.XMax
	p.Y.Min = lims.YMin
	p.Y.Max = lims.YMax

	p.X.Label.Text = "X (µm)"
	p.Y.Label.Text = "Y (µm)"

	p.X.Tick.Marker = plot.ConstantTicks(axisTicks(lims.XMin, lims.XMax))
	p.Y.Tick.Marker = plot.ConstantTicks(axisTicks(lims.YMin, lims.YMax))
}

// axisTicks returns the three standard ticks for one axis.
func axisTicks(lo, hi float64) []plot.Tick {
	mid := 0.0
	if lo >= 0 {
		mid = math.Round((lo + hi) / 2)
	}
	values := []float64{lo, mid, hi}

	ticks := make([]plot.Tick, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: fmt.Sprintf("%g", v)}
	}
	return ticks
}

// SubplotSize returns a canvas size for one subplot with the axes at
// equal scale: the height is fixed and the width follows the data
// aspect ratio of the limits.
func SubplotSize(lims models.Bounds) (w, h vg.Length) {
	h = 4 * vg.Inch
	w = vg.Length(float64(h) * lims.Width() / lims.Height())
	return w, h
}

// Palette returns n visually distinct colors by rotating the hue at
// fixed saturation and lightness. The rotation depends only on n, so
// the same dataset index maps to the same color in every figure.
func Palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// SaveGrid exports a rectangular grid of plots as a single PDF file.
// Nil entries leave their tile empty, which keeps uneven matrix
// layouts (e.g. five datasets in a two-column grid) well-formed.
func SaveGrid(plots [][]*plot.Plot, tileW, tileH vg.Length, path string) error {
	rows := len(plots)
	if rows == 0 || len(plots[0]) == 0 {
		return fmt.Errorf("no plots to save")
	}
	cols := len(plots[0])

	canvas := vgpdf.New(tileW*vg.Length(cols), tileH*vg.Length(rows))
	dc := draw.New(canvas)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j, p := range plots[i] {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating figure file: %w", err)
	}
	if _, err := canvas.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("writing figure file: %w", err)
	}
	return file.Close()
}
