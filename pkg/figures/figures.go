// Package figures composes and exports the three output artifacts of a
// run: one scatter-plus-contour figure per dataset, a matrix of all
// per-dataset contours, and a cross-dataset summary overlay.
package figures

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"

	"neurodensity/internal/models"
	"neurodensity/pkg/config"
	"neurodensity/pkg/dataset"
	"neurodensity/pkg/density"
	"neurodensity/pkg/outline"
	"neurodensity/pkg/render"
	"neurodensity/pkg/report"
)

// WriteError reports a figure or report file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Result holds the loaded dataset table and the files a run exported.
type Result struct {
	// Datasets is the loaded dataset table, in display-name order
	Datasets []models.Dataset

	// Skipped lists datasets that failed density estimation and were
	// left out of every figure
	Skipped []string

	// Exported lists the files written, in export order
	Exported []string
}

// Orchestrator sequences listing, loading, estimation and rendering
// for one run. The matrix and summary figures are explicit accumulators
// updated across dataset iterations; the per-dataset figure is rebuilt
// fresh each iteration.
type Orchestrator struct {
	cfg *config.Config
}

// New creates an orchestrator for the given configuration.
func New(cfg *config.Config) *Orchestrator {
	return &Orchestrator{cfg: cfg}
}

// Run executes the pipeline. With zero datasets it terminates cleanly
// without exporting anything. A dataset whose point set is too
// degenerate for density estimation is skipped with a warning; every
// other failure aborts the run.
func (o *Orchestrator) Run() (*Result, error) {
	cfg := o.cfg
	result := &Result{}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	datasets, err := dataset.List(cfg.Input.Dir, cfg.Input.StripSpaces)
	if err != nil {
		return nil, err
	}
	result.Datasets = datasets
	if len(datasets) == 0 {
		if cfg.Output.Verbose {
			fmt.Printf("No datasets found in %s, nothing to plot\n", cfg.Input.Dir)
		}
		return result, nil
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return nil, &WriteError{Path: cfg.Output.Dir, Err: err}
	}

	shape, err := outline.Load()
	if err != nil {
		return nil, err
	}
	// Rescaled exactly once; every subplot draws this same shape.
	shape = shape.Rescale(cfg.Plot.Limits)

	lims := cfg.Plot.Limits
	tileW, tileH := render.SubplotSize(lims)
	colors := render.Palette(len(datasets))

	// Summary accumulators span the whole loop. The outline is added
	// here once so overlapping strokes are not drawn per dataset; axes
	// are standardized after the loop, once the last plotter is in.
	summaryScatter := plot.New()
	summaryScatter.Title.Text = "All datasets"
	if err := render.AddOutline(summaryScatter, shape); err != nil {
		return nil, err
	}

	summaryContour := plot.New()
	summaryContour.Title.Text = "Density contours"
	if err := render.AddOutline(summaryContour, shape); err != nil {
		return nil, err
	}

	var matrixPlots []*plot.Plot

	rendered := 0
	for i := range datasets {
		ds := &datasets[i]

		points, err := dataset.Load(ds.Path)
		if err != nil {
			return result, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		ds.Points = points

		field, err := density.Estimate(points, cfg.Density.Bins, cfg.Density.Grid)
		if err != nil {
			var insufficient *density.InsufficientDataError
			if errors.As(err, &insufficient) {
				log.Printf("skipping dataset %s: %v", ds.Name, err)
				result.Skipped = append(result.Skipped, ds.Name)
				continue
			}
			return result, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		levels := density.Levels(field, cfg.Plot.Levels)

		// Per-dataset figure, exported immediately.
		perDataset, err := o.buildDatasetFigure(ds, field, levels, shape, lims)
		if err != nil {
			return result, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		path := filepath.Join(cfg.Output.Dir, ds.Name+".pdf")
		if err := render.SaveGrid(perDataset, tileW, tileH, path); err != nil {
			return result, &WriteError{Path: path, Err: err}
		}
		result.Exported = append(result.Exported, path)

		// Matrix subplot, in this dataset's palette color.
		mp := plot.New()
		mp.Title.Text = ds.Name
		if err := render.AddOutline(mp, shape); err != nil {
			return result, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		if err := render.AddContours(mp, field, levels, colors[i]); err != nil {
			return result, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		render.StandardizeAxes(mp, lims)
		matrixPlots = append(matrixPlots, mp)

		// Summary accumulators, same color per dataset in both panels.
		if err := render.AddScatter(summaryScatter, points, colors[i]); err != nil {
			return result, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		if err := render.AddContours(summaryContour, field, levels, colors[i]); err != nil {
			return result, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}

		rendered++
		if cfg.Output.Verbose {
			px, py := field.Peak()
			fmt.Printf("Rendered %s: %d points, density peak near (%.0f, %.0f) µm\n",
				ds.Name, len(points), px, py)
		}
	}

	if rendered == 0 {
		if cfg.Output.Verbose {
			fmt.Println("Every dataset was skipped, no combined figures exported")
		}
		return result, nil
	}

	// The matrix figure only makes sense as a comparison; with a single
	// dataset it is discarded unexported.
	if rendered > 1 {
		path := filepath.Join(cfg.Output.Dir, "all-contours.pdf")
		if err := render.SaveGrid(matrixGrid(matrixPlots), tileW, tileH, path); err != nil {
			return result, &WriteError{Path: path, Err: err}
		}
		result.Exported = append(result.Exported, path)
	}

	render.StandardizeAxes(summaryScatter, lims)
	render.StandardizeAxes(summaryContour, lims)
	path := filepath.Join(cfg.Output.Dir, "summary.pdf")
	if err := render.SaveGrid([][]*plot.Plot{{summaryScatter, summaryContour}}, tileW, tileH, path); err != nil {
		return result, &WriteError{Path: path, Err: err}
	}
	result.Exported = append(result.Exported, path)

	if cfg.Plot.HTMLReport {
		path := filepath.Join(cfg.Output.Dir, "summary.html")
		file, err := os.Create(path)
		if err != nil {
			return result, &WriteError{Path: path, Err: err}
		}
		if err := report.WriteScatterHTML(file, datasets, lims); err != nil {
			file.Close()
			return result, &WriteError{Path: path, Err: err}
		}
		if err := file.Close(); err != nil {
			return result, &WriteError{Path: path, Err: err}
		}
		result.Exported = append(result.Exported, path)
	}

	return result, nil
}

// buildDatasetFigure composes the two panels of a per-dataset figure:
// raw scatter with outline, and density contours with outline.
func (o *Orchestrator) buildDatasetFigure(ds *models.Dataset, field *models.DensityField, levels []float64, shape outline.Shape, lims models.Bounds) ([][]*plot.Plot, error) {
	scatterPlot := plot.New()
	scatterPlot.Title.Text = ds.Name
	if err := render.AddOutline(scatterPlot, shape); err != nil {
		return nil, err
	}
	if err := render.AddScatter(scatterPlot, ds.Points, color.Black); err != nil {
		return nil, err
	}
	render.StandardizeAxes(scatterPlot, lims)

	contourPlot := plot.New()
	contourPlot.Title.Text = ds.Name + " density"
	if err := render.AddOutline(contourPlot, shape); err != nil {
		return nil, err
	}
	if err := render.AddContours(contourPlot, field, levels, color.Black); err != nil {
		return nil, err
	}
	render.StandardizeAxes(contourPlot, lims)

	return [][]*plot.Plot{{scatterPlot, contourPlot}}, nil
}

// matrixGrid arranges the per-dataset contour subplots into two columns
// and ceil(n/2) rows, padding the final row with a nil tile when n is odd.
func matrixGrid(plots []*plot.Plot) [][]*plot.Plot {
	rows := (len(plots) + 1) / 2
	grid := make([][]*plot.Plot, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]*plot.Plot, 2)
		for c := 0; c < 2; c++ {
			idx := r*2 + c
			if idx < len(plots) {
				grid[r][c] = plots[idx]
			}
		}
	}
	return grid
}
