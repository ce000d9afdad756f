// Package dataset discovers and loads neuron-coordinate files. Each
// dataset is one delimited text file whose rows are x,y pairs in microns.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"neurodensity/internal/models"
)

// ListingError reports a dataset folder that could not be read.
type ListingError struct {
	Dir string
	Err error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing datasets in %s: %v", e.Dir, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// FormatError reports a malformed row in a dataset file.
type FormatError struct {
	File   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.File, e.Line, e.Reason)
}

// List scans dir for dataset files and returns one entry per regular
// file, sorted by display name so dataset order is stable across
// platforms. The display name is the file name with its final extension
// removed, or the raw name with spaces removed when stripSpaces is set.
// An empty folder yields an empty slice; a missing or unreadable folder
// yields a ListingError.
func List(dir string, stripSpaces bool) ([]models.Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ListingError{Dir: dir, Err: err}
	}

	datasets := make([]models.Dataset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		raw := entry.Name()
		name := strings.TrimSuffix(raw, filepath.Ext(raw))
		if stripSpaces {
			name = strings.ReplaceAll(raw, " ", "")
		}

		datasets = append(datasets, models.Dataset{
			Name:     name,
			Path:     filepath.Join(dir, raw),
			FileName: raw,
		})
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].Name < datasets[j].Name
	})

	return datasets, nil
}

// Load reads the x,y rows of one dataset file and returns the points
// with the x coordinate sign-flipped, mirroring every dataset across
// the y-axis so left/right orientation is consistent. Any malformed
// row aborts the load with a FormatError; rows are never silently
// skipped since a truncated point set would corrupt the density
// estimate downstream. Blank lines are tolerated only at the end of
// the file.
func Load(path string) ([]models.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer file.Close()

	var points []models.Point
	scanner := bufio.NewScanner(file)
	lineNo := 0
	blankAt := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			// Tolerated only at the end of the file
			if blankAt == 0 {
				blankAt = lineNo
			}
			continue
		}
		if blankAt != 0 {
			return nil, &FormatError{File: path, Line: blankAt, Reason: "blank line"}
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, &FormatError{
				File:   path,
				Line:   lineNo,
				Reason: fmt.Sprintf("expected 2 columns, got %d", len(fields)),
			}
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, &FormatError{File: path, Line: lineNo, Reason: fmt.Sprintf("bad x value %q", fields[0])}
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, &FormatError{File: path, Line: lineNo, Reason: fmt.Sprintf("bad y value %q", fields[1])}
		}

		// Mirror across the y-axis
		points = append(points, models.Point{X: -x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}

	return points, nil
}

// Mirror flips the x coordinate of every point. Applying it twice
// returns the original points.
func Mirror(points []models.Point) []models.Point {
	out := make([]models.Point, len(points))
	for i, p := range points {
		out[i] = models.Point{X: -p.X, Y: p.Y}
	}
	return out
}
