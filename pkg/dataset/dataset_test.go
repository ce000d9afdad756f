package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"neurodensity/internal/models"
)

// TestList verifies dataset discovery, display-name derivation and the
// explicit display-name ordering.
func TestList(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lister-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Created out of alphabetical order on purpose
	for _, name := range []string{"zebra finch.csv", "A.csv", "mid.txt"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("1,2\n"), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
	}
	// Subdirectories must be skipped
	if err := os.Mkdir(filepath.Join(tempDir, "nested"), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	datasets, err := List(tempDir, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(datasets) != 3 {
		t.Fatalf("Expected 3 datasets, got %d", len(datasets))
	}

	expectedNames := []string{"A", "mid", "zebra finch"}
	for i, want := range expectedNames {
		if datasets[i].Name != want {
			t.Errorf("Expected dataset %d name %q, got %q", i, want, datasets[i].Name)
		}
	}

	for _, ds := range datasets {
		if ds.Path != filepath.Join(tempDir, ds.FileName) {
			t.Errorf("Expected path %s, got %s", filepath.Join(tempDir, ds.FileName), ds.Path)
		}
	}
}

// TestListStripSpaces verifies the alternative display-name rule.
func TestListStripSpaces(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lister-strip-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	if err := os.WriteFile(filepath.Join(tempDir, "zebra finch.csv"), []byte("1,2\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	datasets, err := List(tempDir, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(datasets) != 1 {
		t.Fatalf("Expected 1 dataset, got %d", len(datasets))
	}

	// Spaces removed from the raw name, extension kept
	if datasets[0].Name != "zebrafinch.csv" {
		t.Errorf("Expected name %q, got %q", "zebrafinch.csv", datasets[0].Name)
	}
}

// TestListEmptyDir verifies that an empty folder yields zero datasets
// without an error.
func TestListEmptyDir(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lister-empty-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	datasets, err := List(tempDir, false)
	if err != nil {
		t.Fatalf("Expected no error for empty dir, got %v", err)
	}
	if len(datasets) != 0 {
		t.Errorf("Expected 0 datasets, got %d", len(datasets))
	}
}

// TestListMissingDir verifies the typed listing error.
func TestListMissingDir(t *testing.T) {
	_, err := List(filepath.Join(os.TempDir(), "does-not-exist-neurodensity"), false)
	if err == nil {
		t.Fatal("Expected error for missing dir, got nil")
	}

	var listErr *ListingError
	if !errors.As(err, &listErr) {
		t.Fatalf("Expected *ListingError, got %T", err)
	}
}

// TestLoadMirrorsX verifies that loading sign-flips x and that
// mirroring twice returns the original values.
func TestLoadMirrorsX(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "loader-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "points.csv")
	// Trailing blank lines are tolerated
	content := "-350.5,10\n-100,-200.25\n0,0\n\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	points, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []models.Point{
		{X: 350.5, Y: 10},
		{X: 100, Y: -200.25},
		{X: 0, Y: 0},
	}
	if len(points) != len(expected) {
		t.Fatalf("Expected %d points, got %d", len(expected), len(points))
	}
	for i, want := range expected {
		if points[i] != want {
			t.Errorf("Expected point %d to be %+v, got %+v", i, want, points[i])
		}
	}

	// Mirroring is an involution
	twice := Mirror(Mirror(points))
	for i := range points {
		if twice[i] != points[i] {
			t.Errorf("Expected mirror(mirror(p)) == p at %d, got %+v vs %+v", i, twice[i], points[i])
		}
	}
}

// TestLoadMalformedRows verifies that malformed rows abort the load
// with a FormatError naming the file and line.
func TestLoadMalformedRows(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "loader-bad-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cases := []struct {
		name    string
		content string
		line    int
	}{
		{"wrong column count", "1,2\n3,4,5\n", 2},
		{"non-numeric x", "abc,2\n", 1},
		{"non-numeric y", "1,2\n3,def\n", 2},
		{"interior blank line", "1,2\n\n3,4\n", 2},
	}

	for _, tc := range cases {
		path := filepath.Join(tempDir, "bad.csv")
		if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}

		_, err := Load(path)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}

		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("%s: expected *FormatError, got %T", tc.name, err)
			continue
		}
		if formatErr.File != path {
			t.Errorf("%s: expected file %s in error, got %s", tc.name, path, formatErr.File)
		}
		if formatErr.Line != tc.line {
			t.Errorf("%s: expected line %d in error, got %d", tc.name, tc.line, formatErr.Line)
		}
	}
}
