package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"neurodensity/internal/models"
	"neurodensity/pkg/config"
	"neurodensity/pkg/figures"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "", "Optional YAML configuration file")
	inputDir := flag.String("input", "", "Directory containing dataset files (default: text)")
	outputDir := flag.String("output", "", "Directory receiving exported figures (default: plots)")
	xGrid := flag.String("xgrid", "", "KDE grid x bounds as \"min,max\" (default: 0,700)")
	yGrid := flag.String("ygrid", "", "KDE grid y bounds as \"min,max\" (default: -500,450)")
	xLims := flag.String("xlims", "", "Plot x limits as \"min,max\" (default: 0,700)")
	yLims := flag.String("ylims", "", "Plot y limits as \"min,max\" (default: -500,450)")
	stripSpaces := flag.Bool("strip-spaces", false, "Derive display names by removing spaces instead of trimming the extension")
	htmlReport := flag.Bool("html", false, "Also export an interactive HTML scatter report")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override config file values when given
	if *inputDir != "" {
		cfg.Input.Dir = *inputDir
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *stripSpaces {
		cfg.Input.StripSpaces = true
	}
	if *htmlReport {
		cfg.Plot.HTMLReport = true
	}
	if err := applyRange(*xGrid, &cfg.Density.Grid.XMin, &cfg.Density.Grid.XMax); err != nil {
		log.Fatalf("Invalid -xgrid: %v", err)
	}
	if err := applyRange(*yGrid, &cfg.Density.Grid.YMin, &cfg.Density.Grid.YMax); err != nil {
		log.Fatalf("Invalid -ygrid: %v", err)
	}
	if err := applyRange(*xLims, &cfg.Plot.Limits.XMin, &cfg.Plot.Limits.XMax); err != nil {
		log.Fatalf("Invalid -xlims: %v", err)
	}
	if err := applyRange(*yLims, &cfg.Plot.Limits.YMin, &cfg.Plot.Limits.YMax); err != nil {
		log.Fatalf("Invalid -ylims: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("NEURON DENSITY MAPPING")
	fmt.Println("2D kernel density figures over an anatomical outline")
	fmt.Println("================================")
	fmt.Printf("Input directory:  %s\n", cfg.Input.Dir)
	fmt.Printf("Output directory: %s\n", cfg.Output.Dir)
	printBounds("KDE grid", cfg.Density.Grid)
	printBounds("Plot limits", cfg.Plot.Limits)

	startTime := time.Now()
	result, err := figures.New(cfg).Run()
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Printf("\nCompleted in %.2f seconds\n", time.Since(startTime).Seconds())
	fmt.Printf("Datasets found: %d\n", len(result.Datasets))
	if len(result.Skipped) > 0 {
		fmt.Printf("Datasets skipped (too few points): %s\n", strings.Join(result.Skipped, ", "))
	}
	if len(result.Exported) == 0 {
		fmt.Println("Nothing exported")
		return
	}
	fmt.Println("Exported figures:")
	for _, path := range result.Exported {
		fmt.Printf("- %s\n", path)
	}
}

// applyRange parses a "min,max" flag value into the two bound fields.
// An empty value leaves the configured bounds untouched.
func applyRange(value string, min, max *float64) error {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return fmt.Errorf("expected \"min,max\", got %q", value)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("bad minimum %q", parts[0])
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("bad maximum %q", parts[1])
	}
	if lo >= hi {
		return fmt.Errorf("minimum %g is not below maximum %g", lo, hi)
	}

	*min = lo
	*max = hi
	return nil
}

func printBounds(label string, b models.Bounds) {
	fmt.Printf("%s: x [%g, %g] µm, y [%g, %g] µm\n", label, b.XMin, b.XMax, b.YMin, b.YMax)
}
