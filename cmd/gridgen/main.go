package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/finwatch/sharkmap/internal/config"
	"github.com/finwatch/sharkmap/internal/geo"
	"github.com/finwatch/sharkmap/internal/grid"
	"github.com/finwatch/sharkmap/internal/predict"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	BBox       string `short:"b" long:"bbox" description:"Bounding box as minLng,minLat,maxLng,maxLat"`
	Region     string `short:"r" long:"region" description:"Named region from the configuration file"`
	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file (for --region)" default:"config.yaml"`
	Km         float64 `short:"k" long:"km" description:"Grid spacing in kilometers" default:"25"`
	Mode       string `short:"m" long:"mode" description:"Point value mode" choice:"random" choice:"heuristic" default:"random"`
	Seed       *int64 `short:"s" long:"seed" description:"Random seed for reproducible values (default: time-based)"`
	Format     string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Output     string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	bbox, km, estimator, err := resolveArea(&opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	gen := grid.NewGenerator(rand.NewSource(seed))

	var points []grid.Point
	var skipped int
	if opts.Mode == "heuristic" {
		points, skipped, err = gen.GenerateScored(bbox, km, estimator.Score)
	} else {
		points, skipped, err = gen.Generate(bbox, km)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fc := geo.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geo.GeoJSONFeature, 0, len(points)),
	}
	for _, p := range points {
		fc.Features = append(fc.Features, geo.NewPointFeature(p.Position[0], p.Position[1], p.Value))
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Generated %d points to %s (format: %s, skipped rows: %d)\n",
			len(fc.Features), opts.Output, opts.Format, skipped)
	} else {
		fmt.Println(string(outputData))
		if skipped > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %d rows near a pole were skipped\n", skipped)
		}
	}
}

// resolveArea picks the bounding box, spacing, and estimator from either
// the --bbox flag or a named region in the configuration file.
func resolveArea(opts *Options) (*geo.BoundingBox, float64, *predict.Estimator, error) {
	if opts.BBox != "" && opts.Region != "" {
		return nil, 0, nil, fmt.Errorf("--bbox and --region are mutually exclusive")
	}

	if opts.BBox != "" {
		bbox, err := geo.ParseBBox(opts.BBox)
		if err != nil {
			return nil, 0, nil, err
		}
		return &bbox, opts.Km, predict.DefaultEstimator(), nil
	}

	if opts.Region == "" {
		return nil, 0, nil, fmt.Errorf("either --bbox or --region is required")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("loading config for --region: %w", err)
	}

	for i := range cfg.Regions {
		region := &cfg.Regions[i]
		if region.Name != opts.Region {
			continue
		}

		km := opts.Km
		if km <= 0 {
			km = region.Km
		}
		return &region.BBox, km, cfg.Estimator(), nil
	}

	return nil, 0, nil, fmt.Errorf("region %q not found in %s", opts.Region, opts.ConfigFile)
}
