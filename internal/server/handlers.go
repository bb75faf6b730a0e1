// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finwatch/sharkmap/internal/geo"
	"github.com/finwatch/sharkmap/internal/grid"
)

// HandleRegions serves the JSON configuration of available regions.
func (s *ServerContext) HandleRegions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Config.Regions)
}

// HandlePoints serves a generated point grid as a GeoJSON FeatureCollection.
//
// Query parameters:
//
//	bbox   minLng,minLat,maxLng,maxLat (or region=<name> for a preset)
//	km     grid spacing in kilometers (defaults to the region's or global)
//	mode   "random" (default) or "heuristic" point values
//	seed   optional seed for reproducible random values
func (s *ServerContext) HandlePoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var bbox geo.BoundingBox
	km := s.Config.DefaultKm

	if name := q.Get("region"); name != "" {
		region, ok := s.RegionResolver[name]
		if !ok {
			http.Error(w, fmt.Sprintf("unknown region %q", name), http.StatusNotFound)
			return
		}
		bbox = region.BBox
		km = region.Km
	} else if raw := q.Get("bbox"); raw != "" {
		parsed, err := geo.ParseBBox(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bbox = parsed
	} else {
		http.Error(w, "either bbox or region is required", http.StatusBadRequest)
		return
	}

	if raw := q.Get("km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "km must be a number", http.StatusBadRequest)
			return
		}
		km = parsed
	}

	seed := time.Now().UnixNano()
	if raw := q.Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "seed must be an integer", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	gen := grid.NewGenerator(rand.NewSource(seed))

	var points []grid.Point
	var skipped int
	var err error

	switch mode := q.Get("mode"); mode {
	case "", "random":
		points, skipped, err = gen.Generate(&bbox, km)
	case "heuristic":
		points, skipped, err = gen.GenerateScored(&bbox, km, s.Estimator.Score)
	default:
		http.Error(w, fmt.Sprintf("unknown mode %q", mode), http.StatusBadRequest)
		return
	}

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, grid.ErrInvalidArguments) ||
			errors.Is(err, grid.ErrInvalidBoundingBox) ||
			errors.Is(err, grid.ErrLatStepNonPositive) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	if skipped > 0 {
		log.Warn().
			Int("skipped_rows", skipped).
			Float64("km", km).
			Msg("Grid rows near a pole were skipped, coverage is sparser than requested")
	}

	fc := geo.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geo.GeoJSONFeature, 0, len(points)),
	}
	for _, p := range points {
		fc.Features = append(fc.Features, geo.NewPointFeature(p.Position[0], p.Position[1], p.Value))
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_ = json.NewEncoder(w).Encode(fc)
}

// HandleProbability serves the heuristic shark likelihood for a coordinate.
func (s *ServerContext) HandleProbability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(q.Get("lng"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "lat and lng must be numbers", http.StatusBadRequest)
		return
	}

	p, err := s.Estimator.Probability(lat, lng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]float64{
		"lat":         lat,
		"lng":         lng,
		"probability": p,
	})
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.svg" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}
