// Package grid generates evenly spaced point grids over bounding boxes.
// Points are approximate: the spacing uses a constant km-per-degree latitude
// conversion and a cosine correction for longitude, good enough for
// scattering markers on a map.
package grid

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/finwatch/sharkmap/internal/geo"
)

// Validation errors returned by Generate before any points are produced.
var (
	ErrInvalidArguments   = errors.New("invalid arguments")
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
	ErrLatStepNonPositive = errors.New("latitude step is non-positive")
)

// Point is a single grid cell marker. Position is [longitude, latitude],
// matching the GeoJSON coordinate order.
type Point struct {
	Position [2]float64 `json:"position"`
	Value    int        `json:"value"`
}

// Scorer assigns a value in [0, 100] to a coordinate. Used by
// GenerateScored to replace the random value with a computed one.
type Scorer func(lat, lng float64) (int, error)

// Generator produces point grids. The random source is injected so tests
// can assert exact value sequences; it is not safe for concurrent use of
// a single Generator, but independent Generators are.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing values from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// GeneratePoints builds a grid with values from a time-seeded source.
// Positions are reproducible for identical inputs; values are not.
func GeneratePoints(bbox *geo.BoundingBox, km float64) ([]Point, error) {
	g := NewGenerator(rand.NewSource(time.Now().UnixNano()))
	points, _, err := g.Generate(bbox, km)
	return points, err
}

// Generate emits one point per grid cell covering bbox, spaced roughly km
// kilometers apart, in row-major order (latitude rows outer, longitude
// columns inner). The last row is clamped to MaxLat and the last column of
// each row to MaxLng, so the box edges are always covered. Each point gets
// a random value in [0, 100].
//
// Rows whose latitude sits on a pole have no meaningful longitude step and
// are skipped entirely; the second return value is the number of rows
// skipped this way, so callers can warn about sparser coverage.
func (g *Generator) Generate(bbox *geo.BoundingBox, km float64) ([]Point, int, error) {
	return g.generate(bbox, km, nil)
}

// GenerateScored is Generate with point values computed by score instead
// of drawn from the random source.
func (g *Generator) GenerateScored(bbox *geo.BoundingBox, km float64, score Scorer) ([]Point, int, error) {
	if score == nil {
		return nil, 0, ErrInvalidArguments
	}
	return g.generate(bbox, km, score)
}

func (g *Generator) generate(bbox *geo.BoundingBox, km float64, score Scorer) ([]Point, int, error) {
	if bbox == nil || math.IsNaN(km) || km <= 0 {
		return nil, 0, ErrInvalidArguments
	}
	if !bbox.Valid() {
		return nil, 0, ErrInvalidBoundingBox
	}

	latStep := geo.KmToLatDegrees(km)
	if latStep <= 0 {
		// Unreachable while KmToLatDegrees divides by a positive constant,
		// but the loop below must never run with a non-positive step.
		return nil, 0, ErrLatStepNonPositive
	}

	rowCount := int(math.Ceil((bbox.MaxLat - bbox.MinLat) / latStep))
	points := make([]Point, 0, rowCount+1)
	skipped := 0

	for i := 0; i <= rowCount; i++ {
		lat := bbox.MinLat + float64(i)*latStep
		if lat > bbox.MaxLat {
			lat = bbox.MaxLat
		}

		lngStep := geo.KmToLngDegrees(km, lat)
		if lngStep <= 0 {
			skipped++
			continue
		}

		colCount := int(math.Ceil((bbox.MaxLng - bbox.MinLng) / lngStep))
		for j := 0; j <= colCount; j++ {
			lng := bbox.MinLng + float64(j)*lngStep
			if lng > bbox.MaxLng {
				lng = bbox.MaxLng
			}

			value := 0
			if score != nil {
				v, err := score(lat, lng)
				if err != nil {
					return nil, 0, err
				}
				value = v
			} else {
				value = int(math.Round(g.rng.Float64() * 100.0))
			}

			points = append(points, Point{
				Position: [2]float64{lng, lat},
				Value:    value,
			})
		}
	}

	return points, skipped, nil
}
