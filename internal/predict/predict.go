// Package predict implements a heuristic shark-likelihood estimator.
// It favors tropical and temperate waters, boosts known global hotspots,
// and dampens scores over large continental interiors. It is a heuristic
// for coloring a map, not a biological model.
package predict

import (
	"errors"
	"math"

	"github.com/finwatch/sharkmap/internal/geo"
)

// ErrNotFinite is returned when a coordinate is NaN or infinite.
var ErrNotFinite = errors.New("latitude and longitude must be finite numbers")

// Hotspot is a known area of elevated shark activity. Influence falls off
// as a gaussian of distance over RadiusKm.
type Hotspot struct {
	Name     string  `yaml:"name" json:"name"`
	Lat      float64 `yaml:"lat" json:"lat"`
	Lng      float64 `yaml:"lng" json:"lng"`
	Weight   float64 `yaml:"weight" json:"weight"`
	RadiusKm float64 `yaml:"radius_km" json:"radius_km"`
}

// LandRegion is a rough bounding box over a continental interior, used to
// pull predictions down over land.
type LandRegion struct {
	LatMin  float64 `yaml:"lat_min" json:"lat_min"`
	LatMax  float64 `yaml:"lat_max" json:"lat_max"`
	LngMin  float64 `yaml:"lng_min" json:"lng_min"`
	LngMax  float64 `yaml:"lng_max" json:"lng_max"`
	Penalty float64 `yaml:"penalty" json:"penalty"`
}

// DefaultHotspots lists well-known global shark activity areas.
var DefaultHotspots = []Hotspot{
	{Name: "Eastern Australia", Lat: -25.5, Lng: 153.0, Weight: 0.22, RadiusKm: 750.0},
	{Name: "South Africa", Lat: -34.0, Lng: 18.5, Weight: 0.18, RadiusKm: 550.0},
	{Name: "Hawaii", Lat: 20.9, Lng: -157.0, Weight: 0.14, RadiusKm: 450.0},
	{Name: "Florida", Lat: 27.5, Lng: -80.0, Weight: 0.16, RadiusKm: 500.0},
	{Name: "California", Lat: 34.0, Lng: -119.5, Weight: 0.12, RadiusKm: 500.0},
	{Name: "Brazil", Lat: -22.9, Lng: -43.2, Weight: 0.10, RadiusKm: 420.0},
	{Name: "Red Sea", Lat: 20.0, Lng: 38.5, Weight: 0.10, RadiusKm: 350.0},
}

// DefaultLandRegions lists rough continental interiors.
var DefaultLandRegions = []LandRegion{
	{LatMin: 25.0, LatMax: 50.0, LngMin: -110.0, LngMax: -90.0, Penalty: 0.35}, // Central USA
	{LatMin: -20.0, LatMax: 5.0, LngMin: -70.0, LngMax: -50.0, Penalty: 0.40},  // Amazon basin
	{LatMin: -10.0, LatMax: 20.0, LngMin: 10.0, LngMax: 35.0, Penalty: 0.45},   // Central Africa
	{LatMin: 30.0, LatMax: 60.0, LngMin: 40.0, LngMax: 120.0, Penalty: 0.50},   // Eurasian interior
	{LatMin: -35.0, LatMax: -15.0, LngMin: 120.0, LngMax: 135.0, Penalty: 0.40}, // Australian interior
}

// Estimator scores coordinates against a set of hotspots and land regions.
// The zero value scores with empty tables; use DefaultEstimator for the
// built-in ones.
type Estimator struct {
	Hotspots    []Hotspot
	LandRegions []LandRegion
}

// DefaultEstimator returns an Estimator with the built-in hotspot and
// land-region tables.
func DefaultEstimator() *Estimator {
	return &Estimator{
		Hotspots:    DefaultHotspots,
		LandRegions: DefaultLandRegions,
	}
}

// Probability estimates the likelihood of shark presence at the given
// coordinates as a value in [0, 1], rounded to three decimals. Latitude is
// clamped to [-90, 90] and longitude wrapped to [-180, 180); only
// non-finite inputs are rejected.
func (e *Estimator) Probability(lat, lng float64) (float64, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0, ErrNotFinite
	}

	lat = clamp(lat, -90.0, 90.0)
	lng = geo.WrapLongitude(lng)

	const base = 0.05
	p := base +
		0.35*latFactor(lat) +
		0.20*currentFactor(lat, lng) +
		e.hotspotContribution(lat, lng) -
		e.landPenalty(lat, lng)

	return math.Round(clamp(p, 0.0, 1.0)*1000.0) / 1000.0, nil
}

// Score adapts Probability to the [0, 100] integer scale used by grid
// point values.
func (e *Estimator) Score(lat, lng float64) (int, error) {
	p, err := e.Probability(lat, lng)
	if err != nil {
		return 0, err
	}
	return int(math.Round(p * 100.0)), nil
}

// latFactor favors latitudes near the tropics and temperate coastal waters.
func latFactor(lat float64) float64 {
	latRad := lat * math.Pi / 180.0

	// Cosine squared declines smoothly from equator towards poles.
	equatorialBias := math.Cos(latRad) * math.Cos(latRad)
	// Additional boost inside the tropics (|lat| <= 30).
	tropicSpan := clamp(1.0-math.Abs(lat)/30.0, 0.0, 1.0)
	// Mild penalty for extreme poles.
	polarPenalty := clamp((math.Abs(lat)-50.0)/40.0, 0.0, 1.0)

	return clamp(0.6*equatorialBias+0.4*tropicSpan-0.3*polarPenalty, 0.0, 1.0)
}

// currentFactor emulates warm currents and productive waters with
// combined sinusoidal patterns.
func currentFactor(lat, lng float64) float64 {
	lngRad := geo.WrapLongitude(lng) * math.Pi / 180.0
	latRad := lat * math.Pi / 180.0

	warmCurrent := 0.5 * (1.0 + math.Sin(lngRad*1.5)*math.Cos(latRad))
	upwelling := 0.5 * (1.0 + math.Cos(lngRad*0.7+math.Sin(latRad)))

	return clamp(0.6*warmCurrent+0.4*upwelling, 0.0, 1.0)
}

func (e *Estimator) hotspotContribution(lat, lng float64) float64 {
	score := 0.0
	for _, spot := range e.Hotspots {
		distance := geo.HaversineKm(lat, lng, spot.Lat, spot.Lng)
		ratio := distance / spot.RadiusKm
		score += spot.Weight * math.Exp(-ratio*ratio)
	}
	return score
}

func (e *Estimator) landPenalty(lat, lng float64) float64 {
	penalty := 0.0
	for _, region := range e.LandRegions {
		if region.LatMin <= lat && lat <= region.LatMax &&
			region.LngMin <= lng && lng <= region.LngMax {
			penalty += region.Penalty
		}
	}
	return penalty
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
