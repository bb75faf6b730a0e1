package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// BoundingBox is a rectangle in longitude/latitude space.
// A valid box has MinLng <= MaxLng and MinLat <= MaxLat.
type BoundingBox struct {
	MinLng float64 `yaml:"min_lng" json:"min_lng"`
	MinLat float64 `yaml:"min_lat" json:"min_lat"`
	MaxLng float64 `yaml:"max_lng" json:"max_lng"`
	MaxLat float64 `yaml:"max_lat" json:"max_lat"`
}

// Valid reports whether min does not exceed max on either axis.
func (b BoundingBox) Valid() bool {
	return b.MinLng <= b.MaxLng && b.MinLat <= b.MaxLat
}

// ParseBBox parses a "minLng,minLat,maxLng,maxLat" string, the order used
// by common map APIs. It does not check the min/max invariant; callers
// validate the box where they validate everything else.
func ParseBBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bbox must have 4 comma-separated values, got %d", len(parts))
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bbox component %d: %w", i+1, err)
		}
		vals[i] = v
	}

	return BoundingBox{
		MinLng: vals[0],
		MinLat: vals[1],
		MaxLng: vals[2],
		MaxLat: vals[3],
	}, nil
}
