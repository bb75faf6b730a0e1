package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingBox_Valid(t *testing.T) {
	assert.True(t, BoundingBox{MinLng: -1, MinLat: -1, MaxLng: 1, MaxLat: 1}.Valid())
	assert.True(t, BoundingBox{}.Valid(), "degenerate zero box is still ordered")

	assert.False(t, BoundingBox{MinLng: 2, MinLat: 0, MaxLng: 1, MaxLat: 1}.Valid())
	assert.False(t, BoundingBox{MinLng: 0, MinLat: 2, MaxLng: 1, MaxLat: 1}.Valid())
}

func TestParseBBox(t *testing.T) {
	bbox, err := ParseBBox("150.0,-32.0,156.0,-22.0")
	require.NoError(t, err)
	assert.Equal(t, BoundingBox{MinLng: 150, MinLat: -32, MaxLng: 156, MaxLat: -22}, bbox)

	// Spaces after commas are tolerated.
	bbox, err = ParseBBox("-83.5, 24.0, -79.5, 30.5")
	require.NoError(t, err)
	assert.Equal(t, -83.5, bbox.MinLng)
	assert.Equal(t, 30.5, bbox.MaxLat)
}

func TestParseBBox_Errors(t *testing.T) {
	_, err := ParseBBox("1,2,3")
	assert.Error(t, err)

	_, err = ParseBBox("1,2,3,4,5")
	assert.Error(t, err)

	_, err = ParseBBox("a,2,3,4")
	assert.Error(t, err)

	_, err = ParseBBox("")
	assert.Error(t, err)
}

func TestParseBBox_DoesNotValidateOrder(t *testing.T) {
	// Parsing and validation are separate steps.
	bbox, err := ParseBBox("1,0,-1,1")
	require.NoError(t, err)
	assert.False(t, bbox.Valid())
}
