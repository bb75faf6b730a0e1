package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwatch/sharkmap/internal/predict"
)

const sampleConfig = `
attribution: "test data"
default_km: 30

regions:
  - name: hawaii
    index: 1
    aliases: [hi]
    bbox: { min_lng: -160.5, min_lat: 18.5, max_lng: -154.5, max_lat: 22.5 }
    km: 15
  - name: florida
    bbox: { min_lng: -83.5, min_lat: 24.0, max_lng: -79.5, max_lat: 30.5 }
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "test data", cfg.Attribution)
	assert.Equal(t, 30.0, cfg.DefaultKm)
	require.Len(t, cfg.Regions, 2)

	hawaii := cfg.Regions[0]
	assert.Equal(t, "hawaii", hawaii.Name)
	assert.Equal(t, []string{"hi"}, hawaii.Aliases)
	assert.Equal(t, 15.0, hawaii.Km)
	assert.Equal(t, -160.5, hawaii.BBox.MinLng)
	assert.Equal(t, 22.5, hawaii.BBox.MaxLat)
	require.NotNil(t, hawaii.Index)
	assert.Equal(t, 1, *hawaii.Index)

	florida := cfg.Regions[1]
	assert.Nil(t, florida.Index)
	assert.Zero(t, florida.Km, "spacing fallback happens at context init, not load")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "regions: [unclosed"))
	assert.Error(t, err)
}

func TestEstimator_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	e := cfg.Estimator()
	assert.Equal(t, predict.DefaultHotspots, e.Hotspots)
	assert.Equal(t, predict.DefaultLandRegions, e.LandRegions)
}

func TestEstimator_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig+`
hotspots:
  - { name: "Reunion Island", lat: -21.1, lng: 55.5, weight: 0.15, radius_km: 300 }
`))
	require.NoError(t, err)

	e := cfg.Estimator()
	require.Len(t, e.Hotspots, 1)
	assert.Equal(t, "Reunion Island", e.Hotspots[0].Name)
	assert.Equal(t, predict.DefaultLandRegions, e.LandRegions, "unset sections keep defaults")
}
