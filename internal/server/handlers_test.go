package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwatch/sharkmap/internal/config"
	"github.com/finwatch/sharkmap/internal/geo"
)

func testContext(t *testing.T) *ServerContext {
	t.Helper()

	idx0, idx1 := 0, 1
	cfg := &config.Config{
		DefaultKm: 25,
		Regions: []config.Region{
			{
				Name:    "florida",
				Index:   &idx1,
				Aliases: []string{"fl"},
				BBox:    geo.BoundingBox{MinLng: -83.5, MinLat: 24.0, MaxLng: -79.5, MaxLat: 30.5},
			},
			{
				Name:  "hawaii",
				Index: &idx0,
				BBox:  geo.BoundingBox{MinLng: -160.5, MinLat: 18.5, MaxLng: -154.5, MaxLat: 22.5},
				Km:    15,
			},
			{
				Name: "broken",
				BBox: geo.BoundingBox{MinLng: 1, MinLat: 0, MaxLng: -1, MaxLat: 1},
			},
		},
	}

	return NewServerContext(cfg)
}

func doRequest(ctx *ServerContext, handler func(http.ResponseWriter, *http.Request), url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestNewServerContext_FiltersAndSorts(t *testing.T) {
	ctx := testContext(t)

	require.Len(t, ctx.Config.Regions, 2, "region with inverted bbox must be dropped")
	assert.Equal(t, "hawaii", ctx.Config.Regions[0].Name, "sorted by index")
	assert.Equal(t, "florida", ctx.Config.Regions[1].Name)

	assert.Equal(t, 25.0, ctx.Config.Regions[1].Km, "default spacing applied")
	assert.Equal(t, 15.0, ctx.Config.Regions[0].Km, "explicit spacing kept")

	assert.Contains(t, ctx.RegionResolver, "fl")
	assert.Same(t, ctx.RegionResolver["fl"], ctx.RegionResolver["florida"])
	assert.NotContains(t, ctx.RegionResolver, "broken")
}

func TestHandleRegions(t *testing.T) {
	ctx := testContext(t)
	rec := doRequest(ctx, ctx.HandleRegions, "/api/regions")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var regions []config.Region
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regions))
	require.Len(t, regions, 2)
	assert.Equal(t, "hawaii", regions[0].Name)
}

func TestHandlePoints_BBox(t *testing.T) {
	ctx := testContext(t)
	rec := doRequest(ctx, ctx.HandlePoints, "/api/points?bbox=0,0,2,2&km=50")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var fc geo.GeoJSONFeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.NotEmpty(t, fc.Features)

	for _, f := range fc.Features {
		require.Len(t, f.Geometry.Coordinates, 2)
		lng, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		assert.GreaterOrEqual(t, lng, 0.0)
		assert.LessOrEqual(t, lng, 2.0)
		assert.GreaterOrEqual(t, lat, 0.0)
		assert.LessOrEqual(t, lat, 2.0)

		value, ok := f.Properties["value"].(float64)
		require.True(t, ok, "value property must be numeric")
		assert.GreaterOrEqual(t, value, 0.0)
		assert.LessOrEqual(t, value, 100.0)
	}
}

func TestHandlePoints_Region(t *testing.T) {
	ctx := testContext(t)

	rec := doRequest(ctx, ctx.HandlePoints, "/api/points?region=hawaii")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Aliases resolve too.
	rec = doRequest(ctx, ctx.HandlePoints, "/api/points?region=fl")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(ctx, ctx.HandlePoints, "/api/points?region=atlantis")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePoints_SeededRequestsMatch(t *testing.T) {
	ctx := testContext(t)

	a := doRequest(ctx, ctx.HandlePoints, "/api/points?bbox=0,0,2,2&km=50&seed=42")
	b := doRequest(ctx, ctx.HandlePoints, "/api/points?bbox=0,0,2,2&km=50&seed=42")

	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestHandlePoints_HeuristicMode(t *testing.T) {
	ctx := testContext(t)

	a := doRequest(ctx, ctx.HandlePoints, "/api/points?bbox=150,-32,156,-22&km=100&mode=heuristic")
	b := doRequest(ctx, ctx.HandlePoints, "/api/points?bbox=150,-32,156,-22&km=100&mode=heuristic")

	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String(), "heuristic values do not depend on the random source")
}

func TestHandlePoints_Validation(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name string
		url  string
		code int
		body string
	}{
		{"no bbox or region", "/api/points", http.StatusBadRequest, "either bbox or region is required"},
		{"malformed bbox", "/api/points?bbox=1,2,3", http.StatusBadRequest, "bbox must have 4"},
		{"inverted bbox", "/api/points?bbox=0,0,-1,1", http.StatusBadRequest, "invalid bounding box"},
		{"zero km", "/api/points?bbox=0,0,1,1&km=0", http.StatusBadRequest, "invalid arguments"},
		{"negative km", "/api/points?bbox=0,0,1,1&km=-5", http.StatusBadRequest, "invalid arguments"},
		{"non-numeric km", "/api/points?bbox=0,0,1,1&km=lots", http.StatusBadRequest, "km must be a number"},
		{"bad seed", "/api/points?bbox=0,0,1,1&seed=x", http.StatusBadRequest, "seed must be an integer"},
		{"bad mode", "/api/points?bbox=0,0,1,1&mode=psychic", http.StatusBadRequest, "unknown mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(ctx, ctx.HandlePoints, tt.url)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestHandleProbability(t *testing.T) {
	ctx := testContext(t)

	rec := doRequest(ctx, ctx.HandleProbability, "/api/probability?lat=-25.5&lng=153")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, -25.5, resp["lat"])
	assert.Equal(t, 153.0, resp["lng"])
	assert.GreaterOrEqual(t, resp["probability"], 0.0)
	assert.LessOrEqual(t, resp["probability"], 1.0)
}

func TestHandleProbability_BadInput(t *testing.T) {
	ctx := testContext(t)

	rec := doRequest(ctx, ctx.HandleProbability, "/api/probability?lat=abc&lng=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(ctx, ctx.HandleProbability, "/api/probability")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIndex_ETag(t *testing.T) {
	ctx := testContext(t)

	rec := doRequest(ctx, ctx.HandleIndex, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	ctx.HandleIndex(rec2, req)
	assert.Equal(t, http.StatusNotModified, rec2.Code)
}

func TestHandleIndex_NotFoundElsewhere(t *testing.T) {
	ctx := testContext(t)

	rec := doRequest(ctx, ctx.HandleIndex, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleFavicon(t *testing.T) {
	ctx := testContext(t)

	rec := doRequest(ctx, ctx.HandleFavicon, "/favicon.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Body.String(), "<svg"))
}
