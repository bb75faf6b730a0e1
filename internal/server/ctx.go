package server

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/finwatch/sharkmap/assets"
	"github.com/finwatch/sharkmap/internal/config"
	"github.com/finwatch/sharkmap/internal/predict"
)

// defaultKm is the fallback grid spacing when neither the config nor the
// request provides one.
const defaultKm = 25.0

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config         *config.Config
	Estimator      *predict.Estimator
	RegionResolver map[string]*config.Region
	IndexHTML      []byte
	Favicon        []byte
}

// NewServerContext initializes the context and processes the region
// configuration. It filters out regions with invalid bounding boxes and
// sets up the name resolver.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_regions_count", len(cfg.Regions)).Msg("Initializing server context")

	if cfg.DefaultKm <= 0 {
		cfg.DefaultKm = defaultKm
	}

	validRegions := make([]config.Region, 0, len(cfg.Regions))

	// Normalize and Sort
	for i := range cfg.Regions {
		region := &cfg.Regions[i]

		if region.Km <= 0 {
			region.Km = cfg.DefaultKm
		}
		if region.Attribution == "" {
			region.Attribution = cfg.Attribution
		}

		if !region.BBox.Valid() {
			log.Warn().
				Str("region", region.Name).
				Msg("Skipping region: bounding box min exceeds max")
			continue
		}

		log.Debug().
			Str("region", region.Name).
			Float64("km", region.Km).
			Msg("Region validated and added to context")

		validRegions = append(validRegions, *region)
	}

	cfg.Regions = validRegions

	sort.Slice(cfg.Regions, func(i, j int) bool {
		idxI, idxJ := 999999, 999999
		if cfg.Regions[i].Index != nil {
			idxI = *cfg.Regions[i].Index
		}
		if cfg.Regions[j].Index != nil {
			idxJ = *cfg.Regions[j].Index
		}
		if idxI != idxJ {
			return idxI < idxJ
		}

		return cfg.Regions[i].Name < cfg.Regions[j].Name
	})

	// Setup Resolver after sorting so pointers stay stable
	resolver := make(map[string]*config.Region)
	for i := range cfg.Regions {
		region := &cfg.Regions[i]
		resolver[region.Name] = region
		for _, alias := range region.Aliases {
			resolver[alias] = region
		}
	}

	log.Info().
		Int("valid_regions_count", len(cfg.Regions)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:         cfg,
		Estimator:      cfg.Estimator(),
		RegionResolver: resolver,
		IndexHTML:      assets.Index,
		Favicon:        assets.Favicon,
	}
}
