package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/finwatch/sharkmap/internal/config"
	"github.com/finwatch/sharkmap/internal/logger"
	"github.com/finwatch/sharkmap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Addr       string  `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int     `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	DefaultKm  float64 `short:"k" long:"default-km" env:"DEFAULT_KM"     description:"Default grid spacing in km" default:"25"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.DefaultKm <= 0 {
		if opts.DefaultKm <= 0 {
			cfg.DefaultKm = 25
		} else {
			cfg.DefaultKm = opts.DefaultKm
		}
	}

	srvCtx := server.NewServerContext(cfg)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/regions", srvCtx.HandleRegions)
	mux.HandleFunc("/api/points", srvCtx.HandlePoints)
	mux.HandleFunc("/api/probability", srvCtx.HandleProbability)
	mux.HandleFunc("/favicon.svg", srvCtx.HandleFavicon)
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("regions_loaded", len(cfg.Regions)).
		Float64("default_km", cfg.DefaultKm).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
