package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"home_energy_simulator/internal/api/handlers"
	"home_energy_simulator/internal/api/middleware"
	"home_energy_simulator/internal/config"
	"home_energy_simulator/internal/simulator"
	"home_energy_simulator/internal/store"
	"home_energy_simulator/internal/ws"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if level, err := zerolog.ParseLevel(config.LogLevel()); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if config.LogLevel() != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	presets := store.New()
	if n, err := presets.LoadDir(config.PresetDir()); err != nil {
		log.Warn().Err(err).Str("dir", config.PresetDir()).Msg("preset load failed")
	} else {
		log.Info().Int("count", n).Str("dir", config.PresetDir()).Msg("presets loaded")
	}

	opts := simulator.Options{
		ClipSolar:        config.ClipSolar(),
		BinaryAppliances: config.BinaryAppliances(),
		MaxDischargeKW:   config.MaxDischargeKW(),
	}

	router := newRouter(log.Logger, presets, opts, config.FrontendDir(), config.CORSOrigins())

	addr := config.Addr()
	log.Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}

// newRouter wires the REST API, the WebSocket endpoint and, when the
// directory exists, the static frontend.
func newRouter(logger zerolog.Logger, presets *store.Store, opts simulator.Options, frontendDir string, origins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(origins))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", handlers.NewSimulateHandler().Run)
		api.GET("/catalog", handlers.GetCatalog)

		households := handlers.NewHouseholdHandler(presets)
		api.GET("/households", households.List)
		api.GET("/households/:name", households.Get)
	}

	hub := ws.NewHub(logger)
	router.GET("/ws", gin.WrapH(ws.NewHandler(hub, presets, opts, logger)))

	if info, err := os.Stat(frontendDir); err == nil && info.IsDir() {
		router.Static("/assets", filepath.Join(frontendDir, "assets"))
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.File(filepath.Join(frontendDir, "index.html"))
		})
		logger.Info().Str("dir", frontendDir).Msg("serving frontend")
	}

	return router
}
