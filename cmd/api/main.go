package main

import (
	"github.com/gin-gonic/gin"

	"github.com/tallergestion/workshop-api/internal/config"
	dbpkg "github.com/tallergestion/workshop-api/internal/db"
	"github.com/tallergestion/workshop-api/internal/logging"
	"github.com/tallergestion/workshop-api/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	db := dbpkg.NewDB(cfg, log)
	rdb := dbpkg.NewRedis(cfg, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
