package main

import (
	"flag"
	"log"

	"reddit-psych-pipeline/internal/api"
	"reddit-psych-pipeline/internal/config"
	"reddit-psych-pipeline/internal/store"
	"reddit-psych-pipeline/pkg/logger"
	"reddit-psych-pipeline/pkg/router"
)

// @title Reddit Psych Pipeline API
// @version 1.0
// @description Compile-run API for the psychology subreddit dataset pipeline
// @BasePath /api/v1
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	logger.Log = logger.New(cfg.Logging.Level)

	if err := store.InitDB(cfg.Store.Path); err != nil {
		log.Fatal(err)
	}
	defer store.CloseDB()

	r := router.New()
	api.RegisterRoutes(r, cfg.CompileOptions())

	log.Fatal(r.Start(cfg.Server.Addr))
}
