package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "reddit-psych-pipeline/docs"
	"reddit-psych-pipeline/internal/api/handler"
	"reddit-psych-pipeline/internal/model"
	"reddit-psych-pipeline/pkg/router"
)

// RegisterRoutes wires the run API and the swagger UI onto the router.
func RegisterRoutes(r *router.Router, defaults model.CompileOptions) {
	handler.Init(defaults)

	r.POST("/api/v1/runs", handler.CreateRun)
	r.GET("/api/v1/runs", handler.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/errors", handler.GetRunErrors)
	r.GET("/api/v1/runs/*", handler.GetRun)
	r.GET("/api/v1/dataset", handler.DownloadDataset)

	r.Handle("GET", "/swagger/*", httpSwagger.WrapHandler)
}
