package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-records-server/internal/config"
	"clinic-records-server/internal/handlers"
	"clinic-records-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, st store.PatientStore, cfg *config.Config) {
	// Initialize handlers
	patientHandler := handlers.NewPatientHandler(st, cfg)
	statsHandler := handlers.NewStatsHandler(st)
	healthHandler := handlers.NewHealthHandler(st)

	api := router.Group("/api")
	{
		patientRoutes := api.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.ListPatients)
			patientRoutes.GET("/search", patientHandler.SearchPatients)
			patientRoutes.GET("/count", patientHandler.CountPatients)
			patientRoutes.GET("/stats", statsHandler.GetStats)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", patientHandler.DeletePatient)
		}

		// The dashboard and the bare stats route serve the same snapshot as
		// /patients/stats; one canonical shape everywhere.
		api.GET("/stats", statsHandler.GetStats)
		api.GET("/dashboard/stats", statsHandler.GetStats)

		api.GET("/health", healthHandler.Check)
	}

	// Everything outside /api falls through to the browser client.
	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}
}
