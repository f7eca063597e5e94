package handler

import (
	"log/slog"
	"time"

	"colornotes/middleware"
	"colornotes/usecase"
	"colornotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	NotesService   *usecase.NotesService
	Store          StoreProbe
	Idempotency    middleware.IdempotencyStore
	IdempotencyTTL time.Duration
	MaxBodyBytes   int64
	Logger         *slog.Logger
}

// SetupRouter wires middleware and routes. Gin's mode must be set by the
// caller before this runs.
func SetupRouter(opts RouterOptions) *gin.Engine {
	utils.InitValidator()
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	router := gin.New()
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.AccessLogMiddleware(opts.Logger))
	router.Use(middleware.EnhancedRecoveryMiddleware(opts.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())

	notesHandler := NewNoteHandler(opts.NotesService, opts.Logger)
	healthHandler := NewHealthHandler(opts.Store, opts.Logger)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.NoStoreMiddleware())
	api.Use(middleware.RequestSizeLimiter(opts.MaxBodyBytes))
	{
		api.GET("/health", healthHandler.GetHealth)

		notes := api.Group("/notes")
		{
			notes.GET("", notesHandler.ListNotes)
			notes.POST("",
				middleware.IdempotencyMiddleware(opts.Idempotency, opts.IdempotencyTTL, opts.Logger),
				notesHandler.CreateNote,
			)
			notes.GET("/:id", notesHandler.GetNote)
			notes.PUT("/:id", notesHandler.UpdateNote)
			notes.DELETE("/:id", notesHandler.DeleteNote)
		}
	}

	return router
}
