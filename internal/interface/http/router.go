package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/wellness-hub/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/refresh", handler.Refresh)
		api.GET("/counselors", handler.Counselors)
		api.GET("/counselors/:id/slots", handler.OpenSlots)
	}

	secured := api.Group("")
	secured.Use(authMiddleware(handler.authSvc))
	{
		secured.GET("/profile", handler.Profile)
		secured.PUT("/profile", handler.UpdateProfile)

		secured.POST("/moods", handler.LogMood)
		secured.GET("/moods", handler.ListMoods)
		secured.POST("/activities", handler.LogActivity)
		secured.GET("/activities", handler.ListActivities)
		secured.POST("/exercises", handler.LogExercise)
		secured.GET("/exercises", handler.ListExercises)
		secured.POST("/meditations", handler.LogMeditation)
		secured.GET("/meditations", handler.ListMeditations)
		secured.POST("/sleep", handler.LogSleep)
		secured.GET("/sleep", handler.ListSleep)
		secured.POST("/journals", handler.AddJournal)
		secured.GET("/journals", handler.ListJournals)
		secured.DELETE("/journals/:id", handler.DeleteJournal)

		secured.GET("/stats/weekly", handler.WeeklyStats)
		secured.GET("/stats/progress", handler.WeeklyProgress)
		secured.GET("/dashboard", handler.Dashboard)

		secured.POST("/feedback", handler.SubmitFeedback)
		secured.GET("/feedback", handler.ListFeedback)
		secured.GET("/feedback/all", handler.ListAllFeedback)

		secured.POST("/chat", handler.Chat)

		secured.POST("/appointments", handler.BookAppointment)
		secured.GET("/appointments", handler.ListAppointments)
		secured.DELETE("/appointments/:id", handler.CancelAppointment)

		secured.POST("/exports", handler.CreateExport)
		secured.GET("/exports/*key", handler.FetchExport)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
