package server

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stuartshay/otel-data-api/internal/config"
	"github.com/stuartshay/otel-data-api/internal/handler"
	"github.com/stuartshay/otel-data-api/internal/middleware"
	"github.com/stuartshay/otel-data-api/internal/service"
	"github.com/stuartshay/otel-data-api/internal/store"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/stuartshay/otel-data-api/docs"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	config *config.Config
	db     *store.Database
	redis  *redis.Client
	auth   *middleware.Authenticator
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, db *store.Database, redisClient *redis.Client) *Server {
	return &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
		auth:   middleware.NewAuthenticator(cfg),
	}
}

// Setup initializes routes and handlers
func (s *Server) Setup() {
	// Initialize services
	locationService := service.NewLocationService(s.db)
	garminService := service.NewGarminService(s.db)
	referenceService := service.NewReferenceService(s.db)
	spatialService := service.NewSpatialService(s.db)
	unifiedService := service.NewUnifiedService(s.db)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(s.db, s.config.AppVersion, s.config.BuildNumber, s.config.BuildDate)
	locationHandler := handler.NewLocationHandler(locationService)
	garminHandler := handler.NewGarminHandler(garminService)
	referenceHandler := handler.NewReferenceHandler(referenceService)
	spatialHandler := handler.NewSpatialHandler(spatialService)
	unifiedHandler := handler.NewUnifiedHandler(unifiedService)

	// Setup Gin router
	s.router = gin.Default()

	// CORS middleware
	s.router.Use(s.corsMiddleware())

	// Rate limiting when Redis is configured
	if s.redis != nil {
		s.router.Use(middleware.RateLimit(s.redis, s.config.RateLimitLimit, s.config.RateLimitWindow))
		log.Printf("[Server] Rate limiting enabled (%d requests per %s)", s.config.RateLimitLimit, s.config.RateLimitWindow)
	}

	// Swagger UI
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health probes
	s.router.GET("/health", healthHandler.Live)
	s.router.GET("/ready", healthHandler.Ready)

	// Read-only API
	api := s.router.Group("/api/v1")
	{
		// OwnTracks locations
		api.GET("/locations", locationHandler.List)
		api.GET("/locations/devices", locationHandler.Devices)
		api.GET("/locations/count", locationHandler.Count)
		api.GET("/locations/:id", locationHandler.Get)

		// Garmin activities
		api.GET("/garmin/activities", garminHandler.ListActivities)
		api.GET("/garmin/activities/export", garminHandler.ExportActivities)
		api.GET("/garmin/sports", garminHandler.Sports)
		api.GET("/garmin/activities/:id", garminHandler.GetActivity)
		api.GET("/garmin/activities/:id/tracks", garminHandler.ListTrackPoints)
		api.GET("/garmin/activities/:id/chart-data", garminHandler.ChartData)

		// Spatial queries
		api.GET("/spatial/nearby", spatialHandler.Nearby)
		api.GET("/spatial/distance", spatialHandler.Distance)
		api.GET("/spatial/within-reference/:name", spatialHandler.WithinReference)

		// Unified views
		api.GET("/gps/unified", unifiedHandler.List)
		api.GET("/gps/daily-summary", unifiedHandler.DailySummary)

		// Reference locations (reads are public)
		api.GET("/reference-locations", referenceHandler.List)
		api.GET("/reference-locations/:id", referenceHandler.Get)
	}

	// Write routes require a valid token
	protected := s.router.Group("/api/v1")
	protected.Use(s.auth.RequireAuth())
	{
		protected.POST("/reference-locations", referenceHandler.Create)
		protected.PUT("/reference-locations/:id", referenceHandler.Update)
		protected.DELETE("/reference-locations/:id", referenceHandler.Delete)
	}
}

// corsMiddleware allows configured origins, or any origin when none are set
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		if len(s.config.CORSOrigins) > 0 {
			allowed = ""
			for _, o := range s.config.CORSOrigins {
				if strings.EqualFold(o, origin) {
					allowed = origin
					break
				}
			}
		}
		if allowed != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	log.Printf("[Server] HTTP server listening on %s", addr)
	return s.router.Run(addr)
}

// GetRouter returns the gin router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
