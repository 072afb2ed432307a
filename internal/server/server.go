// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"vitrine/internal/cache"
	"vitrine/internal/config"
	"vitrine/internal/database"
	"vitrine/internal/middleware"
	"vitrine/internal/models"
	"vitrine/internal/notifications"
	"vitrine/internal/repository"
	"vitrine/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	postRepo         repository.PostRepository
	projectRepo      repository.ProjectRepository
	commentRepo      repository.CommentRepository
	taxonomyRepo     repository.TaxonomyRepository
	subscriptionRepo repository.SubscriptionRepository
	contactRepo      repository.ContactRepository
	analyticsRepo    repository.AnalyticsRepository

	notifier *notifications.Notifier

	postService         *service.PostService
	projectService      *service.ProjectService
	commentService      *service.CommentService
	taxonomyService     *service.TaxonomyService
	subscriptionService *service.SubscriptionService
	contactService      *service.ContactService
	analyticsService    *service.AnalyticsService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	server, err := NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}

	// Registered here rather than in NewServerWithDeps: collector registration
	// is global, and test setups build multiple servers per process.
	server.promMiddleware = middleware.InitMetrics("vitrine-api")

	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	contactRepo := repository.NewContactRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		userRepo:         userRepo,
		postRepo:         postRepo,
		projectRepo:      projectRepo,
		commentRepo:      commentRepo,
		taxonomyRepo:     taxonomyRepo,
		subscriptionRepo: subscriptionRepo,
		contactRepo:      contactRepo,
		analyticsRepo:    analyticsRepo,
	}

	server.notifier = notifications.NewNotifier(cfg, redisClient)
	server.postService = service.NewPostService(postRepo, taxonomyRepo)
	server.projectService = service.NewProjectService(projectRepo, taxonomyRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.taxonomyService = service.NewTaxonomyService(taxonomyRepo)
	server.subscriptionService = service.NewSubscriptionService(subscriptionRepo)
	server.contactService = service.NewContactService(contactRepo, server.notifier)
	server.analyticsService = service.NewAnalyticsService(analyticsRepo)

	middleware.InitMiddleware(cfg)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public blog routes
	blog := api.Group("/blog")
	blog.Get("/posts", s.GetPosts)
	blog.Get("/posts/featured", s.GetFeaturedPosts)
	blog.Get("/posts/:slug", s.GetPost)
	blog.Get("/posts/:slug/comments", s.GetComments)
	blog.Post("/posts/:slug/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment)
	blog.Get("/categories", s.GetCategories)
	blog.Get("/categories/:slug", s.GetCategory)
	blog.Get("/tags", s.GetTags)
	blog.Get("/tags/:slug", s.GetTag)
	blog.Get("/stats", s.GetBlogStats)
	blog.Post("/subscribe", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "subscribe"), s.Subscribe)
	blog.Post("/unsubscribe", s.Unsubscribe)

	// Public portfolio routes
	portfolio := api.Group("/portfolio")
	portfolio.Get("/projects", s.GetProjects)
	portfolio.Get("/projects/featured", s.GetFeaturedProjects)
	portfolio.Get("/projects/:slug", s.GetProject)
	portfolio.Get("/categories", s.GetProjectCategories)
	portfolio.Get("/technologies", s.GetTechnologies)
	portfolio.Get("/skills", s.GetSkills)

	// Public contact route
	api.Post("/contact", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "contact"), s.SubmitContactMessage)

	// Public analytics beacons
	analytics := api.Group("/analytics")
	analytics.Post("/pageview", middleware.RateLimit(
		s.redis, 60, time.Minute, "track_pageview"), s.TrackPageView)
	analytics.Post("/event", middleware.RateLimit(
		s.redis, 60, time.Minute, "track_event"), s.TrackEvent)
	analytics.Post("/session/end", s.EndSession)

	// Staff routes
	admin := api.Group("/admin", middleware.AuthRequired)

	adminPosts := admin.Group("/posts")
	adminPosts.Get("/", s.AdminListPosts)
	adminPosts.Post("/", s.AdminCreatePost)
	adminPosts.Get("/:id", s.AdminGetPost)
	adminPosts.Put("/:id", s.AdminUpdatePost)
	adminPosts.Delete("/:id", s.AdminDeletePost)

	adminProjects := admin.Group("/projects")
	adminProjects.Get("/", s.AdminListProjects)
	adminProjects.Post("/", s.AdminCreateProject)
	adminProjects.Get("/:id", s.AdminGetProject)
	adminProjects.Put("/:id", s.AdminUpdateProject)
	adminProjects.Delete("/:id", s.AdminDeleteProject)

	adminComments := admin.Group("/comments")
	adminComments.Get("/pending", s.AdminListPendingComments)
	adminComments.Post("/:id/approve", s.AdminApproveComment)
	adminComments.Post("/:id/reject", s.AdminRejectComment)
	adminComments.Post("/:id/deactivate", s.AdminDeactivateComment)
	adminComments.Delete("/:id", s.AdminDeleteComment)

	adminCategories := admin.Group("/categories")
	adminCategories.Post("/", s.AdminCreateCategory)
	adminCategories.Put("/:id", s.AdminUpdateCategory)
	adminCategories.Delete("/:id", s.AdminDeleteCategory)

	adminTags := admin.Group("/tags")
	adminTags.Post("/", s.AdminCreateTag)
	adminTags.Put("/:id", s.AdminUpdateTag)
	adminTags.Delete("/:id", s.AdminDeleteTag)

	adminProjectCategories := admin.Group("/project-categories")
	adminProjectCategories.Post("/", s.AdminCreateProjectCategory)
	adminProjectCategories.Put("/:id", s.AdminUpdateProjectCategory)
	adminProjectCategories.Delete("/:id", s.AdminDeleteProjectCategory)

	adminTechnologies := admin.Group("/technologies")
	adminTechnologies.Post("/", s.AdminCreateTechnology)
	adminTechnologies.Put("/:id", s.AdminUpdateTechnology)
	adminTechnologies.Delete("/:id", s.AdminDeleteTechnology)

	adminSkills := admin.Group("/skills")
	adminSkills.Post("/", s.AdminCreateSkill)
	adminSkills.Put("/:id", s.AdminUpdateSkill)
	adminSkills.Delete("/:id", s.AdminDeleteSkill)

	adminContacts := admin.Group("/contact-messages")
	adminContacts.Get("/", s.AdminListContactMessages)
	adminContacts.Get("/unread-count", s.AdminUnreadContactCount)
	adminContacts.Get("/:id", s.AdminGetContactMessage)
	adminContacts.Post("/:id/read", s.AdminGetContactMessage)
	adminContacts.Patch("/:id/status", s.AdminUpdateContactStatus)

	admin.Get("/subscriptions", s.AdminListSubscriptions)

	adminAnalytics := admin.Group("/analytics")
	adminAnalytics.Get("/pageviews", s.AdminListPageViews)
	adminAnalytics.Get("/events", s.AdminListEvents)
	adminAnalytics.Get("/summary", s.AdminAnalyticsSummary)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional; the API degrades to uncached reads without it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Vitrine API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
