// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"sync"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// The prometheus middleware registers its collectors in the default
// registry, which tolerates exactly one registration per process.
var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

func promMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New("ripple-api")
	})
	return prom
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	friendRepo     repository.FriendRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	storyRepo      repository.StoryRepository
	userService    *service.UserService
	friendService  *service.FriendService
	postService    *service.PostService
	commentService *service.CommentService
	storyService   *service.StoryService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.InitRedis(cfg.RedisURL))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: promMetrics(),
		userRepo:       repository.NewUserRepository(db),
		friendRepo:     repository.NewFriendRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		storyRepo:      repository.NewStoryRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo, cache.NewUserCache(redisClient))
	server.friendService = service.NewFriendService(server.friendRepo)
	server.postService = service.NewPostService(server.postRepo)
	server.commentService = service.NewCommentService(server.commentRepo)
	server.storyService = service.NewStoryService(server.storyRepo, server.friendRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())

	// Tracing before logging so the logger sees the span's trace id
	app.Use(middleware.Tracing())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Structured logging
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Metrics endpoint stays outside the auth gate for scrapers
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Every API and admin route sits behind the shared credential
	app.Use(middleware.BasicAuth(middleware.Credentials{
		User:     s.config.AdminUser,
		Password: s.config.AdminPassword,
	}))

	app.Get("/", s.Welcome)

	// User routes
	users := app.Group("/users")
	users.Get("/", s.GetUsers)
	users.Get("/search", s.SearchUsers)
	users.Post("/", s.CreateUser)

	// Friend routes nested under users; registered before the generic /:id
	// routes so the longer paths match first
	users.Get("/:id/friends/pending", s.GetPendingRequests)
	users.Get("/:id/friends", s.GetFriends)
	users.Post("/:id/friends/:friendId/accept", s.AcceptFriendRequest)
	users.Post("/:id/friends/:friendId/reject", s.RejectFriendRequest)
	users.Post("/:id/friends/:friendId", s.SendFriendRequest)
	users.Delete("/:id/friends/:friendId", s.RemoveFriend)

	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Post routes
	posts := app.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Get("/user/:id", s.GetUserPosts)
	posts.Get("/timeline/:id", s.GetTimeline)

	// Comment routes nested under posts
	posts.Post("/comments/:id/replies", s.AddReply)
	posts.Get("/comments/:id/replies", s.GetReplies)
	posts.Delete("/comments/:id", s.DeleteComment)
	posts.Post("/:id/comments", s.AddComment)
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	// Story routes
	stories := app.Group("/stories")
	stories.Post("/", s.CreateStory)
	stories.Get("/user/:id", s.GetVisibleStories)
	stories.Delete("/:id", s.DeleteStory)

	// Admin tabular CRUD over every registered entity
	admin := app.Group("/admin")
	admin.Get("/", s.AdminIndex)
	admin.Get("/:table", s.AdminListRows)
	admin.Post("/:table", s.AdminCreateRow)
	admin.Put("/:table/:id", s.AdminUpdateRow)
	admin.Delete("/:table/:id", s.AdminDeleteRow)
}

// Welcome handles GET /
func (s *Server) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the Ripple API",
		"version": "1.0.0",
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Ripple API",
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
