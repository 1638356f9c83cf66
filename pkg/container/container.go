package container

import (
	"context"
	"fmt"
	"time"

	"legalblog-backend/internal/config"
	infraCache "legalblog-backend/internal/infrastructure/cache"
	"legalblog-backend/internal/infrastructure/database"
	"legalblog-backend/internal/infrastructure/queue"
	"legalblog-backend/internal/infrastructure/storage"
	"legalblog-backend/internal/notification"
	"legalblog-backend/pkg/cache"
	"legalblog-backend/pkg/jwt"
	"legalblog-backend/pkg/logger"

	"legalblog-backend/internal/domains/blog"
	blogHandler "legalblog-backend/internal/domains/blog/handler"
	blogRepo "legalblog-backend/internal/domains/blog/repository"
	blogService "legalblog-backend/internal/domains/blog/service"

	"legalblog-backend/internal/domains/user"
	userHandler "legalblog-backend/internal/domains/user/handler"
	userRepo "legalblog-backend/internal/domains/user/repository"
	userService "legalblog-backend/internal/domains/user/service"

	"legalblog-backend/internal/domains/category"
	categoryHandler "legalblog-backend/internal/domains/category/handler"
	categoryRepo "legalblog-backend/internal/domains/category/repository"
	categoryService "legalblog-backend/internal/domains/category/service"

	"legalblog-backend/internal/domains/comment"
	commentHandler "legalblog-backend/internal/domains/comment/handler"
	commentRepo "legalblog-backend/internal/domains/comment/repository"
	commentService "legalblog-backend/internal/domains/comment/service"

	"legalblog-backend/internal/domains/media"
	mediaHandler "legalblog-backend/internal/domains/media/handler"
	mediaRepo "legalblog-backend/internal/domains/media/repository"
	mediaService "legalblog-backend/internal/domains/media/service"

	"legalblog-backend/internal/domains/page"
	pageHandler "legalblog-backend/internal/domains/page/handler"
	pageRepo "legalblog-backend/internal/domains/page/repository"
	pageService "legalblog-backend/internal/domains/page/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in layer order: config, infrastructure,
// repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Queue      *queue.Client
	Storage    *storage.MinIOStorage
	Images     *storage.ImageProcessor

	UserRepo     user.Repository
	BlogRepo     blog.Repository
	CategoryRepo category.Repository
	CommentRepo  comment.Repository
	PageRepo     page.Repository
	MediaRepo    media.Repository

	UserService     user.Service
	BlogService     blog.Service
	ExportService   *blogService.ExportService
	CategoryService category.Service
	CommentService  comment.Service
	PageService     page.Service
	MediaService    media.Service

	UserHandler     *userHandler.UserHandler
	BlogHandler     *blogHandler.BlogHandler
	CategoryHandler *categoryHandler.CategoryHandler
	CommentHandler  *commentHandler.CommentHandler
	PageHandler     *pageHandler.PageHandler
	MediaHandler    *mediaHandler.MediaHandler
}

// NewContainer builds the full graph. A failure at any layer aborts
// startup; a dead Redis only degrades caching and is logged instead.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			logger.Warn("redis connection failed, caching degraded", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(c.Config.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.Queue = queue.NewClient(c.Config.Redis.Host)

	store, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	c.Images = storage.NewImageProcessor(c.Config.Upload.MaxSizeBytes, c.Config.Upload.ThumbnailWidth)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.BlogRepo = blogRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
	c.PageRepo = pageRepo.NewPostgresRepository(pool)
	c.MediaRepo = mediaRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	mailer := notification.NewQueueMailer(c.Queue, c.Config.App.BaseURL)
	notifier := notification.NewQueueNotifier(c.Queue, &emailAdapter{users: c.UserRepo}, c.Config.App.AdminEmail)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		mailer,
		c.Cache,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
	)

	c.BlogService = blogService.NewBlogService(
		c.BlogRepo,
		&accountAdapter{users: c.UserRepo},
		notifier,
		c.Storage,
	)
	c.ExportService = blogService.NewExportService(c.BlogRepo)

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)

	posts := &postAdapter{posts: c.BlogRepo}
	c.CommentService = commentService.NewCommentService(
		c.CommentRepo,
		posts,
		&commentAccountAdapter{users: c.UserRepo},
	)

	c.PageService = pageService.NewPageService(c.PageRepo, c.Cache)

	c.MediaService = mediaService.NewMediaService(
		c.MediaRepo,
		c.Storage,
		c.Images,
		posts,
		&mediaAccountAdapter{users: c.UserRepo},
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService, c.ExportService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.PageHandler = pageHandler.NewPageHandler(c.PageService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)
}

// Cleanup releases held connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Error("failed to close redis", err)
			}
		}
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}
}
