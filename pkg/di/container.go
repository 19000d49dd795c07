package di

import (
	"context"

	"gorm.io/gorm"

	"taskboard-api/application/serviceimpl"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	natspkg "taskboard-api/infrastructure/nats"
	"taskboard-api/infrastructure/postgres"
	redispkg "taskboard-api/infrastructure/redis"
	"taskboard-api/infrastructure/storage"
	"taskboard-api/infrastructure/websocket"
	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/pkg/config"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client
	NATSClient     *natspkg.Client
	EventPublisher ports.BoardEventPublisher
	EventSub       ports.BoardEventSubscriber
	Storage        ports.StoragePort
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository        repositories.UserRepository
	TeamRepository        repositories.TeamRepository
	ColumnRepository      repositories.ColumnRepository
	TaskRepository        repositories.TaskRepository
	PermissionRepository  repositories.PermissionRepository
	MoveRequestRepository repositories.MoveRequestRepository
	HistoryRepository     repositories.HistoryRepository
	CustomFieldRepository repositories.CustomFieldRepository
	ReportRepository      repositories.ReportRepository

	// Services
	UserService        services.UserService
	TeamService        services.TeamService
	PermissionService  services.PermissionService
	TransitionService  services.TransitionService
	BoardService       services.BoardService
	TaskService        services.TaskService
	ReviewService      services.ReviewService
	MoveRequestService services.MoveRequestService
	HistoryService     services.HistoryService
	ArchiveService     services.ArchiveService
	CustomFieldService services.CustomFieldService
	ReportService      services.ReportService

	// WebSocket fan-out
	BoardBroadcaster *websocket.BoardBroadcaster
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	return c.initBroadcaster()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	db, err := postgres.NewDatabase(c.Config.Database)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected and migrated")

	redisClient, err := redispkg.NewClient(&c.Config.Redis)
	if err != nil {
		return err
	}
	c.RedisClient = redisClient

	natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
	if err != nil {
		return err
	}
	c.NATSClient = natsClient
	c.EventPublisher = natspkg.NewPublisher(natsClient)
	c.EventSub = natspkg.NewSubscriber(natsClient)

	s3, err := storage.NewS3Storage(storage.S3StorageConfig{
		Endpoint:  c.Config.Storage.S3.Endpoint,
		AccessKey: c.Config.Storage.S3.AccessKey,
		SecretKey: c.Config.Storage.S3.SecretKey,
		Bucket:    c.Config.Storage.S3.Bucket,
		UseSSL:    c.Config.Storage.S3.UseSSL,
		Region:    c.Config.Storage.S3.Region,
		PublicURL: c.Config.Storage.S3.PublicURL,
	})
	if err != nil {
		return err
	}
	c.Storage = s3

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TeamRepository = postgres.NewTeamRepository(c.DB)
	c.ColumnRepository = postgres.NewColumnRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.PermissionRepository = postgres.NewPermissionRepository(c.DB)
	c.MoveRequestRepository = postgres.NewMoveRequestRepository(c.DB)
	c.HistoryRepository = postgres.NewHistoryRepository(c.DB)
	c.CustomFieldRepository = postgres.NewCustomFieldRepository(c.DB)
	c.ReportRepository = postgres.NewReportRepository(c.DB)

	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Config.JWT.Secret)
	c.TeamService = serviceimpl.NewTeamService(c.TeamRepository, c.ColumnRepository)

	c.PermissionService = serviceimpl.NewPermissionService(
		c.PermissionRepository,
		c.UserRepository,
		c.ColumnRepository,
	)

	c.TransitionService = serviceimpl.NewTransitionService(
		c.TaskRepository,
		c.ColumnRepository,
		c.TeamRepository,
		c.PermissionService,
		c.EventPublisher,
	)

	c.BoardService = serviceimpl.NewBoardService(
		c.ColumnRepository,
		c.TaskRepository,
		c.TeamRepository,
		c.PermissionService,
		c.EventPublisher,
	)

	// TaskService delegates field writes, so the field service comes first
	c.CustomFieldService = serviceimpl.NewCustomFieldService(
		c.CustomFieldRepository,
		c.TaskRepository,
		c.ColumnRepository,
		c.PermissionService,
		c.Storage,
		c.Config.Storage.MaxUploadSize,
	)

	c.TaskService = serviceimpl.NewTaskService(
		c.TaskRepository,
		c.ColumnRepository,
		c.TeamRepository,
		c.UserRepository,
		c.CustomFieldRepository,
		c.PermissionService,
		c.TransitionService,
		c.CustomFieldService,
		c.EventPublisher,
	)

	c.ReviewService = serviceimpl.NewReviewService(
		c.TaskRepository,
		c.ColumnRepository,
		c.TeamRepository,
		c.PermissionService,
		c.TransitionService,
		c.RedisClient,
		c.EventPublisher,
		c.Config.Review,
	)

	c.MoveRequestService = serviceimpl.NewMoveRequestService(
		c.MoveRequestRepository,
		c.TaskRepository,
		c.ColumnRepository,
		c.TeamRepository,
		c.PermissionService,
		c.TransitionService,
		c.EventPublisher,
	)

	c.HistoryService = serviceimpl.NewHistoryService(
		c.HistoryRepository,
		c.TaskRepository,
		c.ColumnRepository,
		c.PermissionService,
	)

	c.ArchiveService = serviceimpl.NewArchiveService(
		c.TaskRepository,
		c.TeamRepository,
		c.PermissionService,
		c.EventPublisher,
	)

	c.ReportService = serviceimpl.NewReportService(
		c.TeamRepository,
		c.TaskRepository,
		c.ReportRepository,
	)

	logger.Info("Services initialized")
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if c.Config.Report.Enabled {
		err := c.EventScheduler.AddJob("daily-report", c.Config.Report.CronExpr, func() {
			ctx := context.Background()
			if err := c.ReportService.GenerateAll(ctx); err != nil {
				logger.Error("Daily report run failed", "error", err)
			}
		})
		if err != nil {
			return err
		}
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) initBroadcaster() error {
	c.BoardBroadcaster = websocket.NewBoardBroadcaster(c.EventSub)
	return c.BoardBroadcaster.Start()
}

// GetHandlerServices bundles everything the HTTP layer needs
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:        c.UserService,
		TeamService:        c.TeamService,
		BoardService:       c.BoardService,
		TaskService:        c.TaskService,
		TransitionService:  c.TransitionService,
		ReviewService:      c.ReviewService,
		MoveRequestService: c.MoveRequestService,
		PermissionService:  c.PermissionService,
		HistoryService:     c.HistoryService,
		ArchiveService:     c.ArchiveService,
		CustomFieldService: c.CustomFieldService,
		ReportService:      c.ReportService,
		Config:             c.Config,
	}
}

// Shutdown tears infrastructure down in reverse order
func (c *Container) Shutdown() {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}
	if c.BoardBroadcaster != nil {
		c.BoardBroadcaster.Stop()
	}
	if c.NATSClient != nil {
		c.NATSClient.Close()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	logger.Info("Container shut down")
}
