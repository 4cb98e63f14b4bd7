package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"noteboard-backend/internal/config"
	"noteboard-backend/internal/events"
	infraCache "noteboard-backend/internal/infrastructure/cache"
	"noteboard-backend/internal/infrastructure/database"
	"noteboard-backend/pkg/cache"
	"noteboard-backend/pkg/jwt"
	"noteboard-backend/pkg/logger"

	accountHandler "noteboard-backend/internal/domains/account/handler"
	accountRepo "noteboard-backend/internal/domains/account/repository"
	accountService "noteboard-backend/internal/domains/account/service"
	activityHandler "noteboard-backend/internal/domains/activity/handler"
	activityRepo "noteboard-backend/internal/domains/activity/repository"
	activityService "noteboard-backend/internal/domains/activity/service"
	noteHandler "noteboard-backend/internal/domains/note/handler"
	"noteboard-backend/internal/domains/note/registry"
	noteService "noteboard-backend/internal/domains/note/service"
	walletHandler "noteboard-backend/internal/domains/wallet/handler"
	walletRepo "noteboard-backend/internal/domains/wallet/repository"
	walletService "noteboard-backend/internal/domains/wallet/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application and is the root
// of the dependency graph. All fields are singletons living for the
// whole process lifetime.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config      *config.Config       // Application config
	DB          *database.PostgresDB // Database connection pool
	Redis       *infraCache.RedisClient
	Cache       cache.Cache // Redis-backed counters and cached values
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager
	Events      *events.Bus // Note event fan-out

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	AccountRepo  accountRepo.AccountRepository
	WalletRepo   walletRepo.WalletRepository
	ActivityRepo activityRepo.ActivityRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	AccountService  accountService.AccountService
	WalletService   walletService.WalletService
	NoteService     noteService.NoteService
	ActivityService activityService.ActivityService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	AccountHandler  *accountHandler.AccountHandler
	WalletHandler   *walletHandler.WalletHandler
	NoteHandler     *noteHandler.NoteHandler
	ActivityHandler *activityHandler.ActivityHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole dependency graph.
//
// Initialization order matters:
// 1. Config (depends on nothing)
// 2. Infrastructure (DB, Redis, Asynq) - depends on Config
// 3. Event bus - depends on Infrastructure
// 4. Repositories - depend on Infrastructure
// 5. Services - depend on Repositories
// 6. Handlers - depend on Services
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	// Redis failures are not fatal: pub/sub and the faucet counter
	// degrade, the core note and wallet flows keep working.
	log.Println("🔴 Connecting to Redis...")

	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("⚠️  Redis cache connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: INITIALIZE ASYNQ CLIENT
	// ========================================
	// Used by the queue sink to hand archive tasks to the worker.
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// ========================================
	// STEP 5: INITIALIZE EVENT BUS
	// ========================================
	// The log sink always runs. Redis pub/sub and the archive queue are
	// switched by config.
	log.Println("📣 Initializing event bus...")

	sinks := []events.Sink{events.NewLogSink()}
	if cfg.Events.RedisChannel != "" {
		sinks = append(sinks, events.NewRedisSink(c.Redis.Client, cfg.Events.RedisChannel))
	}
	if cfg.Events.ArchiveEnabled {
		sinks = append(sinks, events.NewQueueSink(c.AsynqClient))
	}
	c.Events = events.NewBus(sinks...)
	log.Printf("✅ Event bus initialized (%d sinks)", len(sinks))

	// ========================================
	// STEP 6: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")

	if err := c.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 7: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")

	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 8: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")

	if err := c.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() error {
	pool := c.DB.Pool

	c.AccountRepo = accountRepo.NewPostgresAccountRepository(pool)
	c.WalletRepo = walletRepo.NewWalletRepository(pool)
	c.ActivityRepo = activityRepo.NewPostgresActivityRepository(pool)

	return nil
}

func (c *Container) initServices() error {
	// ----------------------------------------
	// WALLET SERVICE
	// ----------------------------------------
	// Policy amounts arrive as decimal strings; a bad value is a config
	// error and stops startup.
	signupCredit, err := decimal.NewFromString(c.Config.Wallet.SignupCredit)
	if err != nil {
		return fmt.Errorf("invalid WALLET_SIGNUP_CREDIT %q: %w", c.Config.Wallet.SignupCredit, err)
	}
	faucetMax, err := decimal.NewFromString(c.Config.Wallet.FaucetMaxAmount)
	if err != nil {
		return fmt.Errorf("invalid WALLET_FAUCET_MAX %q: %w", c.Config.Wallet.FaucetMaxAmount, err)
	}

	c.WalletService = walletService.NewWalletService(c.WalletRepo, c.Cache, walletService.Config{
		SignupCredit:        signupCredit,
		FaucetEnabled:       c.Config.Wallet.FaucetEnabled,
		FaucetMax:           faucetMax,
		FaucetDailyRequests: c.Config.Wallet.FaucetDailyRequests,
	})

	// ----------------------------------------
	// NOTE SERVICE
	// ----------------------------------------
	// The registry tips through the wallet service and announces every
	// successful operation on the event bus.
	reg := registry.New(c.WalletService, c.Events)
	c.NoteService = noteService.NewNoteService(reg, noteService.NewMonotonicClock())

	// ----------------------------------------
	// ACCOUNT SERVICE
	// ----------------------------------------
	// Registration provisions the wallet inside the same transaction,
	// so the wallet service rides along.
	c.AccountService = accountService.NewAccountService(
		c.AccountRepo,
		c.WalletService,
		c.DB.Pool,
		c.JWTManager,
	)

	// ----------------------------------------
	// ACTIVITY SERVICE
	// ----------------------------------------
	c.ActivityService = activityService.NewActivityService(c.ActivityRepo)

	return nil
}

func (c *Container) initHandlers() error {
	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService)
	c.WalletHandler = walletHandler.NewWalletHandler(c.WalletService)
	c.NoteHandler = noteHandler.NewNoteHandler(c.NoteService)
	c.ActivityHandler = activityHandler.NewActivityHandler(c.ActivityService)

	return nil
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases container resources. Called from graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close Asynq client: %v", err)
		} else {
			log.Println("✅ Asynq client closed")
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis cache: %v", err)
			}
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	log.Println("✅ Container cleanup completed")
}
