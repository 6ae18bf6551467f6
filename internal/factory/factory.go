package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/memorymatch-go/internal/dependencies/clock"
	"github.com/mcoot/memorymatch-go/internal/services/achievement"
	"github.com/mcoot/memorymatch-go/internal/services/auth"
	"github.com/mcoot/memorymatch-go/internal/services/game"
	"github.com/mcoot/memorymatch-go/internal/services/leaderboard"
	"github.com/mcoot/memorymatch-go/internal/services/record"
	"github.com/mcoot/memorymatch-go/internal/storage"
	"github.com/mcoot/memorymatch-go/internal/storage/memory"
	"github.com/mcoot/memorymatch-go/internal/storage/postgres"
	redisstorage "github.com/mcoot/memorymatch-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Catalog            *achievement.Catalog
	AchievementService *achievement.Service
	RecordService      *record.Service
	LeaderboardService *leaderboard.Service
	GameController     *game.Controller
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := postgres.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	catalog := achievement.NewCatalog()
	achievementService := achievement.New(store, catalog, logger)
	recordService := record.New(store, clk, logger)
	leaderboardService := leaderboard.New(store, catalog, logger)
	gameController := game.NewController(store, achievementService, recordService, logger)
	authService := auth.New(store, clk, authCfg, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Catalog:            catalog,
		AchievementService: achievementService,
		RecordService:      recordService,
		LeaderboardService: leaderboardService,
		GameController:     gameController,
		AuthService:        authService,
	}
}
