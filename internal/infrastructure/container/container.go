package container

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/vanmates/vanmates-backend/internal/config"
	"github.com/vanmates/vanmates-backend/internal/delivery/http"
	"github.com/vanmates/vanmates-backend/internal/delivery/http/handler"
	"github.com/vanmates/vanmates-backend/internal/delivery/http/middleware"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/cache"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/database"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/server"
	"github.com/vanmates/vanmates-backend/internal/repository/postgres"
	"github.com/vanmates/vanmates-backend/internal/usecase/location"
	"github.com/vanmates/vanmates-backend/internal/usecase/nearby"
	"github.com/vanmates/vanmates-backend/internal/usecase/profile"
	"github.com/vanmates/vanmates-backend/internal/usecase/zones"
)

const zoneCacheTTL = 30 * time.Second

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional: without it every zone query recomputes.
	var redisClient *redis.Client
	var zoneCache *cache.ZoneCache
	if cfg.Redis.Host != "" {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			fmt.Printf("Warning: failed to initialize redis, zone caching disabled: %v\n", err)
		} else {
			zoneCache = cache.NewZoneCache(redisClient, zoneCacheTTL)
		}
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)

	// Initialize use cases. The zone cache doubles as the invalidation hook
	// for mutations; a nil *ZoneCache must stay a nil interface.
	profileUseCase := profile.NewProfileUseCase(profileRepo, profileInvalidator(zoneCache))
	locationUseCase := location.NewLocationUseCase(profileRepo, locationInvalidator(zoneCache))
	nearbyUseCase := nearby.NewNearbyUseCase(profileRepo)
	zonesUseCase := zones.NewZonesUseCase(profileRepo, zonesCache(zoneCache))

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	locationHandler := handler.NewLocationHandler(locationUseCase)
	mapHandler := handler.NewMapHandler(nearbyUseCase, zonesUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Initialize router
	router := http.NewRouter(
		profileHandler,
		locationHandler,
		mapHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

func profileInvalidator(c *cache.ZoneCache) profile.Invalidator {
	if c == nil {
		return nil
	}
	return c
}

func locationInvalidator(c *cache.ZoneCache) location.Invalidator {
	if c == nil {
		return nil
	}
	return c
}

func zonesCache(c *cache.ZoneCache) zones.Cache {
	if c == nil {
		return nil
	}
	return c
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
