// Package app wires configuration into the store, services and change feed
// shared by both binaries.
package app

import (
	"fmt"
	"time"

	"project-team-tracker/internal/cache"
	"project-team-tracker/internal/config"
	"project-team-tracker/internal/database"
	"project-team-tracker/internal/idgen"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/realtime"
	"project-team-tracker/internal/repository"
	"project-team-tracker/internal/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	DB       *gorm.DB
	Services *services.Services
	Hub      *realtime.Hub
	Logger   *zap.Logger
}

// New opens the database and builds the services on top of it.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.Open(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Info("database ready", zap.String("path", cfg.Database.Path))

	hub := realtime.NewHub(log)
	svc := services.New(NewStores(db, cfg.Tracker.CacheTTL), services.Options{
		IDs:            NewGenerator(db, cfg.Tracker.IDSequence),
		Logger:         log,
		Publisher:      hub,
		CascadeDeletes: cfg.Tracker.CascadeDeletes,
	})

	return &App{DB: db, Services: svc, Hub: hub, Logger: log}, nil
}

// NewStores builds the gorm repositories. A positive ttl puts a read-through
// cache in front of task and member lookups.
func NewStores(db *gorm.DB, ttl time.Duration) services.Stores {
	var tasks repository.Repository[models.Task] = repository.NewGorm[models.Task](db)
	var members repository.Repository[models.Member] = repository.NewGorm[models.Member](db)
	if ttl > 0 {
		opts := cache.Options{ConcurrencySafe: true, DefaultTTL: ttl}
		tasks = repository.NewCached(tasks, cache.NewSimpleCache[string, models.Task](opts), func(t *models.Task) string { return t.ID })
		members = repository.NewCached(members, cache.NewSimpleCache[string, models.Member](opts), func(m *models.Member) string { return m.ID })
	}
	return services.Stores{
		Tasks:       tasks,
		Members:     members,
		Assignments: repository.NewAssignments(db),
	}
}

// NewGenerator picks the id sequence backend named by kind.
func NewGenerator(db *gorm.DB, kind string) idgen.Generator {
	if kind == config.SequenceMemory {
		return idgen.NewMemory()
	}
	return idgen.NewStore(db)
}

func (a *App) Close() error {
	return database.Close(a.DB)
}
