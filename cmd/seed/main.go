package main

import (
	"context"
	"errors"
	"time"

	"github.com/random-lottery/AIPortal/internal/config"
	"github.com/random-lottery/AIPortal/internal/database"
	"github.com/random-lottery/AIPortal/internal/features/portal"
	"github.com/random-lottery/AIPortal/internal/features/user"
	"github.com/random-lottery/AIPortal/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seed creates a demo user with default portal settings
func Seed(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	settingsRepo portal.SettingsRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("🌱 Starting Database Seeding...")

				if err := userRepo.EnsureIndexes(ctx); err != nil {
					logger.Warn("Failed to ensure user indexes", zap.Error(err))
				}
				if err := settingsRepo.EnsureIndexes(ctx); err != nil {
					logger.Warn("Failed to ensure settings indexes", zap.Error(err))
				}

				demoEmail := "demo@aiportal.local"
				existing, err := userRepo.FindByEmail(ctx, demoEmail)
				if err == nil {
					logger.Info("Demo user exists, skipping", zap.String("email", demoEmail))
					seedSettings(ctx, settingsRepo, existing.ID.Hex(), logger)
					return
				}
				if !errors.Is(err, user.ErrNotFound) {
					logger.Error("Failed to look up demo user", zap.Error(err))
					return
				}

				hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), 10)
				if err != nil {
					logger.Error("Failed to hash demo password", zap.Error(err))
					return
				}

				demo := &user.User{
					Username:  "demo",
					Email:     demoEmail,
					Password:  string(hashed),
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}
				if err := userRepo.Create(ctx, demo); err != nil {
					logger.Error("Failed to create demo user", zap.Error(err))
					return
				}
				logger.Info("Created demo user", zap.String("email", demoEmail))

				seedSettings(ctx, settingsRepo, demo.ID.Hex(), logger)
			}()
			return nil
		},
	})
}

func seedSettings(ctx context.Context, settingsRepo portal.SettingsRepository, userID string, logger *zap.Logger) {
	if err := settingsRepo.Insert(ctx, portal.DefaultSettings(userID)); err != nil {
		if errors.Is(err, portal.ErrSettingsExists) {
			logger.Info("Portal settings exist, skipping", zap.String("userId", userID))
			return
		}
		logger.Error("Failed to seed portal settings", zap.Error(err))
		return
	}
	logger.Info("Seeded default portal settings", zap.String("userId", userID))
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			user.NewUserRepository,
			portal.NewSettingsRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
