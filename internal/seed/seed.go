package seed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/config"
	"github.com/instracore/backend/internal/pkg/auth"
)

// CreateDefaultData bootstraps an admin account when the database has none.
// The admin credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; when they are
// not set, the first admin is created through the setup endpoint instead.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.AdminExists(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing admin user")
		return err
	}
	if exists {
		lgr.Debug().Msg("Admin user already exists, skipping seed")
		return nil
	}

	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	if adminEmail == "" || adminPassword == "" {
		lgr.Info().Msg("No admin user found; waiting for first-run setup")
		return nil
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	now := time.Now()
	admin := &models.User{
		Username:   "admin",
		Email:      adminEmail,
		Password:   hashedPassword,
		FirstName:  "System",
		LastName:   "Administrator",
		Role:       models.RoleAdmin,
		IsActive:   true,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating seeded admin user")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Seeded admin user created")
	return nil
}
