package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/eren/coursehub/internal/app/models"
	appRepos "github.com/eren/coursehub/internal/app/repositories"
	"github.com/eren/coursehub/internal/pkg/apperrors"
	"github.com/eren/coursehub/internal/pkg/auth"
)

// CreateDefaultData creates demo accounts for development if they don't
// exist. Intended for development mode only; the passwords are placeholders.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (demo accounts)...")
	var finalErr error

	accounts := []struct {
		name     string
		email    string
		password string
		role     appModels.RoleType
	}{
		{"Demo Instructor", "instructor@example.com", "instructor123", appModels.RoleInstructor},
		{"Demo Student", "student@example.com", "student123", appModels.RoleStudent},
	}

	for _, account := range accounts {
		exists, err := userRepo.EmailExists(ctx, account.email)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error checking demo account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			lgr.Debug().Str("email", account.email).Msg("Demo account already present, skipping")
			continue
		}

		hashed, err := auth.HashPassword(account.password)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error hashing demo password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Name:     account.name,
			Email:    account.email,
			Password: hashed,
			RoleType: account.role,
		}

		err = userRepo.Create(ctx, user)
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating demo account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
