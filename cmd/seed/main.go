package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/config"
	"github.com/oksasatya/smart-health-api/internal/application/identity"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/domain/repository"
	pginfra "github.com/oksasatya/smart-health-api/internal/infrastructure/postgres"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
)

// demoPassword is stored hashed only; logins never check it.
const demoPassword = "password123"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	accounts := pginfra.NewAccountRepository(pool)
	for _, ident := range identity.Templates() {
		acc := entity.AccountFromIdentity(ident, hash)
		acc.ID = identity.LoginID(ident.Role, ident.Email)
		fields := logrus.Fields{"email": acc.Email, "role": acc.Role}
		err := accounts.Create(ctx, acc)
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			logger.WithFields(fields).Info("demo account already present")
		case err != nil:
			logger.WithError(err).WithFields(fields).Fatal("failed to seed demo account")
		default:
			logger.WithFields(fields).WithField("id", acc.ID).Info("seeded demo account")
		}
	}
}
