package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fjod/storefront/internal/config"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/logger"
	"github.com/fjod/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedProduct struct {
	Name        string
	Description string
	Price       string
	Image       string
	Category    string
}

func products() ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(seedCatalog))
	for _, s := range seedCatalog {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("price of %q: %w", s.Name, err)
		}
		out = append(out, &domain.Product{
			Name:        s.Name,
			Description: s.Description,
			Price:       price,
			Image:       s.Image,
			Category:    s.Category,
		})
	}
	return out, nil
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to read env files: %v", err)
	}
	l, err := logger.New(logger.Options{Service: "seed-catalog", Level: os.Getenv("LOG_LEVEL")})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer l.Sync()

	db, err := config.LoadDatabase()
	if err != nil {
		l.Fatal("invalid database configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := seed(ctx, db)
	if err != nil {
		l.Fatal("seeding failed", zap.Error(err))
	}
	l.Info("catalog seeded", zap.Int("products", n))
}

func seed(ctx context.Context, db config.Database) (int, error) {
	creds := &repository.Credentials{
		Driver:            db.Driver,
		DatabaseURL:       db.URL,
		SQLitePath:        db.SQLitePath,
		MigrationsDirPath: db.MigrationsPath,
	}
	repo, err := repository.NewRepository(ctx, creds)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		return 0, err
	}

	catalog, err := products()
	if err != nil {
		return 0, err
	}
	if err := repo.ReplaceCatalog(ctx, catalog); err != nil {
		return 0, err
	}
	return len(catalog), nil
}
