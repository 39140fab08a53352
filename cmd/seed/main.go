package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/seuhd/campuscoffee/config"
	"github.com/seuhd/campuscoffee/internal/application"
	"github.com/seuhd/campuscoffee/internal/domain/entity"
	pginfra "github.com/seuhd/campuscoffee/internal/infrastructure/postgres"
	"github.com/seuhd/campuscoffee/pkg/helpers"
)

// Dev fixture loader: wipes existing users, restarts the id sequence,
// and inserts the fixture set through the domain service so the same
// invariants apply as for API traffic.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	svc := application.NewService(pginfra.NewUserRepository(pool), logger)

	logger.Info("deleting existing data...")
	if err := svc.Clear(ctx); err != nil {
		log.Fatalf("failed to clear users: %v", err)
	}

	logger.Info("loading initial data...")
	created := 0
	for _, u := range fixtureUsers() {
		if _, err := svc.Upsert(ctx, u); err != nil {
			log.Fatalf("failed to seed user %q: %v", u.Name, err)
		}
		created++
	}
	logger.Infof("created %d users", created)
}

func fixtureUsers() []*entity.User {
	return []*entity.User{
		{Name: "jdoe", EmailAddress: "jane.doe@campus.example", FirstName: "Jane", LastName: "Doe"},
		{Name: "msmith", EmailAddress: "max.smith@campus.example", FirstName: "Max", LastName: "Smith"},
		{Name: "barista_1", EmailAddress: "barista@campus.example", FirstName: "Bea", LastName: "Rista"},
	}
}
