package main

import (
	"context"
	"fmt"
	"os"

	"github.com/haisanviet/backoffice-go/internal/config"
	"github.com/haisanviet/backoffice-go/internal/fixtures"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/haisanviet/backoffice-go/internal/repository/postgresql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@haisanviet.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		fmt.Println("ADMIN_PASSWORD is required")
		return
	}

	seeder := fixtures.NewSeeder(
		postgresql.NewUserRepository(db),
		postgresql.NewRBACRepository(db),
		postgresql.NewSalaryConfigRepository(db),
		postgresql.NewCatalogRepository(db),
	)

	if err := seeder.Run(context.Background(), adminEmail, adminPassword); err != nil {
		fmt.Println("Seed error:", err)
		return
	}

	fmt.Println("Seed complete")
}
