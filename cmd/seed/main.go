package main

import (
	"context"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	logger := log.Default()
	if err := (migration.Runner{Dir: cfg.Migrations.Dir, Logger: logger}).Run(ctx, db.SQLDB()); err != nil {
		log.Printf("migrations failed: %v", err)
		return
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}).Run(ctx, db); err != nil {
		log.Printf("seeding failed: %v", err)
		return
	}
	log.Printf("[Seeder] demo data ready: %s / %s (password %q)", seeder.DemoEmployerEmail, seeder.DemoSeekerEmail, seeder.DemoPassword)
}
