package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"compuscan/pkg/config"
	"compuscan/pkg/database/postgresql"
	"compuscan/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	runAdmin := flag.Bool("admin", false, "create the bootstrap administrator account")
	runDemo := flag.Bool("demo", false, "load demo users and equipment")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runAdmin && !*runDemo && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()

	if err := postgresql.RunMigrations(cfg.Postgres.DSN, "migrations"); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	db, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer db.Close()

	if *runAll || *runAdmin {
		seeders.SeedAdmin(db, cfg)
	}
	if *runAll || *runDemo {
		seeders.SeedDemo(db)
	}
}
