package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"compuscan/pkg/config"
)

// SeedAdmin creates the bootstrap administrator account. Safe to run
// repeatedly.
func SeedAdmin(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("seeding administrator account...")

	if err := seedAdminAccount(ctx, db, cfg.Admin); err != nil {
		log.Fatalf("admin seeder failed: %v", err)
	}

	log.Println("administrator account ready")
}

// SeedDemo loads a handful of demo users with equipment, for local
// development only.
func SeedDemo(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding demo data...")

	if err := seedDemoUsers(ctx, db); err != nil {
		log.Fatalf("demo seeder failed: %v", err)
	}

	log.Println("demo data ready")
}
