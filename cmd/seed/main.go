package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/castwave/castwave/config"
	"github.com/castwave/castwave/internal/domain/entity"
	"github.com/castwave/castwave/pkg/helpers"
)

// Seeds the demo and admin accounts directly, useful before the HTTP
// endpoints are reachable.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	demoID := upsertUser(db, cfg.DemoUsername, cfg.DemoEmail, cfg.DemoPassword, entity.RoleUser)
	fmt.Printf("seeded demo user: id=%s email=%s\n", demoID, cfg.DemoEmail)

	adminID := upsertUser(db, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword, entity.RoleAdmin)
	fmt.Printf("seeded admin user: id=%s email=%s\n", adminID, cfg.AdminEmail)
}

func upsertUser(db *sql.DB, username, email, password, role string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, username, email, hash, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
