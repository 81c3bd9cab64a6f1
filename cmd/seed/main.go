package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mirak2305/hilfe-entreprise-backend/config"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
)

// Seeds the reference countries and a bootstrap super admin. Safe to run
// repeatedly: existing rows are left alone.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	countries := []struct{ name, code string }{
		{"France", "FR"},
		{"Belgique", "BE"},
		{"Suisse", "CH"},
		{"Luxembourg", "LU"},
		{"Allemagne", "DE"},
	}
	for _, c := range countries {
		if _, err := db.Exec(`
			INSERT INTO countries (name, code) VALUES ($1, $2)
			ON CONFLICT (code) DO NOTHING
		`, c.name, c.code); err != nil {
			log.Fatalf("failed to seed country %s: %v", c.code, err)
		}
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, first_name, last_name, role, status)
		VALUES (lower($1), $2, 'Super', 'Admin', 'super_admin', 'active')
		ON CONFLICT (email) DO UPDATE SET role = 'super_admin', status = 'active'
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed super admin: %v", err)
	}
	fmt.Printf("seeded super admin: id=%s email=%s\n", id, email)
}
