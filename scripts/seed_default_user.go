package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Seeds the default user (id 1) that requests without a profile id resolve
// to. Safe to run repeatedly.
func main() {
	fmt.Println("adding default user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")
	name := os.Getenv("DEFAULT_USER_NAME")
	if name == "" {
		name = "Subhajit Chakraborty"
	}
	username := os.Getenv("DEFAULT_USER_USERNAME")
	if username == "" {
		username = "subhajit"
	}

	profileID := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, profile_id, username, name, intro_text)
		VALUES (1, $1, $2, $3, '')
		ON CONFLICT (id) DO UPDATE SET username = $2, name = $3
	`
	_, err = pool.Exec(context.Background(), query, profileID, username, name)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`SELECT setval(pg_get_serial_sequence('users', 'id'), GREATEST((SELECT MAX(id) FROM users), 1))`)
	if err != nil {
		log.Fatalf("cannot bump users id sequence: %v", err)
	}

	fmt.Printf("added or updated default user '%s' successfully!\n", username)
}
