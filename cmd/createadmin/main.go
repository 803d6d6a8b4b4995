// Command createadmin provisions an administrator account. It is the
// only way to create admins; no network endpoint exposes this.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/dkote/mood-journal/internal/repositories"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	configPath := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()

	if err := run(context.Background(), *configPath, os.Stdin); err != nil {
		log.Fatalf("createadmin failed: %v", err)
	}
}

func run(ctx context.Context, configPath string, in *os.File) error {
	_ = godotenv.Load(configPath)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "user"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "moodjournal"),
	)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()

	reader := bufio.NewReader(in)

	fmt.Print("Enter admin username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	fmt.Print("Enter admin password: ")
	passwordBytes, err := readPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}
	if len(passwordBytes) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	repo := repositories.NewAdminWriteRepository(db)
	id, err := repo.Save(ctx, username, string(hash))
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("Admin user %q created successfully (id %d).\n", username, id)
	return nil
}
