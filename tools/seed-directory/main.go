// seed-directory loads a small fixture set of members, admins, and staff into
// the directory tables for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type userRow struct {
	fullName string
	email    string
	phone    string
	role     string
}

type staffRow struct {
	fullName string
	email    string
	role     string
}

var users = []userRow{
	{"Jordan Blake", "jordan@example.com", "+15550100", "member"},
	{"Priya Nair", "priya@example.com", "+15550101", "member"},
	{"Chris Duarte", "chris@example.com", "", "member"},
	{"Alex Morgan", "alex.admin@example.com", "", "admin"},
}

var staff = []staffRow{
	{"Taylor Reed", "taylor@example.com", "trainer"},
	{"Sam Okafor", "sam@example.com", "trainer"},
	{"Dana Ruiz", "dana@example.com", "nutritionist"},
}

func main() {
	var (
		dbURL    = flag.String("database-url", getenv("DATABASE_URL", ""), "postgres connection string")
		password = flag.String("password", getenv("SEED_PASSWORD", "changeme"), "password for every seeded account")
	)
	flag.Parse()

	if strings.TrimSpace(*dbURL) == "" {
		fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, *dbURL)
	if err != nil {
		fatal(err.Error())
	}
	defer conn.Close(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fatal(err.Error())
	}

	for _, u := range users {
		var phone *string
		if u.phone != "" {
			phone = &u.phone
		}
		_, err := conn.Exec(ctx, `
			INSERT INTO users (id, full_name, email, phone, password_hash, role)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO NOTHING
		`, uuid.NewString(), u.fullName, u.email, phone, string(hash), u.role)
		if err != nil {
			fatal(fmt.Sprintf("seeding user %s: %v", u.email, err))
		}
		fmt.Printf("user   %-12s %s\n", u.role, u.email)
	}

	for _, s := range staff {
		_, err := conn.Exec(ctx, `
			INSERT INTO staff (id, full_name, email, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING
		`, uuid.NewString(), s.fullName, s.email, s.role)
		if err != nil {
			fatal(fmt.Sprintf("seeding staff %s: %v", s.email, err))
		}
		fmt.Printf("staff  %-12s %s\n", s.role, s.email)
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
	os.Exit(1)
}
