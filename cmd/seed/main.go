package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushours/officehours/internal/db"
	"github.com/campushours/officehours/internal/identity"
)

// Everyone seeded gets the same known password so the demo accounts are
// usable through /login.
const seedPassword = "officehours-demo"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	hash, err := identity.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	professorIDs, err := seedUsers(context.Background(), pool, identity.RoleProfessor, 20, hash)
	if err != nil {
		log.Fatalf("seed professors: %v", err)
	}
	if _, err := seedUsers(context.Background(), pool, identity.RoleStudent, 200, hash); err != nil {
		log.Fatalf("seed students: %v", err)
	}
	if err := seedWindows(context.Background(), pool, professorIDs); err != nil {
		log.Fatalf("seed availability: %v", err)
	}

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, role identity.Role, count int, passwordHash string) ([]uuid.UUID, error) {
	log.Printf("seeding %d %ss", count, role)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		username := gofakeit.Username()

		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, username, password_hash, role, created_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (username) DO NOTHING
		`, id, username, passwordHash, string(role))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// seedWindows gives every professor a few non-overlapping workday windows
// over the coming week.
func seedWindows(ctx context.Context, pool *pgxpool.Pool, professorIDs []uuid.UUID) error {
	log.Printf("seeding availability for %d professors", len(professorIDs))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, profID := range professorIDs {
		for day := 1; day <= 5; day++ {
			d := time.Now().UTC().AddDate(0, 0, day)
			start := time.Date(d.Year(), d.Month(), d.Day(), gofakeit.Number(9, 13), 0, 0, 0, time.UTC)
			end := start.Add(time.Duration(gofakeit.Number(2, 4)) * time.Hour)

			_, err := tx.Exec(ctx, `
				INSERT INTO availability_windows (id, professor_id, start_time, end_time, created_at)
				VALUES ($1, $2, $3, $4, now())
			`, uuid.New(), profID, start, end)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
