package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/facility-ticketing/internal/auth"
	"github.com/spec-kit/facility-ticketing/internal/domain"
)

type seedUser struct {
	username string
	password string
	role     domain.Role
}

type seedType struct {
	name string
	role domain.Role
}

var seedUsers = []seedUser{
	{"admin", "admin123", domain.RoleAdmin},
	{"facility", "facility123", domain.RoleFacility},
	{"cleaner", "cleaner123", domain.RoleCleaner},
	{"user", "user123", domain.RoleUser},
}

var seedTypes = []seedType{
	{"Plumbing issue", domain.RoleFacility},
	{"Electrical issue", domain.RoleFacility},
	{"HVAC / Air conditioning", domain.RoleFacility},
	{"Furniture damage", domain.RoleFacility},
	{"Cleaning request", domain.RoleCleaner},
	{"Trash / waste issue", domain.RoleCleaner},
	{"Restroom cleaning", domain.RoleCleaner},
	{"IT / Network", domain.RoleFacility},
	{"Access badge / Door", domain.RoleFacility},
	{"Security concern", domain.RoleFacility},
	{"Other", domain.RoleAdmin},
}

// Seed inserts the role accounts and ticket types if they are not present.
// Passwords are hashed here so no hash material lives in SQL files.
func Seed(ctx context.Context, pool *pgxpool.Pool, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping seed")
		return nil
	}

	for _, u := range seedUsers {
		var exists bool
		if err := pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`, u.username,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check seed user %s: %w", u.username, err)
		}
		if exists {
			continue
		}
		hash, err := auth.HashPassword(u.password, bcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", u.username, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (username, password_hash, role) VALUES ($1,$2,$3)
             ON CONFLICT (username) DO NOTHING`,
			u.username, hash, u.role,
		); err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
		logger.Info("seeded user", zap.String("username", u.username), zap.String("role", string(u.role)))
	}

	for _, t := range seedTypes {
		if _, err := pool.Exec(ctx,
			`INSERT INTO ticket_types (name, default_assignee_role) VALUES ($1,$2)
             ON CONFLICT (name) DO NOTHING`,
			t.name, t.role,
		); err != nil {
			return fmt.Errorf("seed ticket type %s: %w", t.name, err)
		}
	}

	logger.Info("seed complete", zap.Int("users", len(seedUsers)), zap.Int("ticket_types", len(seedTypes)))
	return nil
}
