package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin staff record, a couple of catalog entries, and a draft about page.
// No-op if any staff users exist already.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4)
	`, "admin@shopadmin.local", string(hash), "Admin", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO categories (name, slug) VALUES ('General', 'general')
	`)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO products (sku, name, slug, description, price_cents, currency, stock, active)
		VALUES
			('DEMO-001', 'Demo Mug', 'demo-mug', 'A mug for demos.', 1295, 'EUR', 40, TRUE),
			('DEMO-002', 'Demo Shirt', 'demo-shirt', 'A shirt for demos.', 2450, 'EUR', 15, TRUE)
	`)
	if err != nil {
		return fmt.Errorf("seed insert products: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO content_versions (slug, version, type, status, title, blocks, created_by, updated_by)
		VALUES ('about', 1, 'page', 'draft', 'About Us',
		        '[{"kind":"paragraph","text":"Tell your story here."}]', 'seed', 'seed')
	`)
	if err != nil {
		return fmt.Errorf("seed insert content: %w", err)
	}

	slog.Info("database seeded with development data",
		"admin_email", "admin@shopadmin.local",
	)

	return nil
}
