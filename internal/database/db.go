package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/campora/campground-api/internal/config"
)

// Open connects to MySQL using the app configuration and verifies the
// connection before returning the pool.
func Open(cfg config.Config) (*sql.DB, error) {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the application tables when they do not exist yet.
// Statements are idempotent so the server can run them on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			username VARCHAR(64) NOT NULL,
			first_name VARCHAR(64) NOT NULL DEFAULT '',
			last_name VARCHAR(64) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL,
			avatar_url VARCHAR(512) NOT NULL DEFAULT '',
			password_hash VARCHAR(100) NOT NULL,
			is_admin TINYINT(1) NOT NULL DEFAULT 0,
			is_paid TINYINT(1) NOT NULL DEFAULT 0,
			reset_token CHAR(40) NULL,
			reset_expires DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_username (username),
			UNIQUE KEY uq_users_email (email),
			KEY idx_users_reset_token (reset_token)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS campgrounds (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(255) NOT NULL,
			price_cents INT UNSIGNED NOT NULL DEFAULT 0,
			description TEXT NOT NULL,
			location VARCHAR(255) NOT NULL DEFAULT '',
			lat DOUBLE NULL,
			lng DOUBLE NULL,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			image_id VARCHAR(255) NOT NULL DEFAULT '',
			author_id BIGINT UNSIGNED NOT NULL,
			author_name VARCHAR(64) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_campgrounds_author (author_id),
			CONSTRAINT fk_campgrounds_author FOREIGN KEY (author_id) REFERENCES users (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS comments (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			campground_id BIGINT UNSIGNED NOT NULL,
			author_id BIGINT UNSIGNED NOT NULL,
			author_name VARCHAR(64) NOT NULL,
			body TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_comments_campground (campground_id),
			CONSTRAINT fk_comments_campground FOREIGN KEY (campground_id) REFERENCES campgrounds (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
