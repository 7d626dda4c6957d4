package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL, configures the pool and verifies the connection
// with a short ping.  parseTime maps DATETIME columns onto time.Time and
// loc=UTC keeps booking times consistent across the stack.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = user + ":" + pass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// Bootstrap creates the application tables when they do not exist yet.  It
// runs at startup so a fresh database is usable without a separate migration
// step.  Statements are idempotent.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS foods (
			id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			price BIGINT NOT NULL,
			image VARCHAR(500) NOT NULL,
			description TEXT,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			code VARCHAR(20) NOT NULL,
			customer_name VARCHAR(120) NOT NULL,
			customer_phone VARCHAR(20) NOT NULL,
			customer_email VARCHAR(120) NOT NULL,
			guests INT NOT NULL,
			booking_datetime DATETIME NOT NULL,
			note TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			total_amount BIGINT NOT NULL DEFAULT 0,
			status_history TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_bookings_code (code),
			INDEX idx_bookings_status (status),
			INDEX idx_bookings_datetime (booking_datetime)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS booking_items (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT UNSIGNED NOT NULL,
			food_id INT UNSIGNED NULL,
			food_name VARCHAR(120) NOT NULL,
			price BIGINT NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			CONSTRAINT fk_booking_items_booking FOREIGN KEY (booking_id)
				REFERENCES bookings (id) ON DELETE CASCADE,
			INDEX idx_booking_items_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS admin_users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			full_name VARCHAR(120) NOT NULL,
			email VARCHAR(120) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_admin_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			session_id VARCHAR(36) NOT NULL,
			role VARCHAR(20) NOT NULL,
			message TEXT NOT NULL,
			food_snapshot TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_chat_messages_session (session_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
