package database

import (
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var DB *sql.DB

func InitDB(dbPath string) error {
	var err error
	DB, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Duplicate alerts for the same URL, owner and target are rejected
	// here, at the storage boundary.
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		image_url TEXT DEFAULT '',
		price REAL NOT NULL DEFAULT 0,
		target_price REAL NOT NULL,
		user_email TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (url, user_email, target_price)
	);`
	_, err = DB.Exec(createTableQuery)
	if err != nil {
		return fmt.Errorf("failed to create alerts table: %w", err)
	}

	createMetricsTable := `
		CREATE TABLE IF NOT EXISTS metrics (
		metric_name TEXT NOT NULL PRIMARY KEY,
		metric_value REAL NOT NULL
	);`
	_, err = DB.Exec(createMetricsTable)
	if err != nil {
		return fmt.Errorf("failed to create metrics table: %w", err)
	}

	log.Println("Database initialized successfully.")
	return nil
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
