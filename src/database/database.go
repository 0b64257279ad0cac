package database

import (
	"database/sql"
	stdlog "log"

	_ "modernc.org/sqlite"

	"github.com/username/taxhawk/backend/src/logger"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		user_name TEXT NOT NULL,
		financial_year TEXT NOT NULL,
		current_regime TEXT NOT NULL,
		recommended_regime TEXT NOT NULL,
		total_savings REAL NOT NULL,
		result_json TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_user_name ON analyses(user_name);
	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	`

	if _, err := DB.Exec(createTableStatement); err != nil {
		stdlog.Fatalf("failed to create tables: %v", err)
	}
}
