package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	// Drivers register themselves with database/sql; the matching provider
	// packages register their methods factories the same way.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"

	_ "github.com/shibukawa/schemakit/methods/mysql"
	_ "github.com/shibukawa/schemakit/methods/postgres"
	_ "github.com/shibukawa/schemakit/methods/sqlite"
	_ "github.com/shibukawa/schemakit/methods/sqlserver"
)

var ErrUnknownDatabaseURL = errors.New("cannot detect database type from URL")

// loadEnvFiles loads a .env file from the current directory if one exists,
// so connection strings can reference ${VAR} values without exporting them.
func loadEnvFiles() error {
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return nil
}

// openDatabase maps a connection URL to a registered driver and opens it.
// typeOverride forces the driver choice when the URL scheme is ambiguous.
func openDatabase(dbURL, typeOverride string) (*sql.DB, error) {
	dbURL = os.ExpandEnv(dbURL)

	driverName, dsn, err := resolveDriver(dbURL, typeOverride)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func resolveDriver(dbURL, typeOverride string) (driverName, dsn string, err error) {
	scheme, rest, hasScheme := strings.Cut(dbURL, "://")
	if typeOverride != "" {
		scheme = typeOverride
	} else if !hasScheme {
		// Bare paths are SQLite database files.
		scheme = "sqlite"
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql", "pgx":
		return "pgx", dbURL, nil
	case "mysql", "mariadb":
		// go-sql-driver DSNs carry no scheme prefix.
		if hasScheme {
			return "mysql", rest, nil
		}
		return "mysql", dbURL, nil
	case "sqlite", "sqlite3", "file":
		if hasScheme && scheme != "file" {
			return "sqlite3", rest, nil
		}
		return "sqlite3", dbURL, nil
	case "sqlserver", "mssql":
		return "sqlserver", dbURL, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownDatabaseURL, dbURL)
	}
}

// ensureDir creates a directory if it doesn't exist
func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}

// writeFile writes content to a file, creating directories if necessary
func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return os.WriteFile(path, content, 0644)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
