package database

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	TypeSQLite  = "sqlite"
	TypeRedis   = "redis"
	TypeMongoDB = "mongodb"
)

// NewDatabase opens the backend named by databaseType. databaseName is only
// used by backends that address a named database inside the server.
func NewDatabase(ctx context.Context, databaseType, connectionString, databaseName string) (database DatabaseService, err error) {
	switch databaseType {
	case TypeSQLite:
		database, err = NewSQLiteDatabase(connectionString)
	case TypeRedis:
		database, err = NewRedisDatabase(connectionString)
	case TypeMongoDB:
		database, err = NewMongoDatabase(connectionString, databaseName)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", databaseType)
	}
	if err != nil {
		return nil, err
	}

	// Ensure database schema exists (idempotent), important for in-memory SQLite
	slog.Info("initializing database schema", "type", databaseType)
	if err = database.CreateDatabase(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	return database, nil
}
