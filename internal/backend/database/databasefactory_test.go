package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestNewDatabase_SQLite(t *testing.T) {
	ds, err := NewDatabase(context.Background(), TypeSQLite, ":memory:", "")
	if err != nil {
		t.Fatalf("NewDatabase(sqlite) error: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	if _, ok := ds.(*SQLiteDatabase); !ok {
		t.Fatalf("expected *SQLiteDatabase, got %T", ds)
	}
	// schema must already exist
	if _, err := ds.GetImages(context.Background()); err != nil {
		t.Fatalf("GetImages error: %v", err)
	}
}

func TestNewDatabase_Redis(t *testing.T) {
	server := miniredis.RunT(t)
	ds, err := NewDatabase(context.Background(), TypeRedis, "redis://"+server.Addr(), "")
	if err != nil {
		t.Fatalf("NewDatabase(redis) error: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	if _, ok := ds.(*RedisDatabase); !ok {
		t.Fatalf("expected *RedisDatabase, got %T", ds)
	}
}

func TestNewDatabase_UnsupportedType(t *testing.T) {
	if _, err := NewDatabase(context.Background(), "postgres", "", ""); err == nil {
		t.Fatal("expected error for unsupported database type, got nil")
	}
}
