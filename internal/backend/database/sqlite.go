package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const imageColumns = "id, title, width, filter_id, image, created_at, processed_image"

type SQLiteDatabase struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteDatabase(connectionString string) (DatabaseService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, storageError("open sqlite", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	return &SQLiteDatabase{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteDatabase) CreateDatabase(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+CollectionName+` (
		id TEXT PRIMARY KEY,
		title TEXT,
		width REAL,
		filter_id REAL,
		image TEXT,
		created_at TEXT,
		processed_image TEXT
	)`)
	if err != nil {
		return storageError("create table", err)
	}
	return nil
}

func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteDatabase) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageError("ping sqlite", err)
	}
	return nil
}

func (s *SQLiteDatabase) CreateImage(ctx context.Context, image *Image) (*Image, error) {
	stored := *image
	stored.ID = generateID()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO "+CollectionName+" ("+imageColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		stored.ID, nullable(stored.Title), nullable(stored.Width), nullable(stored.FilterID),
		nullable(stored.Image), nullable(stored.CreatedAt), nullable(stored.ProcessedImage))
	if err != nil {
		return nil, storageError("insert image", err)
	}

	return &stored, nil
}

func (s *SQLiteDatabase) GetImages(ctx context.Context) ([]*Image, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+imageColumns+" FROM "+CollectionName+" ORDER BY rowid")
	if err != nil {
		return nil, storageError("query images", err)
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	images := make([]*Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, storageError("scan image", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate images", err)
	}
	return images, nil
}

func (s *SQLiteDatabase) GetImageByID(ctx context.Context, id string) (*Image, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+imageColumns+" FROM "+CollectionName+" WHERE id = ?", oid.Hex())
	img, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("query image", err)
	}
	return img, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanImage(row scanner) (*Image, error) {
	var img Image
	err := row.Scan(&img.ID, &img.Title, &img.Width, &img.FilterID, &img.Image, &img.CreatedAt, &img.ProcessedImage)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// nullable maps an absent field to SQL NULL.
func nullable[T any](value *T) any {
	if value == nil {
		return nil
	}
	return *value
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}
