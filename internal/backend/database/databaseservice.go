package database

import "context"

type DatabaseService interface {
	// CreateDatabase prepares the schema. It is idempotent.
	CreateDatabase(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	// CreateImage assigns a new id to image, persists it and returns the stored record.
	CreateImage(ctx context.Context, image *Image) (*Image, error)
	// GetImages returns every stored image in storage order. It never returns nil on success.
	GetImages(ctx context.Context) ([]*Image, error)
	// GetImageByID returns nil without error when no image has the given id.
	GetImageByID(ctx context.Context, id string) (*Image, error)
}
