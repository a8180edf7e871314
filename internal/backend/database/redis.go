package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// orderKey keeps ids in insertion order since hash iteration order is undefined.
const orderKey = CollectionName + ":order"

// RedisDatabase stores each image as a JSON document in the CollectionName hash.
type RedisDatabase struct {
	client *redis.Client
}

func NewRedisDatabase(connectionString string) (DatabaseService, error) {
	opts, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w", err)
	}
	return &RedisDatabase{client: redis.NewClient(opts)}, nil
}

// CreateDatabase checks connectivity. Redis needs no schema.
func (r *RedisDatabase) CreateDatabase(ctx context.Context) error {
	return r.Ping(ctx)
}

func (r *RedisDatabase) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return storageError("ping redis", err)
	}
	return nil
}

func (r *RedisDatabase) Close() error {
	return r.client.Close()
}

func (r *RedisDatabase) CreateImage(ctx context.Context, image *Image) (*Image, error) {
	stored := *image
	stored.ID = generateID()

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, storageError("encode image", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, CollectionName, stored.ID, data)
		pipe.RPush(ctx, orderKey, stored.ID)
		return nil
	})
	if err != nil {
		return nil, storageError("insert image", err)
	}
	return &stored, nil
}

func (r *RedisDatabase) GetImages(ctx context.Context) ([]*Image, error) {
	ids, err := r.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, storageError("list image ids", err)
	}

	images := make([]*Image, 0, len(ids))
	if len(ids) == 0 {
		return images, nil
	}

	values, err := r.client.HMGet(ctx, CollectionName, ids...).Result()
	if err != nil {
		return nil, storageError("fetch images", err)
	}
	for i, value := range values {
		// ids removed from the hash outside this service are skipped
		raw, ok := value.(string)
		if !ok {
			continue
		}
		img, err := decodeImage(raw)
		if err != nil {
			return nil, storageError(fmt.Sprintf("decode image %s", ids[i]), err)
		}
		images = append(images, img)
	}
	return images, nil
}

func (r *RedisDatabase) GetImageByID(ctx context.Context, id string) (*Image, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	raw, err := r.client.HGet(ctx, CollectionName, oid.Hex()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("fetch image", err)
	}

	img, err := decodeImage(raw)
	if err != nil {
		return nil, storageError("decode image", err)
	}
	return img, nil
}

func decodeImage(raw string) (*Image, error) {
	var img Image
	if err := json.Unmarshal([]byte(raw), &img); err != nil {
		return nil, err
	}
	return &img, nil
}
