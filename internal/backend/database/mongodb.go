package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMongoDatabaseName = "imagerecords"

type MongoDatabase struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// mongoImage is the stored document. The id is kept as a native ObjectID.
type mongoImage struct {
	ID             bson.ObjectID `bson:"_id"`
	Title          *string       `bson:"title,omitempty"`
	Width          *float64      `bson:"width,omitempty"`
	FilterID       *float64      `bson:"filterId,omitempty"`
	Image          *string       `bson:"image,omitempty"`
	CreatedAt      *string       `bson:"createdAt,omitempty"`
	ProcessedImage *string       `bson:"processedImage,omitempty"`
}

func NewMongoDatabase(connectionString, databaseName string) (DatabaseService, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, storageError("connect mongodb", err)
	}
	if databaseName == "" {
		databaseName = defaultMongoDatabaseName
	}
	return &MongoDatabase{
		client:     client,
		collection: client.Database(databaseName).Collection(CollectionName),
	}, nil
}

// CreateDatabase checks connectivity. Collections are created on first insert.
func (m *MongoDatabase) CreateDatabase(ctx context.Context) error {
	return m.Ping(ctx)
}

func (m *MongoDatabase) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, nil); err != nil {
		return storageError("ping mongodb", err)
	}
	return nil
}

func (m *MongoDatabase) Close() error {
	return m.client.Disconnect(context.Background())
}

func (m *MongoDatabase) CreateImage(ctx context.Context, image *Image) (*Image, error) {
	doc := toMongoImage(image)
	doc.ID = bson.NewObjectID()

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		return nil, storageError("insert image", err)
	}
	return doc.toImage(), nil
}

func (m *MongoDatabase) GetImages(ctx context.Context) ([]*Image, error) {
	cursor, err := m.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, storageError("find images", err)
	}

	var docs []mongoImage
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageError("decode images", err)
	}

	images := make([]*Image, 0, len(docs))
	for i := range docs {
		images = append(images, docs[i].toImage())
	}
	return images, nil
}

func (m *MongoDatabase) GetImageByID(ctx context.Context, id string) (*Image, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc mongoImage
	err = m.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(fmt.Sprintf("find image %s", id), err)
	}
	return doc.toImage(), nil
}

func toMongoImage(image *Image) mongoImage {
	return mongoImage{
		Title:          image.Title,
		Width:          image.Width,
		FilterID:       image.FilterID,
		Image:          image.Image,
		CreatedAt:      image.CreatedAt,
		ProcessedImage: image.ProcessedImage,
	}
}

func (doc mongoImage) toImage() *Image {
	return &Image{
		ID:             doc.ID.Hex(),
		Title:          doc.Title,
		Width:          doc.Width,
		FilterID:       doc.FilterID,
		Image:          doc.Image,
		CreatedAt:      doc.CreatedAt,
		ProcessedImage: doc.ProcessedImage,
	}
}
