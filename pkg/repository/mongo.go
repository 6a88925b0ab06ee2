package repository

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/drezzup/storefront/pkg/config"
	"github.com/drezzup/storefront/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound reports a lookup that matched no document.
var ErrNotFound = errors.New("not found")

type Store struct {
	client   *mongo.Client
	database *mongo.Database
	bucket   *gridfs.Bucket
	config   *config.MongoDBConfig
}

func NewStore(cfg *config.MongoDBConfig) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	database := client.Database(cfg.Database)
	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName(cfg.ImagesBucket))
	if err != nil {
		return nil, err
	}

	return &Store{
		client:   client,
		database: database,
		bucket:   bucket,
		config:   cfg,
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) products() *mongo.Collection {
	return s.database.Collection(s.config.ProductsCollection)
}

func (s *Store) orders() *mongo.Collection {
	return s.database.Collection(s.config.OrdersCollection)
}

func (s *Store) InsertProduct(ctx context.Context, p *models.Product) error {
	p.CreatedAt = time.Now()
	res, err := s.products().InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.Key = oid
	}
	return nil
}

// ListProducts reads the whole catalog. The store's read order is
// unspecified; callers shuffle or sort as they need.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.products().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	list := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		list = append(list, models.ProductFromDoc(doc))
	}
	return list, nil
}

// NextProductID returns the display id to assign to the next upload: one
// past the highest id on record, or 1 for an empty catalog.
func (s *Store) NextProductID(ctx context.Context) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var doc bson.M
	err := s.products().FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return models.ProductFromDoc(doc).ID + 1, nil
}

// FindProductByNameColor looks a product up by its name and color,
// case-insensitively. The backing store cannot compare case-insensitively
// without collation setup, so this scans and compares app-side, matching
// how deletion lookups have always behaved.
func (s *Store) FindProductByNameColor(ctx context.Context, name, color string) (*models.Product, error) {
	list, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if strings.EqualFold(list[i].Name, name) && strings.EqualFold(list[i].Color, color) {
			return &list[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) DeleteProduct(ctx context.Context, key primitive.ObjectID) error {
	res, err := s.products().DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) InsertOrder(ctx context.Context, o *models.Order) error {
	res, err := s.orders().InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.Key = oid
	}
	return nil
}

// ListOrders returns every order, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := s.orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	list := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		list = append(list, models.OrderFromDoc(doc))
	}
	return list, nil
}

// UpdateOrderStatus patches only the status field of an order.
func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.orders().UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc bson.M
	err = s.orders().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	order := models.OrderFromDoc(doc)
	return &order, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.orders().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveImage stores an image in the GridFS bucket and returns the path it is
// served from.
func (s *Store) SaveImage(name string, data []byte) (string, error) {
	if _, err := s.bucket.UploadFromStream(name, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return "/images/" + name, nil
}

// OpenImage reads a stored image back out of the bucket.
func (s *Store) OpenImage(name string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStreamByName(name, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return buf.Bytes(), nil
}
