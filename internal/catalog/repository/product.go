package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogerrors "staybook/internal/catalog/errors"
	"staybook/pkg/config"
	"staybook/pkg/model"
)

const (
	CollectionName = "Products"
)

type mongoProductRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Product, error)
	Update(ctx context.Context, id string, product *model.Product) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, city, category string, limit int, offset int64) ([]*model.Product, error)
	CountSearch(ctx context.Context, city, category string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

func NewMongoProductRepository(cfg *config.Config) ProductRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoProductRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoProductRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	product.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}
	return nil
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var product model.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &product, nil
}

func (r *mongoProductRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Product, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (r *mongoProductRepository) Update(ctx context.Context, id string, product *model.Product) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        product.Name,
			"city":        product.City,
			"category":    product.Category,
			"features":    product.Features,
			"description": product.Description,
			"active":      product.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return catalogerrors.ErrNotFound
	}

	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return catalogerrors.ErrNotFound
	}

	return nil
}

func (r *mongoProductRepository) Search(ctx context.Context, city, category string, limit int, offset int64) ([]*model.Product, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildSearchFilter(city, category), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (r *mongoProductRepository) CountSearch(ctx context.Context, city, category string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildSearchFilter(city, category))
	if err != nil {
		return 0, fmt.Errorf("failed to count products by search: %w", err)
	}
	return count, nil
}

func buildSearchFilter(city, category string) bson.M {
	filter := bson.M{"active": true}
	if city != "" {
		filter["city"] = city
	}
	if category != "" {
		filter["category"] = category
	}
	return filter
}

func (r *mongoProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}
