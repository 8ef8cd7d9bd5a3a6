package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const DefaultCollectionName = "products"

// ProductRepository implements domain.ProductRepository on a MongoDB collection.
type ProductRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewProductRepository binds to the named collection and ensures the indexes
// backing the catalog sort orders and category filter.
func NewProductRepository(ctx context.Context, db *mongo.Database, collectionName string, log *logger.Logger) (*ProductRepository, error) {
	if collectionName == "" {
		collectionName = DefaultCollectionName
	}
	collection := db.Collection(collectionName)
	log = log.Named("ProductRepository")

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(indexCtx, indexes); err != nil {
		log.Error("Failed to create indexes for products collection", zap.Error(err))
	} else {
		log.Info("Ensured indexes for products collection", zap.String("collection", collectionName))
	}

	return &ProductRepository{
		collection: collection,
		logger:     log,
	}, nil
}

// Create inserts product and fills in its ID and timestamps.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	doc, err := fromDomainProduct(product)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert product into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	product.ID = doc.ID.Hex()
	product.CreatedAt = doc.CreatedAt
	product.UpdatedAt = doc.UpdatedAt
	product.Images = doc.Images
	r.logger.Debug("Product inserted", zap.String("product_id", product.ID))
	return nil
}

// GetByID returns domain.ErrProductNotFound for unknown and malformed ids alike.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		r.logger.Error("Failed to get product by ID from DB", zap.Error(err), zap.String("product_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		r.logger.Error("Failed to delete product from DB", zap.Error(err), zap.String("product_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context, pred domain.Predicate) (int64, error) {
	filter, err := buildFilter(pred)
	if err != nil {
		return 0, err
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count products", zap.Error(err), zap.Any("filter", filter))
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return total, nil
}

func (r *ProductRepository) Find(ctx context.Context, pred domain.Predicate, order domain.Sort, skip, limit int64) ([]*domain.Product, error) {
	filter, err := buildFilter(pred)
	if err != nil {
		return nil, err
	}
	sortDoc, err := buildSort(order)
	if err != nil {
		return nil, err
	}

	if skip < 0 {
		skip = 0
	}
	findOptions := options.Find().SetSort(sortDoc).SetSkip(skip)
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("Failed to find products", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode products", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.toDomain()
	}
	return products, nil
}

// Categories returns the distinct non-empty categories in ascending order.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	filter := bson.D{{Key: "category", Value: bson.D{{Key: "$nin", Value: bson.A{"", nil}}}}}
	values, err := r.collection.Distinct(ctx, "category", filter)
	if err != nil {
		r.logger.Error("Failed to list distinct categories", zap.Error(err))
		return nil, fmt.Errorf("db distinct failed: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
