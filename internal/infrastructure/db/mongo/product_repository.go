package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	Quantity    int                  `bson:"quantity"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
	Active      bool                 `bson:"active"`
}

// Save inserts the product on first save (assigning the ID) and replaces the
// document afterwards.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	doc, err := fromProduct(product)
	if err != nil {
		return nil, err
	}

	if product.ID == "" {
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert product: %w", err)
		}
		saved := *product
		saved.ID = res.InsertedID.(primitive.ObjectID).Hex()
		return &saved, nil
	}

	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", product.ID, err)
	}
	doc.ID = oid
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc); err != nil {
		return nil, fmt.Errorf("replace product: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("product not found with id: " + id)
	}

	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFound("product not found with id: " + id)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return toProduct(&doc)
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) FindActive(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		product, err := toProduct(&doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// DeleteByID physically removes a record. The service layer prefers logical
// deletion; this exists for operational tooling.
func (r *ProductRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("product not found with id: " + id)
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("product not found with id: " + id)
	}
	return nil
}

func fromProduct(p *domain.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, fmt.Errorf("encode price: %w", err)
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Active:      p.Active,
	}, nil
}

func toProduct(doc *productDoc) (*domain.Product, error) {
	price, err := decimal.NewFromString(doc.Price.String())
	if err != nil {
		return nil, fmt.Errorf("decode price: %w", err)
	}
	return &domain.Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		Price:       price,
		Quantity:    doc.Quantity,
		CreatedAt:   doc.CreatedAt.UTC(),
		UpdatedAt:   doc.UpdatedAt.UTC(),
		Active:      doc.Active,
	}, nil
}
