package mongodb

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Images    []string           `bson:"images"`
	Category  string             `bson:"category,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *productDocument) toDomain() *domain.Product {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Price:     d.Price,
		Images:    images,
		Category:  d.Category,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func fromDomainProduct(p *domain.Product) (*productDocument, error) {
	doc := &productDocument{
		Name:      p.Name,
		Price:     p.Price,
		Images:    p.Images,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if p.ID != "" {
		id, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", p.ID, err)
		}
		doc.ID = id
	}
	return doc, nil
}
