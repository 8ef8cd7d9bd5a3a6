package mongodb

import (
	"fmt"
	"regexp"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var documentFields = map[domain.Field]string{
	domain.FieldID:        "_id",
	domain.FieldName:      "name",
	domain.FieldPrice:     "price",
	domain.FieldCategory:  "category",
	domain.FieldCreatedAt: "created_at",
}

func documentField(f domain.Field) (string, error) {
	name, ok := documentFields[f]
	if !ok {
		return "", fmt.Errorf("unknown product field %q", f)
	}
	return name, nil
}

// buildFilter serializes a predicate into a MongoDB query document. Search text
// is escaped so that it matches literally.
func buildFilter(pred domain.Predicate) (bson.D, error) {
	switch p := pred.(type) {
	case domain.And:
		parts := make(bson.A, 0, len(p.Terms))
		for _, term := range p.Terms {
			doc, err := buildFilter(term)
			if err != nil {
				return nil, err
			}
			if len(doc) > 0 {
				parts = append(parts, doc)
			}
		}
		switch len(parts) {
		case 0:
			return bson.D{}, nil
		case 1:
			return parts[0].(bson.D), nil
		}
		return bson.D{{Key: "$and", Value: parts}}, nil

	case domain.TextMatch:
		field, err := documentField(p.Field)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(p.Substring), Options: "i"}}}, nil

	case domain.Membership:
		field, err := documentField(p.Field)
		if err != nil {
			return nil, err
		}
		values := make(bson.A, 0, len(p.Values))
		for _, v := range p.Values {
			values = append(values, v)
		}
		return bson.D{{Key: field, Value: bson.D{{Key: "$in", Value: values}}}}, nil

	case domain.NumberRange:
		field, err := documentField(p.Field)
		if err != nil {
			return nil, err
		}
		bounds := bson.D{}
		if p.Min != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *p.Min})
		}
		if p.Max != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *p.Max})
		}
		if len(bounds) == 0 {
			return bson.D{}, nil
		}
		return bson.D{{Key: field, Value: bounds}}, nil

	case domain.TimeRange:
		field, err := documentField(p.Field)
		if err != nil {
			return nil, err
		}
		bounds := bson.D{}
		if p.From != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *p.From})
		}
		if p.To != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *p.To})
		}
		if len(bounds) == 0 {
			return bson.D{}, nil
		}
		return bson.D{{Key: field, Value: bounds}}, nil
	}
	return nil, fmt.Errorf("unsupported predicate %T", pred)
}

// buildSort orders by the sort field, then by _id in the same direction.
func buildSort(s domain.Sort) (bson.D, error) {
	field, err := documentField(s.Field)
	if err != nil {
		return nil, err
	}
	dir := int(s.Direction)
	if dir != 1 && dir != -1 {
		return nil, fmt.Errorf("invalid sort direction %d", dir)
	}
	if field == "_id" {
		return bson.D{{Key: "_id", Value: dir}}, nil
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}, nil
}
