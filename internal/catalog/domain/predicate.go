package domain

import (
	"strings"
	"time"
)

// Field names a filterable or sortable product attribute.
type Field string

const (
	FieldID        Field = "id"
	FieldName      Field = "name"
	FieldPrice     Field = "price"
	FieldCategory  Field = "category"
	FieldCreatedAt Field = "created_at"
)

// Predicate is a boolean condition over products. The set of implementations is
// closed: TextMatch, Membership, NumberRange, TimeRange and And.
type Predicate interface {
	Matches(p *Product) bool
	isPredicate()
}

// TextMatch is a case-insensitive substring test on a text field.
type TextMatch struct {
	Field     Field
	Substring string
}

// Membership holds when the field equals any of Values.
type Membership struct {
	Field  Field
	Values []string
}

// NumberRange is an inclusive numeric range; a nil bound is open.
type NumberRange struct {
	Field Field
	Min   *float64
	Max   *float64
}

// TimeRange is an inclusive time range; a nil bound is open.
type TimeRange struct {
	Field Field
	From  *time.Time
	To    *time.Time
}

// And is the conjunction of Terms. An empty And matches every product.
type And struct {
	Terms []Predicate
}

// MatchAll returns the predicate that imposes no constraint.
func MatchAll() And { return And{} }

func (TextMatch) isPredicate()   {}
func (Membership) isPredicate()  {}
func (NumberRange) isPredicate() {}
func (TimeRange) isPredicate()   {}
func (And) isPredicate()         {}

func (m TextMatch) Matches(p *Product) bool {
	return strings.Contains(strings.ToLower(textField(p, m.Field)), strings.ToLower(m.Substring))
}

func (m Membership) Matches(p *Product) bool {
	v := textField(p, m.Field)
	for _, want := range m.Values {
		if v == want {
			return true
		}
	}
	return false
}

func (r NumberRange) Matches(p *Product) bool {
	if r.Field != FieldPrice {
		return false
	}
	if r.Min != nil && p.Price < *r.Min {
		return false
	}
	if r.Max != nil && p.Price > *r.Max {
		return false
	}
	return true
}

func (r TimeRange) Matches(p *Product) bool {
	if r.Field != FieldCreatedAt {
		return false
	}
	if r.From != nil && p.CreatedAt.Before(*r.From) {
		return false
	}
	if r.To != nil && p.CreatedAt.After(*r.To) {
		return false
	}
	return true
}

func (a And) Matches(p *Product) bool {
	for _, t := range a.Terms {
		if !t.Matches(p) {
			return false
		}
	}
	return true
}

// IsMatchAll reports whether pred imposes no constraint.
func IsMatchAll(pred Predicate) bool {
	a, ok := pred.(And)
	if !ok {
		return false
	}
	for _, t := range a.Terms {
		if !IsMatchAll(t) {
			return false
		}
	}
	return true
}

func textField(p *Product, f Field) string {
	switch f {
	case FieldID:
		return p.ID
	case FieldName:
		return p.Name
	case FieldCategory:
		return p.Category
	}
	return ""
}

// Direction is the ordering direction of a sort key.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Sort orders results by Field, then by product ID in the same direction so
// that equal keys keep a stable order across pages.
type Sort struct {
	Field     Field
	Direction Direction
}

// Less reports whether a sorts before b.
func (s Sort) Less(a, b *Product) bool {
	c := 0
	switch s.Field {
	case FieldPrice:
		c = compareFloat(a.Price, b.Price)
	case FieldCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	default:
		c = strings.Compare(textField(a, s.Field), textField(b, s.Field))
	}
	if c == 0 {
		c = strings.Compare(a.ID, b.ID)
	}
	if s.Direction == Descending {
		c = -c
	}
	return c < 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
