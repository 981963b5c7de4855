package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity is implemented by the pointer types of every portfolio record.
type Entity interface {
	Kind() Kind
	GetID() primitive.ObjectID
	SetID(id primitive.ObjectID)
	Touch(now time.Time)
	// ApplyForm copies the fields present in f; absent keys leave the record untouched.
	ApplyForm(f Form)
	// Form is the inverse of ApplyForm and always carries every text field.
	Form() Form
	ImagePath() string
	SetImage(path string)
	// MissingFields names the required fields that are still empty.
	MissingFields() []string
}

// Meta holds the server generated identity and timestamps shared by all records.
type Meta struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (m *Meta) GetID() primitive.ObjectID   { return m.ID }
func (m *Meta) SetID(id primitive.ObjectID) { m.ID = id }

// Touch stamps the record for a write at now. CreatedAt is only set once.
func (m *Meta) Touch(now time.Time) {
	now = now.UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}
