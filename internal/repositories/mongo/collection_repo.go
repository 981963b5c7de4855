package mongo

import (
	"context"
	"errors"

	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record constrains PT to the pointer type of a portfolio entity so the
// repository can allocate and decode values of T.
type Record[T any] interface {
	*T
	models.Entity
}

// CollectionRepository stores one entity kind in its own collection.
type CollectionRepository[T any] interface {
	// List returns the whole collection, newest first.
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	Insert(ctx context.Context, doc *T) error
	// Replace overwrites the stored document that has the same id.
	Replace(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type collectionRepo[T any, PT Record[T]] struct {
	col *mongo.Collection
}

// NewCollectionRepo binds T to the collection of kind.
func NewCollectionRepo[T any, PT Record[T]](db *mongo.Database, kind models.Kind) CollectionRepository[T] {
	return &collectionRepo[T, PT]{col: db.Collection(kind.Collection())}
}

func (r *collectionRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *collectionRepo[T, PT]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *collectionRepo[T, PT]) Insert(ctx context.Context, doc *T) error {
	p := PT(doc)
	if p.GetID().IsZero() {
		p.SetID(primitive.NewObjectID())
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *collectionRepo[T, PT]) Replace(ctx context.Context, doc *T) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": PT(doc).GetID()}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *collectionRepo[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
