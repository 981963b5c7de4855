// Package memory keeps collections in process. The server falls back to it
// when no MongoDB is configured; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yoockh/showcase/internal/models"
	mongorepo "github.com/yoockh/showcase/internal/repositories/mongo"
	"github.com/yoockh/showcase/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collectionRepo holds documents newest first.
type collectionRepo[T any, PT mongorepo.Record[T]] struct {
	mu   sync.RWMutex
	docs []T
}

func NewCollectionRepo[T any, PT mongorepo.Record[T]]() mongorepo.CollectionRepository[T] {
	return &collectionRepo[T, PT]{}
}

func (r *collectionRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]T, 0, len(r.docs)), r.docs...), nil
}

func (r *collectionRepo[T, PT]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		doc := r.docs[i]
		return &doc, nil
	}
	return nil, utils.ErrNotFound
}

func (r *collectionRepo[T, PT]) Insert(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if PT(doc).GetID().IsZero() {
		PT(doc).SetID(primitive.NewObjectID())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append([]T{*doc}, r.docs...)
	return nil
}

func (r *collectionRepo[T, PT]) Replace(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(PT(doc).GetID())
	if i < 0 {
		return utils.ErrNotFound
	}
	r.docs[i] = *doc
	return nil
}

func (r *collectionRepo[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return utils.ErrNotFound
	}
	r.docs = append(r.docs[:i], r.docs[i+1:]...)
	return nil
}

// index must be called with mu held.
func (r *collectionRepo[T, PT]) index(id primitive.ObjectID) int {
	for i := range r.docs {
		if PT(&r.docs[i]).GetID() == id {
			return i
		}
	}
	return -1
}

type userRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepo() mongorepo.UserRepository {
	return &userRepo{users: map[string]models.User{}}
}

func (r *userRepo) Create(_ context.Context, u *models.User) error {
	key := mongorepo.NormalizeEmail(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[key]; ok {
		return utils.E(utils.CodeConflict, "UserRepository.Create", "email already registered", nil)
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = key
	r.users[key] = *u
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[mongorepo.NormalizeEmail(email)]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}
