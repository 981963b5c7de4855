package services

import (
	"context"
	"io"
	"sync"

	"github.com/yoockh/showcase/internal/models"
	mongorepo "github.com/yoockh/showcase/internal/repositories/mongo"
	"github.com/yoockh/showcase/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memRepo keeps documents newest first, like the mongo repository sorts them.
type memRepo[T any, PT mongorepo.Record[T]] struct {
	mu    sync.Mutex
	docs  []T
	lists int

	// afterSnapshot, when set, runs once List has copied the documents.
	afterSnapshot func()
}

func (r *memRepo[T, PT]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	r.lists++
	out := append([]T{}, r.docs...)
	hook := r.afterSnapshot
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *memRepo[T, PT]) Get(_ context.Context, id primitive.ObjectID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if PT(&r.docs[i]).GetID() == id {
			doc := r.docs[i]
			return &doc, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *memRepo[T, PT]) Insert(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if PT(doc).GetID().IsZero() {
		PT(doc).SetID(primitive.NewObjectID())
	}
	r.docs = append([]T{*doc}, r.docs...)
	return nil
}

func (r *memRepo[T, PT]) Replace(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if PT(&r.docs[i]).GetID() == PT(doc).GetID() {
			r.docs[i] = *doc
			return nil
		}
	}
	return utils.ErrNotFound
}

func (r *memRepo[T, PT]) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if PT(&r.docs[i]).GetID() == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

type fakeUploader struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	_, _ = io.Copy(io.Discard, r)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.names = append(u.names, objectName)
	return "/uploads/" + objectName, nil
}

type fakeUploadLog struct {
	entries []UploadEntry
	err     error
}

func (f *fakeUploadLog) Record(_ context.Context, e UploadEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeUploadLog) List(context.Context, string, int) ([]models.UploadRecord, error) {
	return nil, nil
}

type fakeUsers struct {
	byEmail map[string]*models.User
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*models.User{}
	}
	u.ID = primitive.NewObjectID()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}
