package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/cache"
	"github.com/yoockh/showcase/internal/models"
	mongorepo "github.com/yoockh/showcase/internal/repositories/mongo"
	"github.com/yoockh/showcase/internal/storage"
	"github.com/yoockh/showcase/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageFile is an image received with a create or update.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CollectionService is the server side of one entity kind: whole-collection
// reads and create/update/delete writes.
type CollectionService[T any] interface {
	Kind() models.Kind
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, form models.Form, img *ImageFile) (*T, error)
	// Update merges the submitted fields into the stored record. Without an
	// image the stored image is kept.
	Update(ctx context.Context, id string, form models.Form, img *ImageFile) (*T, error)
	Delete(ctx context.Context, id string) error
}

// UploadObserver is told about every stored image.
type UploadObserver interface {
	ObserveUpload(kind string, size int64)
}

// CollectionDeps are shared by the services of every kind. Uploads, Cache
// and Observer are optional.
type CollectionDeps struct {
	Uploader storage.Uploader
	Uploads  UploadLogService
	Cache    cache.Cache
	CacheTTL time.Duration
	Observer UploadObserver
	Logger   *logrus.Logger
}

type collectionService[T any, PT mongorepo.Record[T]] struct {
	kind models.Kind
	repo mongorepo.CollectionRepository[T]
	deps CollectionDeps
	now  func() time.Time
}

func NewCollectionService[T any, PT mongorepo.Record[T]](kind models.Kind, repo mongorepo.CollectionRepository[T], deps CollectionDeps) CollectionService[T] {
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = 5 * time.Minute
	}
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}
	return &collectionService[T, PT]{kind: kind, repo: repo, deps: deps, now: time.Now}
}

func (s *collectionService[T, PT]) Kind() models.Kind { return s.kind }

func (s *collectionService[T, PT]) log() *logrus.Entry {
	return s.deps.Logger.WithField("kind", s.kind)
}

func (s *collectionService[T, PT]) List(ctx context.Context) ([]T, error) {
	const op = "CollectionService.List"

	// The generation is read before the repository so a write that lands
	// while listing moves readers past whatever this call stores.
	useCache := s.deps.Cache != nil
	var key string
	if useCache {
		name := cache.CollectionKey(string(s.kind))
		gen, err := s.deps.Cache.Generation(ctx, name)
		if err != nil {
			s.log().WithError(err).Warn("collection cache generation read failed")
			useCache = false
		}
		key = cache.Versioned(name, gen)
	}
	if useCache {
		var cached []T
		hit, err := s.deps.Cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log().WithError(err).Warn("collection cache read failed")
		}
		if hit && cached != nil {
			return cached, nil
		}
	}

	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list "+s.kind.Label()+"s", err)
	}

	if useCache {
		if err := s.deps.Cache.SetJSON(ctx, key, out, s.deps.CacheTTL); err != nil {
			s.log().WithError(err).Warn("collection cache write failed")
		}
	}
	return out, nil
}

func (s *collectionService[T, PT]) Create(ctx context.Context, form models.Form, img *ImageFile) (*T, error) {
	const op = "CollectionService.Create"

	doc := PT(new(T))
	doc.ApplyForm(form)
	if m := missingFields(doc, img); len(m) > 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "missing required fields: "+strings.Join(m, ", "), nil)
	}

	stored, err := s.store(ctx, img)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload image", err)
	}
	if stored != "" {
		doc.SetImage(stored)
	}

	doc.Touch(s.now())
	if err := s.repo.Insert(ctx, (*T)(doc)); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create "+s.kind.Label(), err)
	}

	s.invalidate(ctx)
	s.recordUpload(ctx, doc, img, stored, form)
	return (*T)(doc), nil
}

func (s *collectionService[T, PT]) Update(ctx context.Context, id string, form models.Form, img *ImageFile) (*T, error) {
	const op = "CollectionService.Update"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid id", err)
	}

	existing, err := s.repo.Get(ctx, oid)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, s.kind.Label()+" not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load "+s.kind.Label(), err)
	}

	doc := PT(existing)
	doc.ApplyForm(form)
	if m := missingFields(doc, img); len(m) > 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "missing required fields: "+strings.Join(m, ", "), nil)
	}

	stored, err := s.store(ctx, img)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload image", err)
	}
	if stored != "" {
		doc.SetImage(stored)
	}

	doc.Touch(s.now())
	if err := s.repo.Replace(ctx, existing); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, s.kind.Label()+" not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update "+s.kind.Label(), err)
	}

	s.invalidate(ctx)
	s.recordUpload(ctx, doc, img, stored, form)
	return existing, nil
}

func (s *collectionService[T, PT]) Delete(ctx context.Context, id string) error {
	const op = "CollectionService.Delete"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "invalid id", err)
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, s.kind.Label()+" not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete "+s.kind.Label(), err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *collectionService[T, PT]) store(ctx context.Context, img *ImageFile) (string, error) {
	if img == nil {
		return "", nil
	}
	if s.deps.Uploader == nil {
		return "", errors.New("uploader is not configured")
	}
	url, err := s.deps.Uploader.Upload(ctx, storage.ObjectName(string(s.kind), img.Name), img.ContentType, img.Reader)
	if err != nil {
		return "", err
	}
	if s.deps.Observer != nil {
		s.deps.Observer.ObserveUpload(string(s.kind), img.Size)
	}
	return url, nil
}

func (s *collectionService[T, PT]) invalidate(ctx context.Context) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.Bump(ctx, cache.CollectionKey(string(s.kind))); err != nil {
		s.log().WithError(err).Warn("collection cache invalidation failed")
	}
}

func (s *collectionService[T, PT]) recordUpload(ctx context.Context, doc PT, img *ImageFile, stored string, form models.Form) {
	if s.deps.Uploads == nil || img == nil || stored == "" {
		return
	}
	err := s.deps.Uploads.Record(ctx, UploadEntry{
		Kind:     s.kind,
		RecordID: doc.GetID().Hex(),
		FileName: img.Name,
		FilePath: stored,
		FileSize: img.Size,
		MimeType: img.ContentType,
		Fields:   form,
	})
	if err != nil {
		s.log().WithError(err).WithField("record_id", doc.GetID().Hex()).Warn("upload log write failed")
	}
}

// missingFields counts an incoming image as present so validation can run
// before anything is uploaded.
func missingFields(doc models.Entity, img *ImageFile) []string {
	if img != nil && doc.ImagePath() == "" {
		doc.SetImage("pending")
		defer doc.SetImage("")
	}
	return doc.MissingFields()
}
