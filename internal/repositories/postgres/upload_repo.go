package postgres

import (
	"context"

	"github.com/yoockh/showcase/internal/models"
	"gorm.io/gorm"
)

type UploadRepository interface {
	Insert(ctx context.Context, rec *models.UploadRecord) error
	ListByRecord(ctx context.Context, recordID string, limit int) ([]models.UploadRecord, error)
	Latest(ctx context.Context, limit int) ([]models.UploadRecord, error)
}

type uploadRepo struct {
	db *gorm.DB
}

func NewUploadRepo(db *gorm.DB) UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Insert(ctx context.Context, rec *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *uploadRepo) ListByRecord(ctx context.Context, recordID string, limit int) ([]models.UploadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.UploadRecord
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("upload_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *uploadRepo) Latest(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.UploadRecord
	err := r.db.WithContext(ctx).
		Order("upload_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
