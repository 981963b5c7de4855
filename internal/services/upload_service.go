package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/showcase/internal/models"
	pgrepo "github.com/yoockh/showcase/internal/repositories/postgres"
	"github.com/yoockh/showcase/internal/utils"
	"gorm.io/datatypes"
)

type UploadEntry struct {
	Kind     models.Kind
	RecordID string
	FileName string
	FilePath string
	FileSize int64
	MimeType string
	Fields   models.Form
}

// UploadLogService keeps an audit trail of stored images.
type UploadLogService interface {
	Record(ctx context.Context, e UploadEntry) error
	List(ctx context.Context, recordID string, limit int) ([]models.UploadRecord, error)
}

type uploadLogService struct {
	repo pgrepo.UploadRepository
}

func NewUploadLogService(repo pgrepo.UploadRepository) UploadLogService {
	return &uploadLogService{repo: repo}
}

func (s *uploadLogService) Record(ctx context.Context, e UploadEntry) error {
	const op = "UploadLogService.Record"

	if e.RecordID == "" || e.FilePath == "" {
		return utils.E(utils.CodeInvalidArgument, op, "record_id and file_path are required", nil)
	}

	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "invalid form fields", err)
	}

	row := &models.UploadRecord{
		ID:       uuid.NewString(),
		Kind:     string(e.Kind),
		RecordID: e.RecordID,
		FileName: e.FileName,
		FilePath: e.FilePath,
		FileSize: e.FileSize,
		MimeType: e.MimeType,
		Fields:   datatypes.JSON(fields),
		UploadAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to persist upload record", err)
	}
	return nil
}

// List returns the uploads of one record, or the latest uploads when
// recordID is empty.
func (s *uploadLogService) List(ctx context.Context, recordID string, limit int) ([]models.UploadRecord, error) {
	const op = "UploadLogService.List"

	var (
		rows []models.UploadRecord
		err  error
	)
	if recordID == "" {
		rows, err = s.repo.Latest(ctx, limit)
	} else {
		rows, err = s.repo.ListByRecord(ctx, recordID, limit)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list upload records", err)
	}
	return rows, nil
}
