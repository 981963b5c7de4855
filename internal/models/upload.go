package models

import (
	"time"

	"gorm.io/datatypes"
)

// UploadRecord is one stored image, kept in postgres as an audit trail of the
// files referenced by portfolio records.
type UploadRecord struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Kind     string `gorm:"column:kind;type:text;index" json:"kind"`
	RecordID string `gorm:"column:record_id;type:text;index" json:"record_id"`
	FileName string `gorm:"column:file_name;type:text" json:"file_name"`
	FilePath string `gorm:"column:file_path;type:text" json:"file_path"`
	FileSize int64  `gorm:"column:file_size" json:"file_size"`
	MimeType string `gorm:"column:mime_type;type:text" json:"mime_type"`

	// Form fields submitted alongside the file.
	Fields datatypes.JSON `gorm:"column:fields" json:"fields"`

	UploadAt time.Time `gorm:"column:upload_at;index" json:"upload_at"`
}

func (UploadRecord) TableName() string { return "upload_records" }
