package config

import (
	"context"
	"fmt"

	"github.com/yoockh/showcase/internal/storage"
)

// NewUploader builds the image store selected by STORAGE_DRIVER.
func NewUploader(ctx context.Context, s Storage) (storage.Uploader, error) {
	switch s.Driver {
	case "gcs":
		return storage.NewGCSUploader(ctx, s.GCSBucket, s.PublicBaseURL)
	case "s3":
		return storage.NewS3Uploader(ctx, storage.S3Config{
			Region:     s.S3Region,
			Bucket:     s.S3Bucket,
			AccessKey:  s.S3AccessKey,
			SecretKey:  s.S3SecretKey,
			Endpoint:   s.S3Endpoint,
			PublicBase: s.S3PublicBase,
		})
	case "local", "":
		return storage.NewLocalUploader(s.UploadDir, s.PublicBaseURL+"/uploads")
	}
	return nil, fmt.Errorf("unknown storage driver %q", s.Driver)
}
