package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Uploader persists one file and returns the durable path or URL that
// records store in their image field.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// ObjectName builds a collision free key for an uploaded image, grouped by
// the entity kind it belongs to.
func ObjectName(kind, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if len(ext) > 8 {
		ext = ""
	}
	return "images/" + kind + "/" + uuid.NewString() + ext
}

func joinURL(base, objectName string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(objectName, "/")
}
