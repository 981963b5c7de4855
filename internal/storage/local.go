package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader writes files below Dir and returns paths under PublicBase,
// which the server exposes as static files.
type LocalUploader struct {
	Dir        string
	PublicBase string
}

func NewLocalUploader(dir, publicBase string) (*LocalUploader, error) {
	if dir == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if publicBase == "" {
		publicBase = "/uploads"
	}
	return &LocalUploader{Dir: dir, PublicBase: publicBase}, nil
}

func (u *LocalUploader) Upload(ctx context.Context, objectName string, _ string, r io.Reader) (string, error) {
	// rooting the name before cleaning keeps it inside Dir
	clean := filepath.Clean("/" + objectName)
	dst := filepath.Join(u.Dir, clean)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, &ctxReader{ctx: ctx, r: r}); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return joinURL(u.PublicBase, filepath.ToSlash(clean)), nil
}

// ctxReader stops a copy once the request is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
