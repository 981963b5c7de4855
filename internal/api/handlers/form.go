package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/services"
)

const (
	maxFormMemory = 10 << 20
	imageField    = "image"
)

// readForm accepts multipart (the dashboard's format), urlencoded and JSON
// bodies. The returned closer releases the uploaded file, if any.
func readForm(c *gin.Context) (models.Form, *services.ImageFile, func(), error) {
	noop := func() {}
	ct := c.ContentType()

	if ct == gin.MIMEJSON {
		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil {
			return nil, nil, noop, err
		}
		return formFromJSON(raw), nil, noop, nil
	}

	if ct == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, nil, noop, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, nil, noop, err
	}

	// a text field named "image" echoes the stored path back; only a file
	// part replaces the image
	form := models.Form{}
	for k, v := range c.Request.PostForm {
		if len(v) > 0 && k != imageField {
			form[k] = v[0]
		}
	}

	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return form, nil, noop, nil
	}
	if err != nil {
		return nil, nil, noop, err
	}

	img, closeFn, err := openImage(fh)
	if err != nil {
		return nil, nil, noop, err
	}
	return form, img, closeFn, nil
}

func openImage(fh *multipart.FileHeader) (*services.ImageFile, func(), error) {
	file, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	// sniff the type from the first 512 bytes, then stitch them back on
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		_ = file.Close()
		return nil, nil, err
	}
	head = head[:n]

	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(head)
	}

	return &services.ImageFile{
		Name:        fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
		Reader:      io.MultiReader(bytes.NewReader(head), file),
	}, func() { _ = file.Close() }, nil
}

func formFromJSON(raw map[string]any) models.Form {
	form := models.Form{}
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			form[k] = val
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				if s, ok := p.(string); ok {
					parts = append(parts, s)
				}
			}
			form[k] = models.FormatSkills(parts)
		case nil:
		default:
			form[k] = fmt.Sprint(val)
		}
	}
	delete(form, imageField)
	return form
}
