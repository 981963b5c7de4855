package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/utils"
)

// Record ties a model type to the pointer type that implements
// models.Entity, so the kind can be derived from T alone.
type Record[T any] interface {
	*T
	models.Entity
}

// Image is a file to attach to a create or update.
type Image struct {
	Name   string
	Reader io.Reader
}

func KindOf[T any, PT Record[T]]() models.Kind {
	return PT(new(T)).Kind()
}

// FetchAll reads the whole collection of T in one request, newest first as
// ordered by the server.
func FetchAll[T any, PT Record[T]](ctx context.Context, c *Client) ([]T, error) {
	const op = "Client.FetchAll"

	kind := KindOf[T, PT]()
	var out []T
	err := c.do(ctx, op, http.MethodGet, kind.Path(), nil, "", false, &out)
	if c.obs != nil {
		c.obs.ObserveFetch(string(kind), err)
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Create checks required fields locally, then posts form and img as
// multipart. Nothing is sent when a required field is missing.
func Create[T any, PT Record[T]](ctx context.Context, c *Client, form models.Form, img *Image) (*T, error) {
	const op = "Client.Create"

	if missing := MissingFields[T, PT](form, img != nil); len(missing) > 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "missing required fields: "+strings.Join(missing, ", "), nil)
	}

	body, ct, err := multipartBody(form, img)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "failed to encode form", err)
	}

	out := PT(new(T))
	if err := c.do(ctx, op, http.MethodPost, KindOf[T, PT]().Path(), body, ct, true, out); err != nil {
		return nil, err
	}
	return (*T)(out), nil
}

// Update sends only the fields in form. The server keeps the stored image
// when img is nil.
func Update[T any, PT Record[T]](ctx context.Context, c *Client, id string, form models.Form, img *Image) (*T, error) {
	const op = "Client.Update"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}

	body, ct, err := multipartBody(form, img)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "failed to encode form", err)
	}

	out := PT(new(T))
	if err := c.do(ctx, op, http.MethodPut, recordPath(KindOf[T, PT](), id), body, ct, true, out); err != nil {
		return nil, err
	}
	return (*T)(out), nil
}

// MissingFields reports the required fields of T that form leaves empty.
func MissingFields[T any, PT Record[T]](form models.Form, hasImage bool) []string {
	doc := PT(new(T))
	doc.ApplyForm(form)
	if hasImage {
		doc.SetImage("pending")
	}
	return doc.MissingFields()
}

func multipartBody(form models.Form, img *Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, form[k]); err != nil {
			return nil, "", err
		}
	}

	if img != nil {
		fw, err := w.CreateFormFile("image", img.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, img.Reader); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
