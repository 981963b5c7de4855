package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/services"
	"github.com/yoockh/showcase/internal/utils"
)

type stubCollection struct {
	rows      []models.Internship
	err       error
	gotID     string
	gotForm   models.Form
	gotImage  *services.ImageFile
	imageBody string
}

func (s *stubCollection) Kind() models.Kind { return models.KindInternship }

func (s *stubCollection) List(context.Context) ([]models.Internship, error) {
	return s.rows, s.err
}

func (s *stubCollection) Create(_ context.Context, f models.Form, img *services.ImageFile) (*models.Internship, error) {
	return s.capture("", f, img)
}

func (s *stubCollection) Update(_ context.Context, id string, f models.Form, img *services.ImageFile) (*models.Internship, error) {
	return s.capture(id, f, img)
}

func (s *stubCollection) Delete(_ context.Context, id string) error {
	s.gotID = id
	return s.err
}

func (s *stubCollection) capture(id string, f models.Form, img *services.ImageFile) (*models.Internship, error) {
	s.gotID, s.gotForm, s.gotImage = id, f, img
	if img != nil {
		b, _ := io.ReadAll(img.Reader)
		s.imageBody = string(b)
	}
	if s.err != nil {
		return nil, s.err
	}
	row := &models.Internship{}
	row.ApplyForm(f)
	return row, nil
}

func newRouter(h *CollectionHandler[models.Internship]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/internships", h.List)
	r.POST("/internships", h.Create)
	r.PUT("/internships/:id", h.Update)
	r.DELETE("/internships/:id", h.Delete)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "logo.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCollectionHandler_List(t *testing.T) {
	svc := &stubCollection{rows: []models.Internship{{Company: "Acme", Skills: []string{"Go"}}}}
	r := newRouter(NewCollectionHandler[models.Internship](svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internships", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Internship
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Company)
}

func TestCollectionHandler_CreateMultipart(t *testing.T) {
	svc := &stubCollection{}
	r := newRouter(NewCollectionHandler[models.Internship](svc))

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)
	body, ct := multipartBody(t, map[string]string{
		"company": "Acme",
		"skills":  `["Go","React"]`,
		"image":   "/uploads/old.png",
	}, png)

	req := httptest.NewRequest(http.MethodPost, "/internships", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Acme", svc.gotForm["company"])
	assert.NotContains(t, svc.gotForm, "image")
	require.NotNil(t, svc.gotImage)
	assert.Equal(t, "logo.png", svc.gotImage.Name)
	assert.Equal(t, "image/png", svc.gotImage.ContentType)
	assert.Equal(t, string(png), svc.imageBody)

	var got models.Internship
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"Go", "React"}, got.Skills)
}

func TestCollectionHandler_UpdateJSON(t *testing.T) {
	svc := &stubCollection{}
	r := newRouter(NewCollectionHandler[models.Internship](svc))

	req := httptest.NewRequest(http.MethodPut, "/internships/abc", strings.NewReader(`{"role":"Intern","skills":["Go"],"image":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", svc.gotID)
	assert.Equal(t, models.Form{"role": "Intern", "skills": `["Go"]`}, svc.gotForm)
	assert.Nil(t, svc.gotImage)
}

func TestCollectionHandler_Errors(t *testing.T) {
	svc := &stubCollection{err: utils.E(utils.CodeNotFound, "test", "internship not found", utils.ErrNotFound)}
	r := newRouter(NewCollectionHandler[models.Internship](svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/internships/abc", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, utils.CodeNotFound, body.Code)
	assert.Equal(t, "internship not found", body.Message)
}

func TestCollectionHandler_Delete(t *testing.T) {
	svc := &stubCollection{}
	r := newRouter(NewCollectionHandler[models.Internship](svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/internships/abc", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"internship deleted"}`, w.Body.String())
}

func TestCollectionHandler_BadJSON(t *testing.T) {
	r := newRouter(NewCollectionHandler[models.Internship](&stubCollection{}))

	req := httptest.NewRequest(http.MethodPost, "/internships", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
