// Package clienttest runs the real REST stack over in-memory storage for
// client-side tests.
package clienttest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/yoockh/showcase/internal/api/handlers"
	"github.com/yoockh/showcase/internal/api/routes"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/repositories/memory"
	mongorepo "github.com/yoockh/showcase/internal/repositories/mongo"
	"github.com/yoockh/showcase/internal/services"
	"github.com/yoockh/showcase/internal/storage"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "correct horse battery"
)

// Server is an httptest server with per-kind fault injection on reads.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	failures map[models.Kind]int
	delay    time.Duration
	inflight map[models.Kind]int
	peak     map[models.Kind]int
	reads    map[models.Kind]int
	gate     chan struct{}
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, _ := test.NewNullLogger()
	uploader, err := storage.NewLocalUploader(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("local uploader: %v", err)
	}

	auth := services.NewAuthService(memory.NewUserRepo(), "test-secret", time.Hour)
	if _, err := auth.EnsureAdmin(context.Background(), AdminEmail, AdminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	deps := services.CollectionDeps{Uploader: uploader, Logger: log}
	s := &Server{
		failures: map[models.Kind]int{},
		inflight: map[models.Kind]int{},
		peak:     map[models.Kind]int{},
		reads:    map[models.Kind]int{},
	}

	r := gin.New()
	r.Use(s.inject)
	routes.RegisterRoutes(r, routes.Deps{
		Auth:    handlers.NewAuthHandler(auth),
		Uploads: handlers.NewUploadLogHandler(nil),
		Collections: []handlers.Collection{
			collection[models.Certificate](models.KindCertificate, deps),
			collection[models.Badge](models.KindBadge, deps),
			collection[models.Internship](models.KindInternship, deps),
			collection[models.Contribution](models.KindContribution, deps),
			collection[models.ContributionCert](models.KindContributionCert, deps),
		},
		Verifier: auth,
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func collection[T any, PT mongorepo.Record[T]](kind models.Kind, deps services.CollectionDeps) handlers.Collection {
	repo := memory.NewCollectionRepo[T, PT]()
	return handlers.NewCollectionHandler(services.NewCollectionService[T, PT](kind, repo, deps))
}

// Fail makes reads of kind answer status until cleared with Fail(kind, 0).
func (s *Server) Fail(kind models.Kind, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, kind)
		return
	}
	s.failures[kind] = status
}

// SlowReads delays every collection read by d.
func (s *Server) SlowReads(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// HoldReads blocks collection reads until the returned func is called.
func (s *Server) HoldReads() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Reads is the number of collection reads of kind served so far.
func (s *Server) Reads(kind models.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[kind]
}

// PeakConcurrentReads is the highest number of simultaneous reads of kind.
func (s *Server) PeakConcurrentReads(kind models.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak[kind]
}

func (s *Server) inject(c *gin.Context) {
	kind, ok := readKind(c)
	if !ok {
		c.Next()
		return
	}

	s.mu.Lock()
	s.reads[kind]++
	s.inflight[kind]++
	if s.inflight[kind] > s.peak[kind] {
		s.peak[kind] = s.inflight[kind]
	}
	status, delay, gate := s.failures[kind], s.delay, s.gate
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inflight[kind]--
		s.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-c.Request.Context().Done():
		}
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	if status != 0 {
		c.AbortWithStatusJSON(status, handlers.APIError{Code: "INJECTED", Message: http.StatusText(status)})
		return
	}
	c.Next()
}

func readKind(c *gin.Context) (models.Kind, bool) {
	if c.Request.Method != http.MethodGet {
		return "", false
	}
	for _, k := range models.Kinds {
		if c.Request.URL.Path == k.Path() {
			return k, true
		}
	}
	return "", false
}
