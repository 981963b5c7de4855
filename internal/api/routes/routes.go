package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/api/handlers"
	"github.com/yoockh/showcase/internal/api/middleware"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	Uploads     *handlers.UploadLogHandler
	Collections []handlers.Collection

	Verifier     middleware.TokenVerifier
	LoginLimiter gin.HandlerFunc
	Metrics      http.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	login := []gin.HandlerFunc{d.Auth.Login}
	if d.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{d.LoginLimiter}, login...)
	}
	r.POST("/auth/login", login...)

	requireAuth := middleware.JWTAuth(d.Verifier)

	// Reads are public, writes need a token.
	for _, h := range d.Collections {
		base := h.Kind().Path()
		r.GET(base, h.List)

		g := r.Group(base, requireAuth)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	// Not under /uploads, which may be taken by the local image directory.
	r.GET("/admin/uploads", requireAuth, d.Uploads.List)
}

// NewRouter returns a gin engine with recovery, request logging and metrics
// in front of every route in d.
func NewRouter(log *logrus.Logger, obs middleware.RequestObserver, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	if obs != nil {
		r.Use(middleware.Metrics(obs))
	}
	RegisterRoutes(r, d)
	return r
}
