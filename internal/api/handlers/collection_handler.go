package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/services"
	"github.com/yoockh/showcase/internal/utils"
)

// Collection is the REST surface of one entity kind.
type Collection interface {
	Kind() models.Kind
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type CollectionHandler[T any] struct {
	svc services.CollectionService[T]
}

func NewCollectionHandler[T any](svc services.CollectionService[T]) *CollectionHandler[T] {
	return &CollectionHandler[T]{svc: svc}
}

func (h *CollectionHandler[T]) Kind() models.Kind { return h.svc.Kind() }

func (h *CollectionHandler[T]) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *CollectionHandler[T]) Create(c *gin.Context) {
	form, img, done, err := readForm(c)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CollectionHandler.Create", "invalid form body", err))
		return
	}
	defer done()

	row, err := h.svc.Create(c.Request.Context(), form, img)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *CollectionHandler[T]) Update(c *gin.Context) {
	form, img, done, err := readForm(c)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CollectionHandler.Update", "invalid form body", err))
		return
	}
	defer done()

	row, err := h.svc.Update(c.Request.Context(), c.Param("id"), form, img)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: h.svc.Kind().Label() + " deleted"})
}
