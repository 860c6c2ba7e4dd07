package handler

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fairshoppe/internal/domain/repository"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/response"
)

// PublicObjects reads objects that were uploaded as public files.
type PublicObjects interface {
	GetPublic(ctx context.Context, key string) (*repository.Object, error)
}

// FileHandler serves uploaded images when the object store has no public
// URL of its own (PROFILE_BACKEND=memory).
type FileHandler struct {
	objects PublicObjects
}

func NewFileHandler(objects PublicObjects) *FileHandler {
	return &FileHandler{
		objects: objects,
	}
}

func (h *FileHandler) Serve(c echo.Context) error {
	key := c.Param("*")
	if key == "" {
		return response.Error(c, errors.NotFound("File", nil))
	}

	obj, err := h.objects.GetPublic(c.Request().Context(), key)
	if stderrors.Is(err, repository.ErrObjectNotFound) {
		return response.Error(c, errors.NotFound("File", err))
	}
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read file", err))
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(http.StatusOK, contentType, obj.Data)
}
