package handler

import (
	"github.com/labstack/echo/v4"

	"fairshoppe/internal/adapter/api/middleware"
	"fairshoppe/internal/usecase"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/logger"
	"fairshoppe/pkg/response"
)

type ImageHandler struct {
	imageUseCase *usecase.ImageUseCase
}

func NewImageHandler(imageUseCase *usecase.ImageUseCase) *ImageHandler {
	return &ImageHandler{
		imageUseCase: imageUseCase,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type removeBackgroundRequest struct {
	ImageURL string `json:"image_url"`
}

func (h *ImageHandler) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	urls, err := h.imageUseCase.Generate(c.Request().Context(), middleware.UserID(c), req.Prompt)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"image_urls": urls,
	})
}

func (h *ImageHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.PreconditionFailed("Please select an image first"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read uploaded file", err))
	}
	defer file.Close()

	logger.Debug("Upload %s (%d bytes)", fileHeader.Filename, fileHeader.Size)

	image, err := h.imageUseCase.Upload(c.Request().Context(), middleware.UserID(c), fileHeader.Filename, file)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, image)
}

func (h *ImageHandler) RemoveBackground(c echo.Context) error {
	var req removeBackgroundRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	url, err := h.imageUseCase.RemoveBackground(c.Request().Context(), middleware.UserID(c), req.ImageURL)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"image_url": url,
	})
}

func (h *ImageHandler) Compose(c echo.Context) error {
	var input usecase.ComposeInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	url, err := h.imageUseCase.Compose(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"image_url": url,
	})
}
