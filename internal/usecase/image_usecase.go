package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/service"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/logger"
)

const (
	promptTemplate   = "Create an image of, %s. This image should have a solid background and focus the subject matter in the center of the image."
	imageBackendName = "image_backend"
	anonymousFolder  = "anonymous"

	defaultMaxUploadBytes  = 10 << 20
	defaultMaxSourcePixels = 40_000_000
)

// ImageOptions bounds the background-removal poll and uploads. MaxDimension
// is the side the stored artwork is fitted into; MaxUploadBytes and
// MaxSourcePixels reject uploads before they are decoded.
type ImageOptions struct {
	PollInterval    time.Duration
	MaxAttempts     int
	MaxDimension    int
	MaxUploadBytes  int64
	MaxSourcePixels int
}

type ImageUseCase struct {
	backend  service.ImageBackendService
	files    service.FileUploadService
	profiles *ProfileUseCase
	notifier ProgressNotifier
	opts     ImageOptions
}

func NewImageUseCase(
	backend service.ImageBackendService,
	files service.FileUploadService,
	profiles *ProfileUseCase,
	notifier ProgressNotifier,
	opts ImageOptions,
) *ImageUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 30
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.MaxSourcePixels <= 0 {
		opts.MaxSourcePixels = defaultMaxSourcePixels
	}

	return &ImageUseCase{
		backend:  backend,
		files:    files,
		profiles: profiles,
		notifier: notifier,
		opts:     opts,
	}
}

type ComposeInput struct {
	ImageURL string                `json:"image_url" validate:"required,url"`
	Overlays []service.TextOverlay `json:"overlays"`
	Scale    float64               `json:"scale"`
	Rotation float64               `json:"rotation"`
	Name     string                `json:"name,omitempty"`
}

func (uc *ImageUseCase) Generate(ctx context.Context, userID, prompt string) ([]string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.PreconditionFailed("Please describe the image you want to create")
	}

	urls, err := uc.backend.Generate(ctx, fmt.Sprintf(promptTemplate, prompt))
	if err != nil {
		return nil, errors.VendorFailure(imageBackendName, "Failed to generate image", err)
	}
	if len(urls) == 0 {
		return nil, errors.VendorFailure(imageBackendName, "No images were generated", nil)
	}

	for _, url := range urls {
		url := url
		recordBestEffort(userID, entity.CategoryGeneratedImages, func() error {
			_, err := uc.profiles.SaveGeneratedImage(ctx, userID, entity.GeneratedImage{URL: url, Prompt: prompt})
			return err
		})
	}

	return urls, nil
}

// Upload normalises artwork to PNG within the configured bounds and stores
// it publicly so the vendors can fetch it.
func (uc *ImageUseCase) Upload(ctx context.Context, userID, name string, file io.Reader) (*entity.UserImage, error) {
	data, err := io.ReadAll(io.LimitReader(file, uc.opts.MaxUploadBytes+1))
	if err != nil {
		return nil, errors.BadRequest("Failed to read uploaded file", err)
	}
	if int64(len(data)) > uc.opts.MaxUploadBytes {
		return nil, errors.BadRequest(fmt.Sprintf("Image is larger than %d bytes", uc.opts.MaxUploadBytes), nil)
	}

	// the header is enough to refuse images that would not fit in memory
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.BadRequest("Unsupported or corrupt image", err)
	}
	if config.Width <= 0 || config.Height <= 0 || config.Width*config.Height > uc.opts.MaxSourcePixels {
		return nil, errors.BadRequest(fmt.Sprintf("Image dimensions %dx%d are too large", config.Width, config.Height), nil)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.BadRequest("Unsupported or corrupt image", err)
	}

	if limit := uc.opts.MaxDimension; limit > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > limit || bounds.Dy() > limit {
			img = imaging.Fit(img, limit, limit, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Internal("Failed to encode image", err)
	}

	folder := "uploads/" + anonymousFolder
	if userID != "" {
		folder = "uploads/" + userID
	}

	url, err := uc.files.UploadFile(ctx, &buf, "image/png", folder, true)
	if err != nil {
		return nil, errors.Internal("Failed to store image", err)
	}

	userImage := &entity.UserImage{URL: url, Name: name, CreatedAt: time.Now().UTC()}
	recordBestEffort(userID, entity.CategoryUserImages, func() error {
		saved, err := uc.profiles.SaveUserImage(ctx, userID, *userImage)
		if err == nil {
			userImage = saved
		}
		return err
	})

	return userImage, nil
}

// RemoveBackground starts a job and polls it at a fixed interval until it
// completes, fails, runs out of attempts, or ctx ends.
func (uc *ImageUseCase) RemoveBackground(ctx context.Context, userID, imageURL string) (string, error) {
	if imageURL == "" {
		return "", errors.PreconditionFailed("Please select an image first")
	}

	jobID, err := uc.backend.StartBackgroundRemoval(ctx, imageURL)
	if err != nil {
		return "", errors.VendorFailure(imageBackendName, "Failed to start background removal", err)
	}
	logger.Debug("Background removal job %s started", jobID)

	ticker := time.NewTicker(uc.opts.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= uc.opts.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", errors.Timeout("Background removal was cancelled", ctx.Err())
		case <-ticker.C:
		}

		status, err := uc.backend.JobStatus(ctx, jobID)
		if err != nil {
			return "", errors.VendorFailure(imageBackendName, "Failed to check background removal status", err)
		}

		progress := JobProgress{JobID: jobID, Status: status.Status, Attempt: attempt, MaxAttempts: uc.opts.MaxAttempts}

		switch status.Status {
		case service.JobStatusCompleted:
			if status.ProcessedImageURL == "" {
				return "", errors.VendorFailure(imageBackendName, "Background removal returned no image", nil)
			}
			progress.ImageURL = status.ProcessedImageURL
			uc.notify(userID, progress)
			return status.ProcessedImageURL, nil
		case service.JobStatusFailed:
			msg := status.Error
			if msg == "" {
				msg = "Background removal failed"
			}
			progress.Error = msg
			uc.notify(userID, progress)
			return "", errors.VendorFailure(imageBackendName, msg, nil)
		default:
			uc.notify(userID, progress)
		}
	}

	uc.notify(userID, JobProgress{JobID: jobID, Status: "timeout", Attempt: uc.opts.MaxAttempts, MaxAttempts: uc.opts.MaxAttempts})
	return "", errors.Timeout("Background removal timed out", nil)
}

func (uc *ImageUseCase) notify(userID string, progress JobProgress) {
	if userID == "" {
		return
	}
	uc.notifier.NotifyJobProgress(userID, progress)
}

func (uc *ImageUseCase) Compose(ctx context.Context, userID string, input ComposeInput) (string, error) {
	if input.ImageURL == "" {
		return "", errors.PreconditionFailed("Please select an image first")
	}
	if err := checkInput(input); err != nil {
		return "", err
	}
	if input.Scale == 0 {
		input.Scale = 1
	}

	composed, err := uc.backend.Compose(ctx, service.ComposeRequest{
		ImageURL:     input.ImageURL,
		TextOverlays: input.Overlays,
		Scale:        input.Scale,
		Rotation:     input.Rotation,
	})
	if err != nil {
		return "", errors.VendorFailure(imageBackendName, "Failed to save edited image", err)
	}

	recordBestEffort(userID, entity.CategoryEditedImages, func() error {
		_, err := uc.profiles.SaveEditedImage(ctx, userID, entity.EditedImage{URL: composed, Name: input.Name})
		return err
	})

	for _, overlay := range input.Overlays {
		overlay := overlay
		recordBestEffort(userID, entity.CategoryTexts, func() error {
			_, err := uc.profiles.SaveTextData(ctx, userID, entity.TextData{
				Content:    overlay.Text,
				FontFamily: overlay.Style.FontFamily,
				FontSize:   float64(overlay.Style.FontSize),
				Color:      overlay.Style.Color,
				Position:   &entity.TextPosition{X: overlay.X, Y: overlay.Y},
			})
			return err
		})
	}

	return composed, nil
}
