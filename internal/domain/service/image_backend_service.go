package service

import "context"

const (
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

type JobStatus struct {
	Status            string
	ProcessedImageURL string
	Error             string
}

type TextStyle struct {
	FontFamily string `json:"fontFamily"`
	FontSize   int    `json:"fontSize"`
	Color      string `json:"color"`
}

type TextOverlay struct {
	Text  string    `json:"text"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Style TextStyle `json:"style"`
}

type ComposeRequest struct {
	ImageURL     string        `json:"imageUrl"`
	TextOverlays []TextOverlay `json:"textOverlays"`
	Scale        float64       `json:"scale"`
	Rotation     float64       `json:"rotation"`
}

// ImageBackendService is the artwork generation and editing backend.
type ImageBackendService interface {
	Generate(ctx context.Context, prompt string) ([]string, error)
	StartBackgroundRemoval(ctx context.Context, imageURL string) (string, error)
	JobStatus(ctx context.Context, jobID string) (*JobStatus, error)
	Compose(ctx context.Context, req ComposeRequest) (string, error)
}
