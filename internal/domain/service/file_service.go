package service

import (
	"context"
	"io"
)

// FileUploadService stores user artwork where the fulfillment and image
// backends can fetch it by public URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
