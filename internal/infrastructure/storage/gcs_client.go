package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"fairshoppe/internal/domain/repository"
	"fairshoppe/pkg/logger"
)

const publicURLPrefix = "https://storage.googleapis.com/"

// CloudStorageClient backs both the per-user profile namespace and public
// artwork uploads with one GCS bucket.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

func NewCloudStorageClient(ctx context.Context, bucketName, projectID string, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	storageClient := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}

	if err := storageClient.setBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return storageClient, nil
}

func (c *CloudStorageClient) setBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	corsConfig := storage.CORS{
		MaxAge:          3600, // 1 hour
		Methods:         []string{"GET", "PUT", "OPTIONS"},
		Origins:         []string{"*"},
		ResponseHeaders: []string{"Content-Type"},
	}

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}

	if len(bucketAttrs.CORS) == 0 {
		bucketUpdate := storage.BucketAttrsToUpdate{
			CORS: []storage.CORS{corsConfig},
		}

		if _, err := bucket.Update(ctx, bucketUpdate); err != nil {
			return fmt.Errorf("failed to update bucket CORS: %v", err)
		}
	}

	return nil
}

func (c *CloudStorageClient) Get(ctx context.Context, key string) (*repository.Object, error) {
	r, err := c.client.Bucket(c.bucketName).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return &repository.Object{
		Key:         key,
		Data:        data,
		ContentType: r.Attrs.ContentType,
		Generation:  r.Attrs.Generation,
	}, nil
}

func (c *CloudStorageClient) Put(ctx context.Context, key string, data []byte, contentType string, opts repository.PutOptions) (int64, error) {
	obj := c.client.Bucket(c.bucketName).Object(key)
	if opts.IfGeneration != nil {
		if *opts.IfGeneration == 0 {
			obj = obj.If(storage.Conditions{DoesNotExist: true})
		} else {
			obj = obj.If(storage.Conditions{GenerationMatch: *opts.IfGeneration})
		}
	}

	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "no-cache"

	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		wc.Close()
		return 0, fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := wc.Close(); err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == http.StatusPreconditionFailed {
			return 0, repository.ErrPreconditionFailed
		}
		return 0, fmt.Errorf("failed to close writer for %s: %w", key, err)
	}

	return wc.Attrs().Generation, nil
}

func (c *CloudStorageClient) PublicURL(key string) string {
	return fmt.Sprintf("%s%s/%s", publicURLPrefix, c.bucketName, key)
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	filename := fmt.Sprintf("%s/%s-%s%s", folder, uuid.New().String(), time.Now().Format("20060102150405"), extensionFor(fileType))

	obj := c.client.Bucket(c.bucketName).Object(filename)
	wc := obj.NewWriter(ctx)
	wc.ContentType = fileType
	wc.CacheControl = "public, max-age=86400" // 1 day caching

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if isPublic {
		if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
			return "", fmt.Errorf("failed to set ACL: %v", err)
		}
	}

	return c.PublicURL(filename), nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	objectName, err := objectNameFromURL(fileURL, c.bucketName)
	if err != nil {
		return err
	}

	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

func extensionFor(fileType string) string {
	switch fileType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "application/json":
		return ".json"
	default:
		return ".bin"
	}
}

// Expected URL format: https://storage.googleapis.com/bucket-name/file-path
func objectNameFromURL(fileURL, bucket string) (string, error) {
	if !strings.HasPrefix(fileURL, publicURLPrefix) {
		return "", fmt.Errorf("invalid GCS URL format")
	}

	parts := strings.SplitN(fileURL[len(publicURLPrefix):], "/", 2)
	if len(parts) != 2 || parts[0] != bucket {
		return "", fmt.Errorf("invalid GCS URL format or bucket mismatch")
	}

	return parts[1], nil
}
