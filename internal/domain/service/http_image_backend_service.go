package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

const imageBackendVendor = "image_backend"

// HTTPImageBackendService calls the generation backend. Its responses are
// loosely shaped so fields are read with gjson instead of fixed structs.
type HTTPImageBackendService struct {
	baseURL string
	client  *http.Client
}

func NewHTTPImageBackendService(baseURL string) *HTTPImageBackendService {
	return &HTTPImageBackendService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: vendorTimeout},
	}
}

func (s *HTTPImageBackendService) Generate(ctx context.Context, prompt string) ([]string, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    imageBackendVendor,
		operation: "generate",
		method:    http.MethodPost,
		url:       s.baseURL + "/images/generate",
		payload:   map[string]string{"prompt": prompt},
	})
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range gjson.GetBytes(body, "image_urls").Array() {
		if u.String() != "" {
			urls = append(urls, u.String())
		}
	}
	return urls, nil
}

func (s *HTTPImageBackendService) StartBackgroundRemoval(ctx context.Context, imageURL string) (string, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    imageBackendVendor,
		operation: "remove_bg",
		method:    http.MethodPost,
		url:       s.baseURL + "/images/remove-bg",
		payload:   map[string]string{"imageUrl": imageURL},
	})
	if err != nil {
		return "", err
	}

	result := gjson.ParseBytes(body)
	if !result.Get("success").Bool() {
		return "", fmt.Errorf("background removal rejected: %s", result.Get("error").String())
	}
	jobID := result.Get("job_id").String()
	if jobID == "" {
		return "", fmt.Errorf("background removal response carried no job id")
	}
	return jobID, nil
}

func (s *HTTPImageBackendService) JobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    imageBackendVendor,
		operation: "job_status",
		method:    http.MethodGet,
		url:       s.baseURL + "/api/job-status/" + url.PathEscape(jobID),
	})
	if err != nil {
		return nil, err
	}

	result := gjson.ParseBytes(body)
	return &JobStatus{
		Status:            result.Get("status").String(),
		ProcessedImageURL: result.Get("processedImageUrl").String(),
		Error:             result.Get("error").String(),
	}, nil
}

func (s *HTTPImageBackendService) Compose(ctx context.Context, req ComposeRequest) (string, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    imageBackendVendor,
		operation: "compose",
		method:    http.MethodPost,
		url:       s.baseURL + "/images/compose",
		payload:   req,
	})
	if err != nil {
		return "", err
	}

	result := gjson.ParseBytes(body)
	composed := result.Get("composedImageUrl").String()
	if !result.Get("success").Bool() || composed == "" {
		return "", fmt.Errorf("compose failed: %s", result.Get("error").String())
	}
	return composed, nil
}
