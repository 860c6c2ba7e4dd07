package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"fairshoppe/internal/infrastructure/metrics"
)

const vendorTimeout = 30 * time.Second

// VendorHTTPError is returned for any non-2xx vendor response.
type VendorHTTPError struct {
	Vendor     string
	Operation  string
	StatusCode int
	Body       string
}

func (e *VendorHTTPError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Vendor, e.Operation, e.StatusCode, e.Body)
}

type vendorRequest struct {
	vendor    string
	operation string
	method    string
	url       string
	headers   map[string]string
	payload   interface{}
}

func doVendorRequest(ctx context.Context, client *http.Client, req vendorRequest) ([]byte, error) {
	started := time.Now()

	var body io.Reader
	if req.payload != nil {
		jsonData, err := json.Marshal(req.payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %v", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		metrics.ObserveVendor(req.vendor, req.operation, "error", started)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveVendor(req.vendor, req.operation, "error", started)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveVendor(req.vendor, req.operation, "http_"+strconv.Itoa(resp.StatusCode), started)
		return nil, &VendorHTTPError{
			Vendor:     req.vendor,
			Operation:  req.operation,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 512),
		}
	}

	metrics.ObserveVendor(req.vendor, req.operation, "ok", started)
	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
