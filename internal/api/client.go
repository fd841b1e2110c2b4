package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Client is a typed HTTP client for the pothole reporting backend. All four
// endpoints are synchronous request/response; none is streamed.
type Client struct {
	config  *Config
	client  *http.Client
	detect  *http.Client
	baseURL *url.URL
}

// NewClient creates a new backend client
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, NewValidationError("base_url", "invalid base URL: "+err.Error())
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		detect:  &http.Client{Timeout: config.DetectTimeout},
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the configured backend endpoint
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Detect submits one batch of images and returns the per-image findings.
// The response enumerates results in the order the service produced them,
// which is the authoritative display order.
func (c *Client) Detect(ctx context.Context, uploads []Upload) (*DetectResponse, error) {
	if len(uploads) == 0 {
		return nil, NewValidationError("images", "at least one image is required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, upload := range uploads {
		part, err := writer.CreateFormFile("images", upload.Filename)
		if err != nil {
			return nil, NewServiceErrorWithCause(OpDetect, "failed to build upload form", err)
		}
		if _, err := part.Write(upload.Data); err != nil {
			return nil, NewServiceErrorWithCause(OpDetect, "failed to write upload payload", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, NewServiceErrorWithCause(OpDetect, "failed to finalize upload form", err)
	}

	endpoint := c.baseURL.JoinPath("/api/predict")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &buf)
	if err != nil {
		return nil, NewServiceErrorWithCause(OpDetect, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.detect.Do(httpReq)
	if err != nil {
		return nil, NewServiceErrorWithCause(OpDetect, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(OpDetect, resp)
	}

	var result DetectResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, NewServiceErrorWithCause(OpDetect, "failed to decode response", err)
	}

	return &result, nil
}

// GenerateComplaint requests complaint prose for the given fields. An
// all-empty request is valid; the service applies its own defaults.
func (c *Client) GenerateComplaint(ctx context.Context, req *ComplaintRequest) (*ComplaintResponse, error) {
	var result ComplaintResponse
	if err := c.postJSON(ctx, OpComplaint, "/api/generate_complaint", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GeneratePDF requests an encoded document for the given complaint text
func (c *Client) GeneratePDF(ctx context.Context, complaintText string) (*PDFResponse, error) {
	var result PDFResponse
	req := &PDFRequest{ComplaintText: complaintText}
	if err := c.postJSON(ctx, OpExport, "/api/generate_pdf", req, &result); err != nil {
		return nil, err
	}
	if result.PDFDataURI == "" {
		return nil, NewServiceError(OpExport, "response carried no document payload")
	}
	return &result, nil
}

// SendEmail dispatches the message. A transport failure returns a
// ServiceError; a response with status other than "sent" returns the
// response together with a StatusError carrying the service diagnostic.
func (c *Client) SendEmail(ctx context.Context, req *EmailRequest) (*EmailResponse, error) {
	var result EmailResponse
	if err := c.postJSON(ctx, OpDispatch, "/api/send_email", req, &result); err != nil {
		return nil, err
	}
	if result.Status != StatusSent {
		return &result, NewStatusError(OpDispatch, result.Status, result.Error)
	}
	return &result, nil
}

// postJSON performs a JSON POST against the given path and decodes the
// response into out
func (c *Client) postJSON(ctx context.Context, op Op, path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return NewServiceErrorWithCause(op, "failed to marshal request", err)
	}

	endpoint := c.baseURL.JoinPath(path)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(jsonData))
	if err != nil {
		return NewServiceErrorWithCause(op, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return NewServiceErrorWithCause(op, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewServiceErrorWithCause(op, "failed to decode response", err)
	}

	return nil
}

// statusError maps a non-200 response to a ServiceError, preferring the
// service's own error payload when one is present
func (c *Client) statusError(op Op, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errorResp ErrorResponse
	if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != "" {
		return NewServiceErrorWithStatus(op, errorResp.Error, resp.StatusCode)
	}

	return NewServiceErrorWithStatus(op, fmt.Sprintf("request failed with status %d", resp.StatusCode), resp.StatusCode)
}
