// Package ocr integrates the external resume-structuring service. The service
// OCRs an uploaded document and returns labeled field predictions, which are
// mapped into a pre-structured ResumeRecord for the analysis pipeline.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/jobboard/internal/types"
)

const (
	maxAttempts = 3
	baseDelay   = time.Second
)

// Client calls a Nanonets-style OCR labeling API.
type Client struct {
	BaseURL    string
	APIKey     string
	ModelID    string
	HTTPClient *http.Client
	RetryDelay time.Duration
}

// NewClient creates an OCR client with a 30s request timeout.
func NewClient(baseURL, apiKey, modelID string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		ModelID:    modelID,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		RetryDelay: baseDelay,
	}
}

// prediction is one labeled field extracted from the document.
type prediction struct {
	Label   string `json:"label"`
	OCRText string `json:"ocr_text"`
}

type page struct {
	Prediction []prediction `json:"prediction"`
}

type labelResponse struct {
	Result []page `json:"result"`
}

// ExtractResume uploads the document and maps the service's labeled
// predictions to a structured resume plus the concatenated raw text.
// HTTP 500 responses are retried with exponential backoff; other failures
// return immediately.
func (c *Client) ExtractResume(ctx context.Context, filename, contentType string, data []byte) (*types.ResumeRecord, string, error) {
	var resp labelResponse
	var lastErr error

	delay := c.RetryDelay
	if delay <= 0 {
		delay = baseDelay
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := c.labelFile(ctx, filename, contentType, data, &resp)
		if err == nil {
			record, rawText := mapPredictions(resp)
			return record, rawText, nil
		}
		lastErr = err

		var serverErr *serverError
		if !errors.As(err, &serverErr) || attempt == maxAttempts {
			return nil, "", err
		}

		log.Printf("[ocr] server error on attempt %d/%d, retrying in %s: %v", attempt, maxAttempts, delay, err)
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, "", lastErr
}

// serverError marks a retryable HTTP 5xx response.
type serverError struct {
	status int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("ocr service returned status %d", e.status)
}

func (c *Client) labelFile(ctx context.Context, filename, contentType string, data []byte, out *labelResponse) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/OCR/Model/%s/LabelFile/", c.BaseURL, c.ModelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.APIKey, "")

	httpResp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("ocr request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 500 {
		io.Copy(io.Discard, httpResp.Body)
		return &serverError{status: httpResp.StatusCode}
	}
	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("ocr service returned status %d", httpResp.StatusCode)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ocr response: %w", err)
	}
	return nil
}

// mapPredictions converts labeled predictions to a ResumeRecord. Skill labels
// hold comma-separated lists; experience and education entries are grouped by
// their role/degree labels.
func mapPredictions(resp labelResponse) (*types.ResumeRecord, string) {
	var all []prediction
	var textParts []string
	for _, p := range resp.Result {
		for _, pred := range p.Prediction {
			all = append(all, pred)
			if pred.OCRText != "" {
				textParts = append(textParts, pred.OCRText)
			}
		}
	}

	find := func(label string) string {
		for _, p := range all {
			if p.Label == label {
				return p.OCRText
			}
		}
		return ""
	}

	record := &types.ResumeRecord{
		Contact: types.Contact{
			Name:     find("Name"),
			Email:    find("Email"),
			Phone:    find("Phone"),
			Location: find("Location"),
			Links:    joinNonEmpty(find("GitHub"), find("LinkedIn")),
		},
	}

	for _, label := range []string{"Languages", "Front-end_Technologies", "Back-end_Technologies", "Databases"} {
		for _, skill := range strings.Split(find(label), ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				record.Skills = append(record.Skills, skill)
			}
		}
	}

	start := find("Professional_Experience_Start_Date")
	end := find("Professional_Experience_End_Date")
	if end == "" {
		end = "Present"
	}
	for _, p := range all {
		if p.Label != "Professional_Experience_Role" || p.OCRText == "" {
			continue
		}
		record.Experience = append(record.Experience, types.Experience{
			Title:   p.OCRText,
			Company: find("Professional_Experience_Company"),
			Years:   fmt.Sprintf("%s - %s", start, end),
		})
	}

	for _, p := range all {
		if p.Label != "Education_Degree" || p.OCRText == "" {
			continue
		}
		record.Education = append(record.Education, types.Education{
			Degree: p.OCRText,
			School: find("Education_Institution"),
			Year:   find("Expected_Graduation"),
		})
	}

	record.ApplyDefaults()
	return record, strings.Join(textParts, " ")
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
