package imagehost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// ErrUnexpectedResponse is returned when the host answers without a public link.
var ErrUnexpectedResponse = errors.New("unexpected image host response")

const maxResponseBody = 4 << 10

// HTTPClient uploads files to a catbox-compatible endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	userHash   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates an image host client with default timeout.
func NewHTTPClient(endpoint, userHash string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse image host url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("image host url must be absolute")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		endpoint: parsed,
		userHash: userHash,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Upload posts the file as multipart form data and returns its public URL.
func (c *HTTPClient) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	body, formType, err := c.form(data, filename, contentType)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", formType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(raw))

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("image upload failed", slog.Int("status", resp.StatusCode), slog.String("body", text))
		return "", fmt.Errorf("image host error: %s", resp.Status)
	}
	if !strings.HasPrefix(text, "http") {
		c.logger.Error("image host returned no link", slog.String("body", text))
		return "", fmt.Errorf("%w: %q", ErrUnexpectedResponse, text)
	}
	return text, nil
}

func (c *HTTPClient) form(data []byte, filename, contentType string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("reqtype", "fileupload"); err != nil {
		return nil, "", err
	}
	if c.userHash != "" {
		if err := w.WriteField("userhash", c.userHash); err != nil {
			return nil, "", err
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="fileToUpload"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
