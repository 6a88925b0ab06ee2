// Package removebg calls the remove.bg API to strip the background from
// product photos. Callers fall back to the original image when the call
// fails; background removal is best effort, never a gate on uploads.
package removebg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/drezzup/storefront/pkg/config"
)

// ErrNotConfigured means no API key is set; the caller should skip the call.
var ErrNotConfigured = errors.New("remove.bg api key is not configured")

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.RemoveBGConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Remove sends an image off for background removal and returns the
// processed PNG bytes.
func (c *Client) Remove(ctx context.Context, image []byte, filename string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image_file", filename)
	if err != nil {
		return nil, err
	}
	if _, err = fw.Write(image); err != nil {
		return nil, err
	}
	if err = mw.WriteField("size", "auto"); err != nil {
		return nil, err
	}
	if err = mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("remove.bg returned status %d: %s", resp.StatusCode, detail)
	}

	return io.ReadAll(resp.Body)
}
