package comfyapi

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// GetArtifact fetches the raw bytes of one artifact, identified by the
// (filename, subfolder, type) triple recorded in history.
func (c *Client) GetArtifact(ctx context.Context, filename, subfolder, artifactType string) ([]byte, error) {
	query := url.Values{
		"filename":  {filename},
		"subfolder": {subfolder},
		"type":      {artifactType},
	}

	c.logger.Debug("getting artifact", "filename", filename, "subfolder", subfolder, "type", artifactType)

	return c.getBytes(ctx, "/view", query)
}

// UploadResult is the server's record of an uploaded file.
type UploadResult struct {
	Name      string `json:"name"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

// UploadImage uploads the file at path into the given input subfolder on the
// server, so that workflow nodes can reference it by name.
func (c *Client) UploadImage(ctx context.Context, path, subfolder string) (*UploadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UploadImageData(ctx, filepath.Base(path), subfolder, data)
}

// UploadImageData uploads in-memory image bytes under the given name.
func (c *Client) UploadImageData(ctx context.Context, name, subfolder string, data []byte) (*UploadResult, error) {
	if err := ValidateUpload(name, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.WriteField("subfolder", subfolder); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/upload/image", nil), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Info("uploading image", "name", name, "subfolder", subfolder, "size", len(data))

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result UploadResult
	if err := decodeJSONBody(resp, &result); err != nil {
		return nil, err
	}
	if result.Name == "" {
		result.Name = name
	}
	return &result, nil
}
