// Package storage sube las imágenes de producto al object storage gestionado
// y devuelve su URL pública. Usa net/http de la stdlib: la API es un simple
// POST del binario al path del bucket.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/pkg/config"
)

// Client habla con la API REST del object storage.
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewClient construye el cliente con la configuración del storage.
func NewClient(cfg config.StorageConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadImage sube la imagen al bucket público y devuelve su URL pública.
// El nombre del objeto es un UUID con la extensión original, para no pisar
// subidas con el mismo nombre de archivo.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	ext := path.Ext(filename)
	object := uuid.New().String() + ext

	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, object)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload image: status %d: %s", resp.StatusCode, storageErrMsg(raw))
	}
	return c.PublicURL(object), nil
}

// PublicURL arma la URL pública de un objeto del bucket.
func (c *Client) PublicURL(object string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, object)
}

func storageErrMsg(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &body)
	if body.Message != "" {
		return body.Message
	}
	if body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
