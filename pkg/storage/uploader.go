// Package storage uploads application artifacts to cloud device-grid storage.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/devicelab-dev/driver-factory/pkg/config"
	"github.com/devicelab-dev/driver-factory/pkg/core"
)

// UploadResult is what storage reports about the stored artifact.
type UploadResult struct {
	Name       string
	Size       int64
	MD5        string
	StatusCode int
}

// Uploader posts artifacts to <base>/<username>/<name>?overwrite=true.
type Uploader struct {
	baseURL string
	creds   config.Credentials
	client  *http.Client
}

// NewUploader creates a new storage uploader.
func NewUploader(baseURL string, creds config.Credentials) *Uploader {
	return &Uploader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
		client: &http.Client{
			Timeout: 10 * time.Minute, // App binaries can be large
		},
	}
}

// URL returns the upload endpoint for an artifact name.
func (u *Uploader) URL(name string) string {
	return fmt.Sprintf("%s/%s/%s?overwrite=true",
		u.baseURL, url.PathEscape(u.creds.Username), url.PathEscape(name))
}

// Upload reads the artifact at path and stores it as name in one POST.
func (u *Uploader) Upload(path, name string) (*UploadResult, error) {
	if !u.creds.Valid() {
		return nil, core.ErrMissingCredentials.WithDetails(map[string]interface{}{
			"storage": u.baseURL,
		})
	}

	data, err := os.ReadFile(path) //#nosec G304 -- configured artifact path
	if err != nil {
		return nil, core.ErrArtifactMissing.WithDetails(map[string]interface{}{"path": path}).WithCause(err)
	}

	req, err := http.NewRequest(http.MethodPost, u.URL(name), bytes.NewReader(data))
	if err != nil {
		return nil, core.ErrArtifactUpload.WithCause(err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.SetBasicAuth(u.creds.Username, u.creds.AccessKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, core.ErrArtifactUpload.WithDetails(map[string]interface{}{"artifact": name}).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.ErrArtifactUpload.WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.ErrArtifactUpload.WithDetails(map[string]interface{}{
			"artifact": name,
			"status":   resp.StatusCode,
		}).WithCause(fmt.Errorf("%s", strings.TrimSpace(string(body))))
	}

	result := &UploadResult{
		Name:       name,
		Size:       int64(len(data)),
		StatusCode: resp.StatusCode,
	}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if v := parsed.Get("filename"); v.Exists() {
			result.Name = v.String()
		} else if v := parsed.Get("name"); v.Exists() {
			result.Name = v.String()
		}
		if v := parsed.Get("size"); v.Exists() {
			result.Size = v.Int()
		}
		result.MD5 = parsed.Get("md5").String()
	}
	return result, nil
}
