package storage

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/devicelab-dev/driver-factory/pkg/config"
	"github.com/devicelab-dev/driver-factory/pkg/core"
)

func writeArtifact(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app-name")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUpload_SinglePostWithBody(t *testing.T) {
	content := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff, 'a', 'p', 'k'}
	path := writeArtifact(t, content)

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/rest/v1/storage/sauce-user/app-name" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("overwrite") != "true" {
			t.Errorf("overwrite = %q, want true", r.URL.Query().Get("overwrite"))
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("Content-Type = %q", ct)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "sauce-user" || pass != "sauce-key" {
			t.Errorf("basic auth = %q/%q (ok=%v)", user, pass, ok)
		}
		body, _ := io.ReadAll(r.Body)
		if !bytes.Equal(body, content) {
			t.Errorf("body = %v, want %v", body, content)
		}
		w.Write([]byte(`{"username":"sauce-user","filename":"app-name","size":9,"md5":"abc123","etag":"x"}`))
	}))
	defer server.Close()

	u := NewUploader(server.URL+"/rest/v1/storage/", config.Credentials{Username: "sauce-user", AccessKey: "sauce-key"})
	result, err := u.Upload(path, "app-name")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls)
	}
	if result.Name != "app-name" || result.Size != 9 || result.MD5 != "abc123" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestUpload_NonJSONResponse(t *testing.T) {
	path := writeArtifact(t, []byte("binary"))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	result, err := NewUploader(server.URL, config.Credentials{Username: "u", AccessKey: "k"}).Upload(path, "app.apk")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.Name != "app.apk" || result.Size != 6 || result.StatusCode != http.StatusOK {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestUpload_HTTPError(t *testing.T) {
	path := writeArtifact(t, []byte("binary"))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewUploader(server.URL, config.Credentials{Username: "u", AccessKey: "bad"}).Upload(path, "app-name")
	if !errors.Is(err, core.ErrArtifactUpload) {
		t.Fatalf("error = %v, want ErrArtifactUpload", err)
	}
	if !core.IsKind(err, core.KindUpload) {
		t.Errorf("kind = %s, want upload", core.KindOf(err))
	}
}

func TestUpload_Unreachable(t *testing.T) {
	path := writeArtifact(t, []byte("binary"))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewUploader(url, config.Credentials{Username: "u", AccessKey: "k"}).Upload(path, "app-name")
	if !errors.Is(err, core.ErrArtifactUpload) {
		t.Errorf("error = %v, want ErrArtifactUpload", err)
	}
}

func TestUpload_MissingArtifact(t *testing.T) {
	u := NewUploader("http://127.0.0.1:1", config.Credentials{Username: "u", AccessKey: "k"})
	_, err := u.Upload(filepath.Join(t.TempDir(), "missing"), "app-name")
	if !errors.Is(err, core.ErrArtifactMissing) {
		t.Errorf("error = %v, want ErrArtifactMissing", err)
	}
}

func TestUpload_MissingCredentials(t *testing.T) {
	u := NewUploader("http://127.0.0.1:1", config.Credentials{})
	_, err := u.Upload("/does/not/matter", "app-name")
	if !errors.Is(err, core.ErrMissingCredentials) {
		t.Errorf("error = %v, want ErrMissingCredentials", err)
	}
}

func TestURL(t *testing.T) {
	u := NewUploader("https://saucelabs.com/rest/v1/storage", config.Credentials{Username: "alice", AccessKey: "k"})
	want := "https://saucelabs.com/rest/v1/storage/alice/app-name?overwrite=true"
	if got := u.URL("app-name"); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
