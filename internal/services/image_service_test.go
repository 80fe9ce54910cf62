package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/testutil"
)

func TestNewImageService(t *testing.T) {
	cfg := testutil.NewConfig()

	for _, provider := range []string{"", "none"} {
		cfg.Storage.Provider = provider
		images, err := NewImageService(cfg)
		if err != nil || images != nil {
			t.Errorf("NewImageService(%q) = %v, %v, want nil, nil", provider, images, err)
		}
	}

	cfg.Storage.Provider = "ftp"
	if _, err := NewImageService(cfg); err == nil {
		t.Error("NewImageService(ftp) should fail")
	}

	cfg.Storage.Provider = "s3"
	cfg.Storage.S3.Bucket = ""
	if _, err := NewImageService(cfg); err == nil {
		t.Error("NewImageService(s3) without a bucket should fail")
	}
}

func TestObjectName(t *testing.T) {
	a := objectName("avatar.png")
	b := objectName("avatar.png")

	if a == b {
		t.Error("objectName() should be unique per call")
	}
	if !strings.HasPrefix(a, "avatar-") || strings.HasSuffix(a, ".png") {
		t.Errorf("objectName() = %q", a)
	}
}

func TestS3ImageService(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.Path)
		mu.Unlock()

		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	cfg := testutil.NewConfig()
	cfg.Storage.Provider = "s3"
	cfg.Storage.S3.Region = "ap-northeast-1"
	cfg.Storage.S3.Bucket = "warbler-test"
	cfg.Storage.S3.Prefix = "images"
	cfg.Storage.S3.Endpoint = server.URL

	images, err := NewImageService(cfg)
	if err != nil {
		t.Fatalf("NewImageService() error = %v", err)
	}

	key, url, err := images.UploadImage(context.Background(), strings.NewReader("png"), "Me.PNG")
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if !strings.HasPrefix(key, "images/Me-") || !strings.HasSuffix(key, ".png") {
		t.Errorf("key = %q", key)
	}
	if !strings.Contains(url, "/warbler-test/"+key) {
		t.Errorf("url = %q", url)
	}

	if err := images.DeleteImage(context.Background(), key); err != nil {
		t.Fatalf("DeleteImage() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{
		"PUT /warbler-test/" + key,
		"DELETE /warbler-test/" + key,
	}
	if len(requests) != len(want) {
		t.Fatalf("requests = %v, want %v", requests, want)
	}
	for i := range want {
		if requests[i] != want[i] {
			t.Errorf("requests[%d] = %q, want %q", i, requests[i], want[i])
		}
	}
}
