// Package media publishes in-flight podcast assets to durable storage.
package media

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/storage"

	"github.com/castwave/castwave/pkg/helpers"
)

// GCSStore uploads audio files and thumbnail images into a single bucket.
// Audio lands under podcasts/, thumbnails under podcast_thumbnails/.
type GCSStore struct {
	Client *storage.Client
	Bucket string
	HTTP   *http.Client
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{
		Client: client,
		Bucket: bucket,
		HTTP:   &http.Client{Timeout: 60 * time.Second},
	}
}

// UploadFile streams a local file into the bucket and returns its public URL.
func (s *GCSStore) UploadFile(ctx context.Context, localPath, objectPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, f)
}

// UploadFromURL fetches a remote object (the generator's temporary image URL)
// and re-uploads it into the bucket so the reference outlives the source.
func (s *GCSStore) UploadFromURL(ctx context.Context, srcURL, objectPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", srcURL, resp.Status)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, resp.Body)
}
