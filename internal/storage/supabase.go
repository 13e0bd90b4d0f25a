package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage uploads into a public Supabase Storage bucket.
type SupabaseStorage struct {
	endpoint   string
	serviceKey string
	bucket     string
}

func NewSupabaseStorage(baseURL, serviceKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		endpoint:   strings.TrimRight(baseURL, "/") + "/storage/v1",
		serviceKey: serviceKey,
		bucket:     bucket,
	}
}

// newClient returns a fresh storage-go client. Upload options are written into
// the client's shared headers, so a client is never reused across uploads.
func (s *SupabaseStorage) newClient() *storage_go.Client {
	return storage_go.NewClient(s.endpoint, s.serviceKey, map[string]string{
		"apikey": s.serviceKey,
	})
}

func (s *SupabaseStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	key, err := cleanKey(key)

	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := false
	client := s.newClient()

	_, err = client.UploadFile(s.bucket, key, body, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})

	if err != nil {
		var storageErr *storage_go.StorageError
		if errors.As(err, &storageErr) {
			return "", fmt.Errorf("storage upload rejected: %s", storageErr.Message)
		}
		return "", fmt.Errorf("storage upload failed: %w", err)
	}

	return client.GetPublicUrl(s.bucket, key).SignedURL, nil
}
