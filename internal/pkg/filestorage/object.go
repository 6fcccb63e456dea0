package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
)

// ObjectPathFromURL recovers "<owner>/<file>" from a public object URL: its last two segments.
func ObjectPathFromURL(publicURL string) string {
	if i := strings.IndexAny(publicURL, "?#"); i >= 0 {
		publicURL = publicURL[:i]
	}

	parts := strings.Split(strings.TrimRight(publicURL, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

// NewObjectPath returns "<owner>/<random>.<ext>"
func NewObjectPath(ownerID uuid.UUID, ext string) string {
	return ownerID.String() + "/" + uuid.NewString() + "." + ext
}

// StoreImage validates an uploaded image and stores it under the owner's folder of bucket.
// It returns the public URL of the stored object.
func StoreImage(ctx context.Context, store Bucket, bucket string, ownerID uuid.UUID, fh *multipart.FileHeader, maxBytes int64) (string, error) {
	ext, err := ValidateImage(fh, maxBytes)
	if err != nil {
		return "", err
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	objectPath := NewObjectPath(ownerID, ext)
	if err := store.Upload(ctx, bucket, objectPath, file); err != nil {
		return "", err
	}
	return store.PublicURL(bucket, objectPath), nil
}
