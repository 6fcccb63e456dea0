package filestorage

import (
	"context"
	"io"
)

// Bucket names used by the portal
const (
	BucketGalleryPhotos = "gallery-photos"
	BucketAvatars       = "avatars"
)

// Bucket defines bucket-style object storage
type Bucket interface {
	// Upload stores the content of r at objectPath inside bucket
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader) error

	// PublicURL returns the URL under which an object is served
	PublicURL(bucket, objectPath string) string

	// Remove deletes objects; missing objects are not an error
	Remove(ctx context.Context, bucket string, objectPaths ...string) error
}
