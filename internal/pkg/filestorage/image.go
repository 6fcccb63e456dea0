package filestorage

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/familyhub/portal/internal/pkg/apperrors"
)

// extensions maps decoder format names to stored file extensions
var extensions = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
	"bmp":  "bmp",
	"tiff": "tiff",
}

// ValidateImage checks an upload's size and that its header decodes as a known image format.
// It returns the extension the object should be stored with.
func ValidateImage(fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if fh == nil {
		return "", apperrors.NewValidationError("Please choose a photo to upload")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return "", fmt.Errorf("%w: %d bytes", apperrors.ErrFileTooLarge, fh.Size)
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	_, format, err := image.DecodeConfig(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnsupportedFile, err)
	}

	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFile, format)
	}
	return ext, nil
}
