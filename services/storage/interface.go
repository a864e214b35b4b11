package storage

import (
	"context"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService stages uploaded images (profile photos, document scans)
// before their references are handed to the upstream API.
type StorageService interface {
	UploadFile(ctx context.Context, file io.Reader, fileName, destFolder string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}
