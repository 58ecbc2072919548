// Package storage is the image storage collaborator: base64 payloads in,
// stored object references out.
package storage

import (
	"context"

	"github.com/pro-master/backend/internal/httperr"
)

var (
	ErrInvalidImage  = httperr.Invalid("invalid_image", "Image must be a base64 encoded PNG, JPEG or WebP.")
	ErrImageTooLarge = httperr.Invalid("image_too_large", "Image exceeds the maximum allowed size.")
)

const (
	FolderClients   = "clients"
	FolderProfiles  = "service_profiles"
	FolderImages    = "images"
	FolderEmployees = "employees"
)

type StoredImage struct {
	Key string
	URL string
}

type ImageStorage interface {
	Put(ctx context.Context, folder, payload string) (StoredImage, error)
	Delete(ctx context.Context, key string) error
}

// Cleanup removes objects uploaded by a write that did not commit. Errors
// are ignored; orphans are harmless.
func Cleanup(ctx context.Context, s ImageStorage, stored []StoredImage) {
	for _, img := range stored {
		_ = s.Delete(ctx, img.Key)
	}
}
