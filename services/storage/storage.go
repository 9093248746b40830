package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService using Cloudinary.
type CloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string) StorageService {
	return &CloudinaryStorage{cld: cld, cloudName: cloudName}
}

// UploadAvatar uploads a worker avatar. The public ID is derived from the
// worker ID so a re-upload replaces the previous image instead of piling
// up orphans.
func (s *CloudinaryStorage) UploadAvatar(ctx context.Context, localFilePath, workerID string) (string, error) {
	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder:    "avatars",
		PublicID:  workerID,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to upload avatar: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return result.PublicID, nil
}

// DeleteAvatar deletes an avatar from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteAvatar(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete avatar: %w", err)
	}
	return nil
}

// AvatarURL constructs the public delivery URL for an avatar.
func (s *CloudinaryStorage) AvatarURL(publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to build asset: %w", err)
	}
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to get URL string: %w", err)
	}
	return url, nil
}
