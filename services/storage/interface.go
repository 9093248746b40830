package storage

import "context"

// StorageService defines the interface for media storage operations.
// The only media the roster keeps is worker avatars.
type StorageService interface {
	// UploadAvatar stores the file and returns its permanent identifier.
	UploadAvatar(ctx context.Context, localFilePath, workerID string) (string, error)
	// DeleteAvatar removes a previously uploaded avatar.
	DeleteAvatar(ctx context.Context, publicID string) error
	// AvatarURL resolves the public delivery URL for an avatar.
	AvatarURL(publicID string) (string, error)
}
