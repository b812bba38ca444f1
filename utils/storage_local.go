package utils

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Local-disk storage for development environments without GCS credentials.
// Object keys map directly to paths under LOCAL_STORAGE_DIR.

func localStorageDir() string {
	dir := strings.TrimSpace(os.Getenv("LOCAL_STORAGE_DIR"))
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func SaveLocalObject(objectName string, data []byte) error {
	path := filepath.Join(localStorageDir(), filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DeleteLocalObject(objectName string) error {
	path := filepath.Join(localStorageDir(), filepath.FromSlash(objectName))
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// StoreImageObject validates the payload is an image and stores it with the
// configured provider.
func StoreImageObject(ctx context.Context, objectName string, data []byte) error {
	mimeType := http.DetectContentType(data)
	if !imageMimeTypes[mimeType] {
		return fmt.Errorf("unsupported file type: %s", mimeType)
	}
	return StoreBytesObject(ctx, objectName, data, mimeType)
}

func StoreBytesObject(ctx context.Context, objectName string, data []byte, contentType string) error {
	if GetStorageProvider() != StorageProviderGCS {
		return SaveLocalObject(objectName, data)
	}
	return UploadBytesToGCS(ctx, objectName, data, contentType)
}

func RemoveObject(ctx context.Context, objectName string) error {
	if GetStorageProvider() != StorageProviderGCS {
		return DeleteLocalObject(objectName)
	}
	return DeleteObjectFromGCS(ctx, objectName)
}
