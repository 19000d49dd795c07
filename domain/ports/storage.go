package ports

import (
	"io"
)

// StoragePort abstracts the object store holding image custom-field
// payloads (MinIO locally, any S3-compatible endpoint in production).
type StoragePort interface {
	// UploadFile stores the object and returns its public URL
	UploadFile(file io.Reader, key string, contentType string) (string, error)

	// GetFileContent returns the object stream and its content type
	GetFileContent(key string) (io.ReadCloser, string, error)

	DeleteFile(key string) error

	// GetFileURL builds the access URL without touching the store
	GetFileURL(key string) string

	GetProviderName() string
}
