package usecase

import (
	"context"
	"io"
)

// StoredImage resultado de subir una imagen al object store.
type StoredImage struct {
	Key string // clave del objeto, necesaria para borrarlo después
	URL string // URL pública servible al cliente
}

// ImageStore puerto del colaborador de imágenes (MinIO en infraestructura).
// Remove es best-effort: los casos de uso registran el fallo y siguen;
// una imagen huérfana es un estado degradado aceptable, no un error fatal.
type ImageStore interface {
	Store(ctx context.Context, reader io.Reader, size int64, contentType, nameHint string) (*StoredImage, error)
	Remove(ctx context.Context, key string) error
}

// ImageUpload imagen entrante desde el multipart del handler.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}
