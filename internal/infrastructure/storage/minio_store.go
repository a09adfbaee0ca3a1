package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tu-usuario/catalogo-api/internal/application/usecase"
	"github.com/tu-usuario/catalogo-api/pkg/config"
)

var _ usecase.ImageStore = (*MinioImageStore)(nil)

// opTimeout acota cada llamada al object store: una subida lenta demora solo
// esa petición, nunca bloquea sin límite.
const opTimeout = 15 * time.Second

// MinioImageStore implementación del puerto ImageStore sobre un object store
// compatible con S3 (MinIO). Reemplaza al CDN de imágenes del sistema
// original detrás del mismo contrato store/remove.
type MinioImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string // base pública para construir la URL servible
}

// NewMinioImageStore construye el cliente y verifica/crea el bucket.
func NewMinioImageStore(ctx context.Context, cfg config.StorageConfig) (*MinioImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("cliente minio: %w", err)
	}

	store := &MinioImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinioImageStore) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("verificar bucket: %w", err)
	}
	if !found {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("crear bucket: %w", err)
		}
	}
	return nil
}

// Store sube una imagen bajo una clave única y devuelve clave + URL pública.
// La extensión original se conserva en la clave como pista del formato.
func (s *MinioImageStore) Store(ctx context.Context, reader io.Reader, size int64, contentType, nameHint string) (*usecase.StoredImage, error) {
	ext := strings.ToLower(filepath.Ext(nameHint))
	key := fmt.Sprintf("items/%s%s", uuid.NewString(), ext)

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	return &usecase.StoredImage{
		Key: key,
		URL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
	}, nil
}

// Remove borra un objeto por clave. El caller decide si el fallo importa;
// aquí solo se reporta.
func (s *MinioImageStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}
