// Package imagestore guarda las imágenes de la carta en disco y las expone bajo una URL base.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

var _ ports.ImageStore = (*FileStore)(nil)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// FileStore implementación de ports.ImageStore sobre el sistema de archivos local.
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return &FileStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir directorio servido como estático.
func (s *FileStore) Dir() string { return s.dir }

// Upload escribe la imagen con un nombre aleatorio y devuelve baseURL/nombre.
func (s *FileStore) Upload(_ context.Context, data []byte, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("tipo de imagen no soportado: %s", contentType)
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete borra la imagen si la URL pertenece a este almacén. Un archivo ya inexistente no es error.
func (s *FileStore) Delete(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}
