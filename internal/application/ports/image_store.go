package ports

import "context"

// ImageStore define el puerto de salida para almacenar las imágenes de la carta.
// Cualquier adaptador (disco local, S3, Cloudinary) debe implementar esta interfaz;
// la aplicación solo persiste la URL durable que devuelve Upload.
type ImageStore interface {
	// Upload guarda la imagen ya validada y devuelve su URL pública.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	// Delete elimina la imagen identificada por su URL. Las URLs ajenas al almacén se ignoran.
	Delete(ctx context.Context, url string) error
}
