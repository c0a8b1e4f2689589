package usecase

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/restaurante-api/internal/domain"
)

// MaxImageBytes tamaño máximo de una imagen de la carta ya decodificada (5 MiB).
const MaxImageBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": "image/jpeg",
	"image/jpg":  "image/jpeg",
	"image/png":  "image/png",
	"image/webp": "image/webp",
}

// decodeImageDataURI valida un data URI "data:<mime>;base64,<payload>" y devuelve los bytes
// con su tipo MIME normalizado. El contenido debe coincidir con el tipo declarado.
func decodeImageDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimSpace(uri), ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, "", fmt.Errorf("%w: la imagen debe ser un data URI en base64", domain.ErrValidation)
	}
	declared := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64"))
	contentType, ok := allowedImageTypes[declared]
	if !ok {
		return nil, "", fmt.Errorf("%w: tipo de imagen no permitido (%s); use jpeg, png o webp", domain.ErrValidation, declared)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+2 {
		return nil, "", fmt.Errorf("%w: la imagen supera el tamaño máximo de 5MB", domain.ErrValidation)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: base64 de la imagen inválido", domain.ErrValidation)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: la imagen está vacía", domain.ErrValidation)
	}
	if len(data) > MaxImageBytes {
		return nil, "", fmt.Errorf("%w: la imagen supera el tamaño máximo de 5MB", domain.ErrValidation)
	}

	if detected := mimetype.Detect(data); !detected.Is(contentType) {
		return nil, "", fmt.Errorf("%w: el contenido (%s) no coincide con el tipo declarado %s", domain.ErrValidation, detected.String(), declared)
	}
	return data, contentType, nil
}
