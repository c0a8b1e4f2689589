package dto

// ErrorResponse cuerpo de error HTTP: código legible por máquina y mensaje para el usuario.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
