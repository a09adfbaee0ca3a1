package dto

// ErrorResponse cuerpo de error HTTP. Solo viajan el código de la taxonomía
// y un mensaje genérico: el texto crudo del driver nunca cruza la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse respuesta mínima para operaciones sin cuerpo (delete, logout).
type StatusResponse struct {
	Success bool `json:"success"`
}
