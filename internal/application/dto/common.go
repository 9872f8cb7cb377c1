package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MutationResponse respuesta de toda mutación exitosa. Refresh siempre es true:
// el cliente debe volver a pedir la vista.
type MutationResponse struct {
	Refresh bool   `json:"refresh"`
	ID      string `json:"id,omitempty"`
}
