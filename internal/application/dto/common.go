package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PersistWarning se agrega a las respuestas cuyo cambio quedó solo en memoria.
const PersistWarning = "cambio aplicado localmente; no se pudo guardar en el almacenamiento"
