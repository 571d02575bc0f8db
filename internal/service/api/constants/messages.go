package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다. 스토어프런트 사용자에게 그대로 노출됩니다.
const (
	// 400 Bad Request
	ErrMsgBadRequest            = "Solicitud inválida"
	ErrMsgBadRequestInvalidBody = "No se pudo leer el cuerpo de la solicitud. Verifique el formato JSON"
	ErrMsgBadRequestEmptyBody   = "El cuerpo de la solicitud está vacío"
	ErrMsgInvalidSort           = "Criterio de orden desconocido: %s"
	ErrMsgInvalidPage           = "Página fuera de rango: %d (total %d)"
	ErrMsgInvalidDirection      = "Dirección de página desconocida: %s"

	// 401 Unauthorized
	ErrMsgInvalidWebhookSignature = "Firma de notificación inválida"

	// 404 Not Found
	ErrMsgNotFound        = "Recurso no encontrado"
	ErrMsgProductNotFound = "Producto no encontrado: %s"

	// 413 Request Entity Too Large
	ErrMsgRequestEntityTooLarge = "El cuerpo de la solicitud es demasiado grande"

	// 415 Unsupported Media Type
	ErrMsgUnsupportedMediaType = "Tipo de contenido no soportado"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "Demasiadas solicitudes. Intente nuevamente en unos instantes"

	// 500 Internal Server Error
	ErrMsgInternalServer = "Error interno del servidor"

	// 503 Service Unavailable
	ErrMsgServiceUnavailable = "Servicio no disponible temporalmente. Intente nuevamente más tarde"
)
