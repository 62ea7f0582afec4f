package handlers

// BodyResponse lleva el código interno (S.. éxito, F.. fallo) y los datos
type BodyResponse struct {
	IntCode string        `json:"intCode"`
	Data    []interface{} `json:"data"`
}

// StandardResponse es el sobre de todas las respuestas JSON de la API
type StandardResponse struct {
	StatusCode int          `json:"statusCode"`
	Body       BodyResponse `json:"body"`
}

// PaginaResponse es la forma de los listados paginados dentro de Data
type PaginaResponse struct {
	Items      interface{} `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}
