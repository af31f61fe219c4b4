package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// InfoResponse respuesta de GET /.
type InfoResponse struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Docs    string   `json:"docs"`
	Formats []string `json:"formats"`
}
