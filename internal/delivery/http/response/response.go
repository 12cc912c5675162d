package response

// ErrorResponse is the body of every API error. Fields is set for
// validation failures only.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"` // "ok" or "unavailable"
	Store  string `json:"store"`  // "healthy" or "unhealthy"
}
