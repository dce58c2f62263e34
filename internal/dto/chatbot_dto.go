package dto

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
