package models

// ErrorResponse is the error body every endpoint returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ShareImageResponse struct {
	Success bool   `json:"success"`
	ImageID string `json:"imageId"`
}
