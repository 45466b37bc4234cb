package dto

import "github.com/ivaschool/portal-api/internal/models"

// ChatRequest is a student's message plus the prior conversation.
type ChatRequest struct {
	Message string               `json:"message" validate:"required,max=4000"`
	History []models.ChatMessage `json:"history" validate:"omitempty,max=50,dive"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Response string `json:"response"`
}
