package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/pkg/response"
)

type assistantService interface {
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
}

// AssistantHandler proxies the study assistant.
type AssistantHandler struct {
	service assistantService
}

// NewAssistantHandler constructs the handler.
func NewAssistantHandler(service assistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Chat godoc
// @Summary Ask the study assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Message and history"
// @Success 200 {object} response.Envelope{data=dto.ChatResponse}
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid chat payload"))
		return
	}
	reply, err := h.service.Chat(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reply)
}
