package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivaschool/portal-api/internal/dto"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
)

type assistantServiceMock struct {
	req dto.ChatRequest
	err error
}

func (m *assistantServiceMock) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ChatResponse{Response: "Try drawing a diagram."}, nil
}

func TestAssistantHandlerChat(t *testing.T) {
	mockSvc := &assistantServiceMock{}
	handler := NewAssistantHandler(mockSvc)
	c, w := newTestContext(http.MethodPost, "/assistant/chat", studentClaims())
	withJSON(c, `{"message":"help with vectors","history":[{"role":"user","content":"hi"}]}`)
	handler.Chat(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "help with vectors", mockSvc.req.Message)
	assert.Len(t, mockSvc.req.History, 1)
	assert.Contains(t, w.Body.String(), "Try drawing a diagram.")
}

func TestAssistantHandlerUnconfigured(t *testing.T) {
	handler := NewAssistantHandler(&assistantServiceMock{err: appErrors.Clone(appErrors.ErrServiceUnavailable, "assistant is not configured")})
	c, w := newTestContext(http.MethodPost, "/assistant/chat", studentClaims())
	withJSON(c, `{"message":"hi"}`)
	handler.Chat(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type invalidatorMock struct{ grade int }

func (m *invalidatorMock) Invalidate(ctx context.Context, grade int) { m.grade = grade }

func TestCatalogHandlerRefresh(t *testing.T) {
	inv := &invalidatorMock{}
	handler := NewCatalogHandler(inv)

	c, w := newTestContext(http.MethodPost, "/admin/catalog/10/refresh", teacher())
	c.Params = []gin.Param{{Key: "grade", Value: "10"}}
	handler.Refresh(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, inv.grade)

	c, w = newTestContext(http.MethodPost, "/admin/catalog/0/refresh", teacher())
	c.Params = []gin.Param{{Key: "grade", Value: "0"}}
	handler.Refresh(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsHandlerReady(t *testing.T) {
	handler := NewMetricsHandler(nil, map[string]ReadinessCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return assert.AnError },
	})
	c, w := newTestContext(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)
}
