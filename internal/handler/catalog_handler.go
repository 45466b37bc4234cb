package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/response"
)

type catalogInvalidator interface {
	Invalidate(ctx context.Context, grade int)
}

// CatalogHandler lets administrators flush cached catalogs after editing
// cycles or subjects.
type CatalogHandler struct {
	catalog catalogInvalidator
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog catalogInvalidator) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Refresh godoc
// @Summary Drop the cached cycles and subjects of a grade
// @Tags Admin
// @Param grade path int true "Grade"
// @Success 200 {object} response.Envelope
// @Router /admin/catalog/{grade}/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	grade, err := strconv.Atoi(c.Param("grade"))
	if err != nil || grade < 1 || grade > 12 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "grade must be between 1 and 12"))
		return
	}
	h.catalog.Invalidate(c.Request.Context(), grade)
	response.JSON(c, http.StatusOK, gin.H{"grade": grade, "refreshed": true})
}
