package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/validation"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorAttachesValidationFields(t *testing.T) {
	type payload struct {
		Message string `json:"message" validate:"required"`
	}
	err := validation.New().Struct(payload{})
	require.Error(t, err)

	c, w := newContext()
	Error(c, appErrors.Validation(err, "invalid chat request"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "message is a required field", body.Error.Fields["message"])
}

func TestJSONOmitsEmptyMeta(t *testing.T) {
	c, w := newContext()
	JSON(c, http.StatusOK, gin.H{"ok": true}, map[string]interface{}{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "meta")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestTooManyRequestsSetsRetryAfter(t *testing.T) {
	c, w := newContext()
	TooManyRequests(c, 0)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.True(t, c.IsAborted())
}
