package errors

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorWrapsUnknownAsInternal(t *testing.T) {
	appErr := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, appErr, sql.ErrConnDone)
}

func TestCloneKeepsCodeAndMatchesTemplate(t *testing.T) {
	err := Clone(ErrNotFound, "assessment not found")
	assert.Equal(t, "assessment not found", err.Message)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestUpstreamIsDistinctFromInternal(t *testing.T) {
	err := Upstream(sql.ErrConnDone, "failed to fetch assessments")
	assert.Equal(t, http.StatusServiceUnavailable, FromError(err).Status)
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "failed to fetch assessments")
}
