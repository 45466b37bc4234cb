package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/middleware"
	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// studentQueryFromRequest reads studentNumber, grade and cycle from the query
// string. Students default to the number and grade carried by their token and
// may only read their own results.
func studentQueryFromRequest(c *gin.Context, claims *models.JWTClaims) (dto.StudentAssessmentsQuery, error) {
	var query dto.StudentAssessmentsQuery
	if claims == nil {
		return query, appErrors.ErrUnauthorized
	}

	if raw := c.Query("studentNumber"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query, appErrors.Validation(err, "studentNumber must be a number")
		}
		query.StudentNumber = n
	} else if claims.StudentNumber != nil {
		query.StudentNumber = *claims.StudentNumber
	}

	if raw := c.Query("grade"); raw != "" {
		g, err := strconv.Atoi(raw)
		if err != nil {
			return query, appErrors.Validation(err, "grade must be a number")
		}
		query.Grade = g
	} else if claims.Grade != nil {
		query.Grade = *claims.Grade
	}

	if raw := c.Query("cycle"); raw != "" {
		cycle, err := strconv.Atoi(raw)
		if err != nil {
			return query, appErrors.Validation(err, "cycle must be a number")
		}
		query.Cycle = &cycle
	}
	query.Alias = c.Query("alias")

	if query.StudentNumber != 0 && !claims.CanViewStudent(query.StudentNumber) {
		return query, appErrors.Clone(appErrors.ErrForbidden, "students may only view their own results")
	}
	return query, nil
}

func bindError(err error, message string) error {
	return appErrors.Validation(err, message)
}
