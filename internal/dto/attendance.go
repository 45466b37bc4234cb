package dto

import "github.com/ivaschool/portal-api/internal/models"

// AttendanceReport lists a student's attendance with totals.
type AttendanceReport struct {
	Records []models.AttendanceRecord `json:"records"`
	Summary models.AttendanceSummary  `json:"summary"`
}
