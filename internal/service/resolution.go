package service

import (
	"strings"
	"time"

	"github.com/ivaschool/portal-api/internal/models"
)

// SelectCycle picks the applicable grading cycle. An explicit cycle number is
// matched exactly and never falls back. Otherwise the first cycle whose
// inclusive date range contains today wins, then the first cycle in input
// order. It returns nil only when nothing is selectable.
func SelectCycle(cycles []models.Cycle, explicit *int, today time.Time) *models.Cycle {
	if explicit != nil {
		for i := range cycles {
			if cycles[i].Cycle == *explicit {
				selected := cycles[i]
				return &selected
			}
		}
		return nil
	}

	for i := range cycles {
		if cycles[i].Contains(today) {
			selected := cycles[i]
			return &selected
		}
	}

	if len(cycles) == 0 {
		return nil
	}
	first := cycles[0]
	return &first
}

// ResolveAlias folds a timetable label onto its canonical subject name.
// Matching is case-insensitive against the name and every alias; the first
// subject in catalog order wins. The label is not trimmed.
func ResolveAlias(subjects []models.Subject, alias string) *string {
	subject := matchSubject(subjects, alias)
	if subject == nil {
		return nil
	}
	name := subject.Name
	return &name
}

func resolveSubjectID(subjects []models.Subject, alias string) *string {
	subject := matchSubject(subjects, alias)
	if subject == nil {
		return nil
	}
	id := subject.ID
	return &id
}

func matchSubject(subjects []models.Subject, alias string) *models.Subject {
	if alias == "" {
		return nil
	}
	for i := range subjects {
		if strings.EqualFold(subjects[i].Name, alias) {
			return &subjects[i]
		}
		for _, candidate := range subjects[i].TimetableAliases {
			if strings.EqualFold(candidate, alias) {
				return &subjects[i]
			}
		}
	}
	return nil
}
