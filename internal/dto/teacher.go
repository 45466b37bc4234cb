package dto

// RosterEntry is one student's row on a teacher's marking sheet. Teachers
// always see stored values regardless of publication.
type RosterEntry struct {
	StudentNumber int64    `json:"student_number"`
	StudentName   string   `json:"student_name"`
	MarkID        *string  `json:"mark_id"`
	Obtained      *float64 `json:"mark_obtained"`
	Comments      *string  `json:"teacher_comments"`
	IsPublished   bool     `json:"is_published"`
}

// PublishResult reports how many marks a bulk publish touched.
type PublishResult struct {
	AssessmentID string `json:"assessment_id"`
	IsPublished  bool   `json:"is_published"`
	Updated      int64  `json:"updated"`
}

// AssessmentListQuery filters the teacher assessment listing.
type AssessmentListQuery struct {
	SubjectID string `form:"subject"`
	Cycle     *int   `form:"cycle" validate:"omitempty,min=1"`
}

// AssessmentRequest is the create/update payload. Weighting is a fraction
// of the cycle total.
type AssessmentRequest struct {
	SubjectID string   `json:"subject_id" validate:"required"`
	Title     string   `json:"title" validate:"required,max=200"`
	DueDate   string   `json:"due_date" validate:"required,datetime=2006-01-02"`
	MaxMarks  *float64 `json:"max_marks" validate:"omitempty,gt=0"`
	Weighting *float64 `json:"weighting" validate:"omitempty,gt=0,lte=1"`
	IsTest    bool     `json:"is_test"`
	Cycle     int      `json:"cycle" validate:"required,min=1"`
}

// MarkRequest records one student's score. A nil IsPublished keeps the
// stored flag.
type MarkRequest struct {
	AssessmentID  string   `json:"assessment_id" validate:"required"`
	StudentNumber int64    `json:"student_number" validate:"required,min=100000,max=999999"`
	Obtained      *float64 `json:"mark_obtained" validate:"omitempty,gte=0"`
	Comments      *string  `json:"teacher_comments" validate:"omitempty,max=2000"`
	IsPublished   *bool    `json:"is_published"`
}

// PublishRequest toggles publication for a whole assessment.
type PublishRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}
