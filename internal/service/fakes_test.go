package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/ivaschool/portal-api/internal/models"
)

// gradebookStore is an in-memory assessment and mark store.
type gradebookStore struct {
	mu          sync.Mutex
	assessments map[string]models.Assessment
	marks       map[string]models.Mark
	seq         int

	listErr  error
	marksErr error

	listCalls int
	markCalls int
}

func newGradebookStore() *gradebookStore {
	return &gradebookStore{assessments: map[string]models.Assessment{}, marks: map[string]models.Mark{}}
}

func (s *gradebookStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *gradebookStore) ListForSubjects(ctx context.Context, subjectIDs []string, cycle int) ([]models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	wanted := map[string]bool{}
	for _, id := range subjectIDs {
		wanted[id] = true
	}
	out := []models.Assessment{}
	for _, a := range s.assessments {
		if wanted[a.SubjectID] && a.Cycle == cycle {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (s *gradebookStore) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []models.Assessment{}
	for _, a := range s.assessments {
		if filter.TeacherID != "" && !a.OwnedBy(filter.TeacherID) {
			continue
		}
		if filter.SubjectID != "" && a.SubjectID != filter.SubjectID {
			continue
		}
		if filter.Cycle != nil && a.Cycle != *filter.Cycle {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	return out, nil
}

func (s *gradebookStore) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assessments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (s *gradebookStore) Create(ctx context.Context, assessment *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if assessment.ID == "" {
		assessment.ID = s.nextID("as")
	}
	s.assessments[assessment.ID] = *assessment
	return nil
}

func (s *gradebookStore) Update(ctx context.Context, assessment *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assessments[assessment.ID]; !ok {
		return sql.ErrNoRows
	}
	s.assessments[assessment.ID] = *assessment
	return nil
}

func (s *gradebookStore) DeleteCascade(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assessments[id]; !ok {
		return 0, sql.ErrNoRows
	}
	var removed int64
	for key, m := range s.marks {
		if m.AssessmentID == id {
			delete(s.marks, key)
			removed++
		}
	}
	delete(s.assessments, id)
	return removed, nil
}

func markKey(assessmentID string, studentNumber int64) string {
	return fmt.Sprintf("%s/%d", assessmentID, studentNumber)
}

func (s *gradebookStore) ListForStudent(ctx context.Context, assessmentIDs []string, studentNumber int64) ([]models.Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markCalls++
	if s.marksErr != nil {
		return nil, s.marksErr
	}
	out := []models.Mark{}
	for _, id := range assessmentIDs {
		if m, ok := s.marks[markKey(id, studentNumber)]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *gradebookStore) ListByAssessment(ctx context.Context, assessmentID string) ([]models.Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.marksErr != nil {
		return nil, s.marksErr
	}
	out := []models.Mark{}
	for _, m := range s.marks {
		if m.AssessmentID == assessmentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *gradebookStore) Upsert(ctx context.Context, mark *models.Mark, publish *bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.marksErr != nil {
		return false, s.marksErr
	}
	key := markKey(mark.AssessmentID, mark.StudentNumber)
	existing, ok := s.marks[key]
	if ok {
		mark.ID = existing.ID
		mark.IsPublished = existing.IsPublished
	} else {
		mark.ID = s.nextID("mk")
		mark.IsPublished = false
	}
	if publish != nil {
		mark.IsPublished = *publish
	}
	s.marks[key] = *mark
	return !ok, nil
}

func (s *gradebookStore) SetPublished(ctx context.Context, assessmentID string, published bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key, m := range s.marks {
		if m.AssessmentID == assessmentID {
			m.IsPublished = published
			s.marks[key] = m
			n++
		}
	}
	return n, nil
}

func (s *gradebookStore) storedMark(assessmentID string, studentNumber int64) (models.Mark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.marks[markKey(assessmentID, studentNumber)]
	return m, ok
}

func (s *gradebookStore) countMarks(assessmentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.marks {
		if m.AssessmentID == assessmentID {
			n++
		}
	}
	return n
}

// catalogStub serves cycles and subjects.
type catalogStub struct {
	cycles      []models.Cycle
	subjects    []models.Subject
	cyclesErr   error
	subjectsErr error
	byNameErr   error
}

func (c *catalogStub) Cycles(ctx context.Context, grade int) ([]models.Cycle, error) {
	return c.cycles, c.cyclesErr
}

func (c *catalogStub) Subjects(ctx context.Context, grade int) ([]models.Subject, error) {
	if c.subjectsErr != nil {
		return nil, c.subjectsErr
	}
	return c.subjects, nil
}

func (c *catalogStub) SubjectsByName(ctx context.Context, grade int, names []string) (map[string]models.Subject, error) {
	if c.byNameErr != nil {
		return nil, c.byNameErr
	}
	out := map[string]models.Subject{}
	for _, name := range names {
		for _, s := range c.subjects {
			if s.Name == name {
				out[name] = s
			}
		}
	}
	return out, nil
}

func (c *catalogStub) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	for _, s := range c.subjects {
		if s.ID == id {
			subject := s
			return &subject, nil
		}
	}
	return nil, sql.ErrNoRows
}

type enrollmentStub struct {
	enrollment *models.Enrollment
	err        error
	calls      int
}

func (e *enrollmentStub) FindByStudent(ctx context.Context, studentNumber int64, grade int) (*models.Enrollment, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	if e.enrollment == nil {
		return nil, sql.ErrNoRows
	}
	return e.enrollment, nil
}

type rosterStub struct {
	students []models.Student
	err      error
}

func (r rosterStub) ListByGrade(ctx context.Context, grade int) ([]models.Student, error) {
	return r.students, r.err
}

func (r rosterStub) ExistsInGrade(ctx context.Context, studentNumber int64, grade int) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, s := range r.students {
		if s.StudentNumber == studentNumber && s.Grade == grade {
			return true, nil
		}
	}
	return false, nil
}

// assignmentStub maps teacher ids to the subject ids they teach.
type assignmentStub struct {
	subjects map[string][]string
	err      error
}

func (a assignmentStub) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSubject, error) {
	if a.err != nil {
		return nil, a.err
	}
	out := []models.TeacherSubject{}
	for _, id := range a.subjects[teacherID] {
		out = append(out, models.TeacherSubject{SubjectID: id})
	}
	return out, nil
}
