package service

import (
	"context"
	"sync"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
)

// docStore backs the service tests with a plain in-memory document,
// mirroring the repository facade contracts. The mutex only matters for
// tests that touch the background payment workers.
type docStore struct {
	mu  sync.Mutex
	doc *models.Document
}

func newDocStore() *docStore {
	doc := &models.Document{
		Settings: models.Settings{
			SchoolName:      "Mindbridge Online School",
			CurrentSemester: "Spring 2026",
		},
	}
	doc.EnsureCollections()
	return &docStore{doc: doc}
}

func (s *docStore) Document(ctx context.Context) (*models.Document, error) {
	return s.doc, nil
}

func (s *docStore) Update(ctx context.Context, fn func(*models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

// inspect runs fn under the store lock, for assertions that race with
// background workers.
func (s *docStore) inspect(fn func(*models.Document) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

func (s *docStore) Settings(ctx context.Context) (models.Settings, error) {
	return s.doc.Settings, nil
}

func (s *docStore) Tutor(ctx context.Context, id string) (*models.Tutor, error) {
	tutor, ok := s.doc.Tutors[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	return tutor, nil
}

func (s *docStore) SaveTutor(ctx context.Context, tutor *models.Tutor) error {
	s.doc.Tutors[tutor.ID] = tutor
	return nil
}

func (s *docStore) TutorForStudent(ctx context.Context, studentID string) (*models.Tutor, error) {
	for _, a := range s.doc.Assignments {
		if a.StudentID == studentID {
			return s.Tutor(ctx, a.TutorID)
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student has no assigned tutor")
}

func (s *docStore) Students(ctx context.Context) ([]models.Student, error) {
	return s.doc.Students, nil
}

func (s *docStore) StudentByID(ctx context.Context, id string) (*models.Student, error) {
	for i := range s.doc.Students {
		if s.doc.Students[i].ID == id {
			return &s.doc.Students[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

func (s *docStore) EnrollmentByID(ctx context.Context, id string) (*models.Enrollment, error) {
	for i := range s.doc.Enrollments {
		if s.doc.Enrollments[i].ID == id {
			return &s.doc.Enrollments[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
}

func (s *docStore) Payments(ctx context.Context) ([]models.Payment, error) {
	return s.doc.Payments, nil
}

func (s *docStore) Complaints(ctx context.Context) ([]models.Complaint, error) {
	return s.doc.Complaints, nil
}

func (s *docStore) Enquiries(ctx context.Context) ([]models.Enquiry, error) {
	return s.doc.Enquiries, nil
}
