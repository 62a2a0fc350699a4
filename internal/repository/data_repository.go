package repository

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	"github.com/mindbridge-edu/mindbridge-core/internal/store"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
)

// Data is the record-store facade: typed lookups and appends over the single
// persisted document. Queries are linear scans, which is fine at this scale;
// a deployment with larger datasets should swap in indexed maps keyed by
// id/email while keeping these contracts.
type Data struct {
	store  store.Store
	logger *zap.Logger
}

// New constructs the facade.
func New(s store.Store, logger *zap.Logger) *Data {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Data{store: s, logger: logger}
}

// Document returns the current document.
func (d *Data) Document(ctx context.Context) (*models.Document, error) {
	doc, err := d.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load document")
	}
	return doc, nil
}

// Update applies fn to the document inside a single read-modify-write, so a
// multi-entity mutation is persisted in one Save. There is no cross-process
// locking: concurrent writers race with last-writer-wins on the whole
// document.
func (d *Data) Update(ctx context.Context, fn func(*models.Document) error) error {
	doc, err := d.Document(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := d.store.Save(ctx, doc); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to save document")
	}
	return nil
}

// Students returns all students.
func (d *Data) Students(ctx context.Context) ([]models.Student, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Students, nil
}

// StudentByID finds a student by id.
func (d *Data) StudentByID(ctx context.Context, id string) (*models.Student, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Students {
		if doc.Students[i].ID == id {
			return &doc.Students[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// StudentByEmail finds a student by email, case-insensitively.
func (d *Data) StudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	if s := FindStudentByEmail(doc, email); s != nil {
		return s, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// FindStudentByEmail scans a document for a student by email,
// case-insensitively. Exposed for callers that check uniqueness inside an
// Update closure.
func FindStudentByEmail(doc *models.Document, email string) *models.Student {
	for i := range doc.Students {
		if strings.EqualFold(doc.Students[i].Email, email) {
			return &doc.Students[i]
		}
	}
	return nil
}

// EnrollmentByID finds an enrollment by id.
func (d *Data) EnrollmentByID(ctx context.Context, id string) (*models.Enrollment, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Enrollments {
		if doc.Enrollments[i].ID == id {
			return &doc.Enrollments[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
}

// EnrollmentsByStudent returns a student's enrollments in insertion order.
func (d *Data) EnrollmentsByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Enrollment
	for _, e := range doc.Enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Payments returns all payments.
func (d *Data) Payments(ctx context.Context) ([]models.Payment, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Payments, nil
}

// PaymentsByStudent returns a student's payments.
func (d *Data) PaymentsByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Payment
	for _, p := range doc.Payments {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Tutor returns a tutor by id.
func (d *Data) Tutor(ctx context.Context, id string) (*models.Tutor, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	tutor, ok := doc.Tutors[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	return tutor, nil
}

// Tutors returns all tutors.
func (d *Data) Tutors(ctx context.Context) ([]models.Tutor, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Tutor, 0, len(doc.Tutors))
	for _, t := range doc.Tutors {
		out = append(out, *t)
	}
	return out, nil
}

// SaveTutor writes a tutor record back, creating it when absent.
func (d *Data) SaveTutor(ctx context.Context, tutor *models.Tutor) error {
	return d.Update(ctx, func(doc *models.Document) error {
		doc.Tutors[tutor.ID] = tutor
		return nil
	})
}

// TutorForStudent resolves the student's tutor through the assignment
// relation.
func (d *Data) TutorForStudent(ctx context.Context, studentID string) (*models.Tutor, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range doc.Assignments {
		if a.StudentID == studentID {
			tutor, ok := doc.Tutors[a.TutorID]
			if !ok {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "assigned tutor not found")
			}
			return tutor, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student has no assigned tutor")
}

// AddStudent appends a student.
func (d *Data) AddStudent(ctx context.Context, student models.Student) error {
	return d.Update(ctx, func(doc *models.Document) error {
		doc.Students = append(doc.Students, student)
		return nil
	})
}

// AddEnrollment appends an enrollment.
func (d *Data) AddEnrollment(ctx context.Context, enrollment models.Enrollment) error {
	return d.Update(ctx, func(doc *models.Document) error {
		doc.Enrollments = append(doc.Enrollments, enrollment)
		return nil
	})
}

// AddPayment appends a payment.
func (d *Data) AddPayment(ctx context.Context, payment models.Payment) error {
	return d.Update(ctx, func(doc *models.Document) error {
		doc.Payments = append(doc.Payments, payment)
		return nil
	})
}

// AddComplaint appends a complaint.
func (d *Data) AddComplaint(ctx context.Context, complaint models.Complaint) error {
	return d.Update(ctx, func(doc *models.Document) error {
		doc.Complaints = append(doc.Complaints, complaint)
		return nil
	})
}

// AddEnquiry appends an enquiry.
func (d *Data) AddEnquiry(ctx context.Context, enquiry models.Enquiry) error {
	return d.Update(ctx, func(doc *models.Document) error {
		doc.Enquiries = append(doc.Enquiries, enquiry)
		return nil
	})
}

// Complaints returns all complaints (admin only; see models.Complaint).
func (d *Data) Complaints(ctx context.Context) ([]models.Complaint, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Complaints, nil
}

// Enquiries returns all enquiries.
func (d *Data) Enquiries(ctx context.Context) ([]models.Enquiry, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Enquiries, nil
}

// Courses returns the course catalog.
func (d *Data) Courses(ctx context.Context) ([]models.Course, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Courses, nil
}

// Settings returns the school settings.
func (d *Data) Settings(ctx context.Context) (models.Settings, error) {
	doc, err := d.Document(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	return doc.Settings, nil
}
