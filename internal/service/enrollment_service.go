package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	"github.com/mindbridge-edu/mindbridge-core/internal/repository"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
	"github.com/mindbridge-edu/mindbridge-core/pkg/identifier"
)

type enrollmentStore interface {
	Settings(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, fn func(*models.Document) error) error
}

// EnrollRequest is the enrollment form payload.
type EnrollRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Email       string                  `json:"email" validate:"required,email"`
	Phone       string                  `json:"phone" validate:"required"`
	DateOfBirth string                  `json:"dateOfBirth" validate:"required"`
	ParentName  string                  `json:"parentName"`
	ParentEmail string                  `json:"parentEmail" validate:"omitempty,email"`
	ParentPhone string                  `json:"parentPhone"`
	Program     models.ProgramSelection `json:"program"`
}

// EnrollmentResult is returned on successful enrollment submission. The
// enrollment awaits payment; see PaymentService.
type EnrollmentResult struct {
	Student    models.Student    `json:"student"`
	Enrollment models.Enrollment `json:"enrollment"`
	Quote      models.FeeQuote   `json:"quote"`
}

// EnrollmentService validates enrollment submissions and creates the
// student/enrollment pair.
type EnrollmentService struct {
	data      enrollmentStore
	ids       *identifier.Generator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(data enrollmentStore, ids *identifier.Generator, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if ids == nil {
		ids = identifier.NewGenerator()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		data:      data,
		ids:       ids,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *EnrollmentService) WithClock(now func() time.Time) *EnrollmentService {
	s.now = now
	return s
}

// Enroll validates the submission, rejects duplicate emails, and creates the
// student together with a pending-payment enrollment in a single document
// write. The total fee is derived from the fee calculator, never taken from
// the caller. On any failure no state is mutated.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*EnrollmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid enrollment payload")
	}
	if err := validateSelection(req.Program); err != nil {
		return nil, err
	}

	settings, err := s.data.Settings(ctx)
	if err != nil {
		return nil, err
	}

	quote := CalculateFee(req.Program)
	now := s.now()
	student := models.Student{
		ID:             s.ids.New("MB"),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    req.DateOfBirth,
		ParentName:     req.ParentName,
		ParentEmail:    req.ParentEmail,
		ParentPhone:    req.ParentPhone,
		EnrollmentDate: now,
		Status:         models.StudentStatusActive,
		GradeLevel:     models.DefaultGradeLevel,
	}
	enrollment := models.Enrollment{
		ID:        s.ids.New("ENR"),
		StudentID: student.ID,
		Program:   req.Program,
		TotalFee:  quote.Total,
		Semester:  settings.CurrentSemester,
		StartDate: now,
		Status:    models.EnrollmentStatusPendingPayment,
	}

	// The uniqueness check runs inside the same read-modify-write as the
	// appends so check and insert see one document state.
	err = s.data.Update(ctx, func(doc *models.Document) error {
		if existing := repository.FindStudentByEmail(doc, req.Email); existing != nil {
			return appErrors.Clone(appErrors.ErrDuplicateEmail,
				"a student with this email is already enrolled; use a different email or log in")
		}
		doc.Students = append(doc.Students, student)
		doc.Enrollments = append(doc.Enrollments, enrollment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("enrollment submitted",
		zap.String("student_id", student.ID),
		zap.String("enrollment_id", enrollment.ID),
		zap.String("program", string(req.Program.Type)),
		zap.Int("total_fee", quote.Total))
	return &EnrollmentResult{Student: student, Enrollment: enrollment, Quote: quote}, nil
}

// validateSelection enforces the program-variant rules the fee calculator
// itself does not check.
func validateSelection(sel models.ProgramSelection) error {
	switch sel.Type {
	case models.ProgramSpecialOnly:
		if sel.Category == "" {
			return appErrors.Clone(appErrors.ErrValidation, "select a Special Education category")
		}
	case models.ProgramCoreOnly:
	case models.ProgramSingleExtra:
		if sel.Course == "" {
			return appErrors.Clone(appErrors.ErrValidation, "select an extra course")
		}
	case models.ProgramCorePlus:
		if len(sel.ExtraCourses) == 0 {
			return appErrors.Clone(appErrors.ErrValidation, "select at least 1 extra course")
		}
		if len(sel.ExtraCourses) > 2 {
			return appErrors.Clone(appErrors.ErrOverselection, "you can only select up to 2 extra courses")
		}
	default:
		return appErrors.Clone(appErrors.ErrValidation, "select a program")
	}
	return nil
}
