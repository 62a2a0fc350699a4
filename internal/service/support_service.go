package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
	"github.com/mindbridge-edu/mindbridge-core/pkg/identifier"
)

type supportStore interface {
	StudentByID(ctx context.Context, id string) (*models.Student, error)
	Complaints(ctx context.Context) ([]models.Complaint, error)
	Enquiries(ctx context.Context) ([]models.Enquiry, error)
	Update(ctx context.Context, fn func(*models.Document) error) error
}

// SubmitComplaintRequest files a confidential complaint.
type SubmitComplaintRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// SubmitEnquiryRequest files a general enquiry.
type SubmitEnquiryRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// SupportItem is one row of a student's merged support history.
type SupportItem struct {
	ID       string               `json:"id"`
	Kind     string               `json:"kind"`
	Subject  string               `json:"subject"`
	Status   models.SupportStatus `json:"status"`
	Response string               `json:"response,omitempty"`
	Date     time.Time            `json:"date"`
}

// SupportService handles complaints and enquiries. Complaints are
// confidential: only admin listings expose them, and they are always filed
// with the confidential flag set.
type SupportService struct {
	data      supportStore
	ids       *identifier.Generator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSupportService constructs SupportService.
func NewSupportService(data supportStore, ids *identifier.Generator, validate *validator.Validate, logger *zap.Logger) *SupportService {
	if ids == nil {
		ids = identifier.NewGenerator()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupportService{
		data:      data,
		ids:       ids,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *SupportService) WithClock(now func() time.Time) *SupportService {
	s.now = now
	return s
}

// SubmitComplaint files a confidential complaint on behalf of a student.
func (s *SupportService) SubmitComplaint(ctx context.Context, req SubmitComplaintRequest) (*models.Complaint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid complaint payload")
	}
	student, err := s.data.StudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	complaint := models.Complaint{
		ID:           s.ids.New("COMP"),
		StudentID:    student.ID,
		StudentName:  student.Name,
		Type:         req.Type,
		Subject:      req.Subject,
		Description:  req.Description,
		Status:       models.SupportStatusPending,
		Confidential: true,
		Date:         s.now(),
	}
	err = s.data.Update(ctx, func(doc *models.Document) error {
		doc.Complaints = append(doc.Complaints, complaint)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Complaint subjects can name staff; log only the id.
	s.logger.Info("complaint submitted",
		zap.String("complaint_id", complaint.ID),
		zap.String("student_id", student.ID))
	return &complaint, nil
}

// SubmitEnquiry files a general enquiry on behalf of a student.
func (s *SupportService) SubmitEnquiry(ctx context.Context, req SubmitEnquiryRequest) (*models.Enquiry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid enquiry payload")
	}
	student, err := s.data.StudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	enquiry := models.Enquiry{
		ID:          s.ids.New("ENQ"),
		StudentID:   student.ID,
		StudentName: student.Name,
		Message:     req.Message,
		Status:      models.SupportStatusPending,
		Date:        s.now(),
	}
	err = s.data.Update(ctx, func(doc *models.Document) error {
		doc.Enquiries = append(doc.Enquiries, enquiry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// ResolveComplaint records the admin response and marks the complaint
// resolved.
func (s *SupportService) ResolveComplaint(ctx context.Context, complaintID, response string) error {
	return s.data.Update(ctx, func(doc *models.Document) error {
		for i := range doc.Complaints {
			if doc.Complaints[i].ID == complaintID {
				doc.Complaints[i].Status = models.SupportStatusResolved
				doc.Complaints[i].Response = response
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
	})
}

// ResolveEnquiry records the admin response and marks the enquiry resolved.
func (s *SupportService) ResolveEnquiry(ctx context.Context, enquiryID, response string) error {
	return s.data.Update(ctx, func(doc *models.Document) error {
		for i := range doc.Enquiries {
			if doc.Enquiries[i].ID == enquiryID {
				doc.Enquiries[i].Status = models.SupportStatusResolved
				doc.Enquiries[i].Response = response
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
	})
}

// HistoryForStudent merges the student's own complaints and enquiries into
// one list, newest first. The student sees only their own items.
func (s *SupportService) HistoryForStudent(ctx context.Context, studentID string) ([]SupportItem, error) {
	complaints, err := s.data.Complaints(ctx)
	if err != nil {
		return nil, err
	}
	enquiries, err := s.data.Enquiries(ctx)
	if err != nil {
		return nil, err
	}

	var items []SupportItem
	for _, c := range complaints {
		if c.StudentID != studentID {
			continue
		}
		items = append(items, SupportItem{
			ID:       c.ID,
			Kind:     "complaint",
			Subject:  c.Subject,
			Status:   c.Status,
			Response: c.Response,
			Date:     c.Date,
		})
	}
	for _, e := range enquiries {
		if e.StudentID != studentID {
			continue
		}
		items = append(items, SupportItem{
			ID:       e.ID,
			Kind:     "enquiry",
			Subject:  e.Message,
			Status:   e.Status,
			Response: e.Response,
			Date:     e.Date,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

// PendingComplaints lists unresolved complaints for the admin queue.
func (s *SupportService) PendingComplaints(ctx context.Context) ([]models.Complaint, error) {
	complaints, err := s.data.Complaints(ctx)
	if err != nil {
		return nil, err
	}
	var pending []models.Complaint
	for _, c := range complaints {
		if c.Status == models.SupportStatusPending {
			pending = append(pending, c)
		}
	}
	return pending, nil
}

// PendingEnquiries lists unresolved enquiries for the admin queue.
func (s *SupportService) PendingEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	enquiries, err := s.data.Enquiries(ctx)
	if err != nil {
		return nil, err
	}
	var pending []models.Enquiry
	for _, e := range enquiries {
		if e.Status == models.SupportStatusPending {
			pending = append(pending, e)
		}
	}
	return pending, nil
}
