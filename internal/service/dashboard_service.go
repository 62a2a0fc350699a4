package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
)

type dashboardStore interface {
	Document(ctx context.Context) (*models.Document, error)
	TutorForStudent(ctx context.Context, studentID string) (*models.Tutor, error)
}

// AdminOverview is the headline figures for the admin dashboard.
type AdminOverview struct {
	TotalStudents     int `json:"totalStudents"`
	ActiveStudents    int `json:"activeStudents"`
	TotalTutors       int `json:"totalTutors"`
	ActiveEnrollments int `json:"activeEnrollments"`
	PendingPayments   int `json:"pendingPayments"`
	PendingComplaints int `json:"pendingComplaints"`
	PendingEnquiries  int `json:"pendingEnquiries"`
	TotalRevenue      int `json:"totalRevenue"`
}

// StudentPerformance is the student dashboard view: their tutor, per-subject
// standing and semester progress in one shot.
type StudentPerformance struct {
	TutorID   string                  `json:"tutorId"`
	TutorName string                  `json:"tutorName"`
	Subjects  []models.SubjectSummary `json:"subjects"`
	Progress  models.SemesterProgress `json:"progress"`
}

// DashboardService aggregates read-only views over the document.
type DashboardService struct {
	data   dashboardStore
	logger *zap.Logger
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(data dashboardStore, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{data: data, logger: logger}
}

// Overview computes the admin headline figures in a single document read.
// Revenue is the sum of completed payment amounts.
func (s *DashboardService) Overview(ctx context.Context) (AdminOverview, error) {
	doc, err := s.data.Document(ctx)
	if err != nil {
		return AdminOverview{}, err
	}

	overview := AdminOverview{
		TotalStudents: len(doc.Students),
		TotalTutors:   len(doc.Tutors),
	}
	for _, st := range doc.Students {
		if st.Status == models.StudentStatusActive {
			overview.ActiveStudents++
		}
	}
	for _, e := range doc.Enrollments {
		switch e.Status {
		case models.EnrollmentStatusActive:
			overview.ActiveEnrollments++
		case models.EnrollmentStatusPendingPayment:
			overview.PendingPayments++
		}
	}
	for _, c := range doc.Complaints {
		if c.Status == models.SupportStatusPending {
			overview.PendingComplaints++
		}
	}
	for _, e := range doc.Enquiries {
		if e.Status == models.SupportStatusPending {
			overview.PendingEnquiries++
		}
	}
	for _, p := range doc.Payments {
		if p.Status == models.PaymentStatusCompleted {
			overview.TotalRevenue += p.Amount
		}
	}
	return overview, nil
}

// Performance resolves the student's assigned tutor and computes their
// per-subject summaries and semester progress.
func (s *DashboardService) Performance(ctx context.Context, studentID string) (*StudentPerformance, error) {
	tutor, err := s.data.TutorForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	grades := gradesForStudent(tutor.Grades, studentID)

	seen := make(map[string]bool)
	var subjects []models.SubjectSummary
	for _, a := range tutor.Assessments {
		if seen[a.Subject] {
			continue
		}
		seen[a.Subject] = true
		subjects = append(subjects, SubjectSummary(a.Subject, tutor.Assessments, grades))
	}

	return &StudentPerformance{
		TutorID:   tutor.ID,
		TutorName: tutor.Name,
		Subjects:  subjects,
		Progress:  SemesterProgress(tutor.Assessments, grades),
	}, nil
}
