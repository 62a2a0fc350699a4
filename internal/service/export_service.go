package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
	"github.com/mindbridge-edu/mindbridge-core/pkg/export"
)

type exportStore interface {
	Students(ctx context.Context) ([]models.Student, error)
	StudentByID(ctx context.Context, id string) (*models.Student, error)
	Payments(ctx context.Context) ([]models.Payment, error)
	EnrollmentByID(ctx context.Context, id string) (*models.Enrollment, error)
	Tutor(ctx context.Context, id string) (*models.Tutor, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderInvoice(inv export.Invoice) ([]byte, error)
}

type exportFileStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// ExportService renders administrative exports (CSV listings, invoices and
// result sheets) and persists them through the file store.
type ExportService struct {
	data   exportStore
	csv    csvRenderer
	pdf    pdfRenderer
	files  exportFileStore
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs ExportService.
func NewExportService(data exportStore, csv csvRenderer, pdf pdfRenderer, files exportFileStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		data:   data,
		csv:    csv,
		pdf:    pdf,
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *ExportService) WithClock(now func() time.Time) *ExportService {
	s.now = now
	return s
}

// StudentsCSV writes the full student register as CSV and returns the stored
// filename.
func (s *ExportService) StudentsCSV(ctx context.Context) (string, error) {
	students, err := s.data.Students(ctx)
	if err != nil {
		return "", err
	}

	data := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Phone", "Grade Level", "Status", "Enrolled"},
	}
	for _, st := range students {
		data.Append(map[string]string{
			"ID":          st.ID,
			"Name":        st.Name,
			"Email":       st.Email,
			"Phone":       st.Phone,
			"Grade Level": st.GradeLevel,
			"Status":      string(st.Status),
			"Enrolled":    st.EnrollmentDate.Format("2006-01-02"),
		})
	}
	return s.renderCSV(data, "students")
}

// PaymentsCSV writes the payment ledger as CSV and returns the stored
// filename.
func (s *ExportService) PaymentsCSV(ctx context.Context) (string, error) {
	payments, err := s.data.Payments(ctx)
	if err != nil {
		return "", err
	}

	data := export.Dataset{
		Headers: []string{"Date", "Student ID", "Enrollment ID", "Amount", "Method", "Reference", "Status"},
	}
	for _, p := range payments {
		data.Append(map[string]string{
			"Date":          p.Date.Format("2006-01-02"),
			"Student ID":    p.StudentID,
			"Enrollment ID": p.EnrollmentID,
			"Amount":        export.Money(p.Amount),
			"Method":        p.Method,
			"Reference":     p.TransactionID,
			"Status":        string(p.Status),
		})
	}
	return s.renderCSV(data, "payments")
}

// InvoicePDF renders an enrollment invoice. The fee breakdown comes from the
// fee calculator, so the invoice always matches the enrollment's stored total.
func (s *ExportService) InvoicePDF(ctx context.Context, enrollmentID string) (string, error) {
	enrollment, err := s.data.EnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return "", err
	}
	student, err := s.data.StudentByID(ctx, enrollment.StudentID)
	if err != nil {
		return "", err
	}

	quote := CalculateFee(enrollment.Program)
	inv := export.Invoice{
		Title: "Enrollment Invoice",
		Fields: []export.Field{
			{Label: "Invoice For", Value: student.Name},
			{Label: "Email", Value: student.Email},
			{Label: "Program", Value: enrollment.Program.DisplayName()},
			{Label: "Semester", Value: enrollment.Semester},
			{Label: "Enrollment", Value: enrollment.ID},
			{Label: "Date", Value: s.now().Format("2006-01-02")},
		},
		Total: quote.Total,
	}
	for _, line := range quote.Breakdown {
		inv.Lines = append(inv.Lines, export.Line{Item: line.Item, Amount: line.Amount})
	}

	rendered, err := s.pdf.RenderInvoice(inv)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to render invoice")
	}
	filename := fmt.Sprintf("invoice-%s-%s.pdf", enrollment.ID, s.now().Format("20060102-150405"))
	return s.save(filename, rendered)
}

// SemesterResultsPDF renders one semester result snapshot as a table, one row
// per student with their advancement outcome.
func (s *ExportService) SemesterResultsPDF(ctx context.Context, tutorID, snapshotID string) (string, error) {
	tutor, err := s.data.Tutor(ctx, tutorID)
	if err != nil {
		return "", err
	}
	var snapshot *models.SemesterSnapshot
	for i := range tutor.SemesterResults {
		if tutor.SemesterResults[i].ID == snapshotID {
			snapshot = &tutor.SemesterResults[i]
			break
		}
	}
	if snapshot == nil {
		return "", appErrors.Clone(appErrors.ErrNotFound, "semester result snapshot not found")
	}

	data := export.Dataset{
		Headers: []string{"Student", "Average", "Grade", "Remark", "Assessments", "Advances"},
	}
	for _, r := range snapshot.Results {
		advances := "No"
		if r.CanAdvance {
			advances = "Yes"
		}
		data.Append(map[string]string{
			"Student":     r.StudentName,
			"Average":     fmt.Sprintf("%.1f%%", r.Average),
			"Grade":       string(r.LetterGrade),
			"Remark":      r.Remark,
			"Assessments": fmt.Sprintf("%d/%d", r.CompletedAssessments, r.TotalAssessments),
			"Advances":    advances,
		})
	}

	title := fmt.Sprintf("%s Results - %s", snapshot.Semester, tutor.Name)
	rendered, err := s.pdf.Render(data, title)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to render result sheet")
	}
	filename := fmt.Sprintf("results-%s-%s.pdf", tutorID, snapshot.ID)
	return s.save(filename, rendered)
}

// Open returns a read handle for a previously rendered export.
func (s *ExportService) Open(filename string) (*os.File, error) {
	file, err := s.files.Open(filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, "export not found")
	}
	return file, nil
}

// Remove deletes a stored export file.
func (s *ExportService) Remove(filename string) error {
	if err := s.files.Delete(filename); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to delete export")
	}
	s.logger.Info("export removed", zap.String("file", filename))
	return nil
}

func (s *ExportService) renderCSV(data export.Dataset, kind string) (string, error) {
	rendered, err := s.csv.Render(data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to render csv")
	}
	filename := fmt.Sprintf("%s-%s.csv", kind, s.now().Format("20060102-150405"))
	return s.save(filename, rendered)
}

func (s *ExportService) save(filename string, data []byte) (string, error) {
	stored, err := s.files.Save(filename, data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to store export")
	}
	s.logger.Info("export written", zap.String("file", stored), zap.Int("bytes", len(data)))
	return stored, nil
}
