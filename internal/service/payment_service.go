package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
	"github.com/mindbridge-edu/mindbridge-core/pkg/identifier"
	"github.com/mindbridge-edu/mindbridge-core/pkg/jobs"
)

type paymentStore interface {
	Update(ctx context.Context, fn func(*models.Document) error) error
}

const paymentJobType = "payment.capture"

// DemoPaymentMethod marks payments taken by the simulated gateway.
const DemoPaymentMethod = "Demo Payment"

type paymentJobPayload struct {
	StudentID    string
	EnrollmentID string
}

// PaymentService completes enrollment payments against a simulated gateway:
// a fixed delay, then an unconditional success. The payment append and the
// enrollment activation happen in one document write, so a completed payment
// can never sit next to a pending enrollment.
type PaymentService struct {
	data   paymentStore
	ids    *identifier.Generator
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time
	queue  *jobs.Queue
}

// NewPaymentService constructs PaymentService. The delay models gateway
// latency; pass 0 in tests.
func NewPaymentService(data paymentStore, ids *identifier.Generator, delay time.Duration, logger *zap.Logger) *PaymentService {
	if ids == nil {
		ids = identifier.NewGenerator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PaymentService{
		data:   data,
		ids:    ids,
		delay:  delay,
		logger: logger,
		now:    time.Now,
	}
	s.queue = jobs.NewQueue(paymentJobType, s.handleJob, jobs.QueueConfig{
		Delay:  delay,
		Logger: logger,
	})
	return s
}

// WithClock overrides the service clock, for tests.
func (s *PaymentService) WithClock(now func() time.Time) *PaymentService {
	s.now = now
	return s
}

// StartWorkers begins background capture processing for Initiate.
func (s *PaymentService) StartWorkers(ctx context.Context) {
	s.queue.Start(ctx)
}

// StopWorkers drains the background workers.
func (s *PaymentService) StopWorkers() {
	s.queue.Stop()
}

// Complete runs the simulated gateway synchronously: waits out the fixed
// delay, then records the payment and activates the enrollment. Once called
// the outcome is reported unconditionally; there is no cancellation.
func (s *PaymentService) Complete(ctx context.Context, studentID, enrollmentID string) (*models.Payment, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.capture(ctx, studentID, enrollmentID)
}

// Initiate schedules the capture on the background queue and returns the job
// id immediately. The queue applies the same fixed delay before capture.
func (s *PaymentService) Initiate(ctx context.Context, studentID, enrollmentID string) (string, error) {
	return s.queue.Enqueue(jobs.Job{
		Type:    paymentJobType,
		Payload: paymentJobPayload{StudentID: studentID, EnrollmentID: enrollmentID},
	})
}

func (s *PaymentService) handleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(paymentJobPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	payment, err := s.capture(ctx, payload.StudentID, payload.EnrollmentID)
	if err != nil {
		return err
	}
	s.logger.Info("background payment captured",
		zap.String("job_id", job.ID),
		zap.String("payment_id", payment.ID))
	return nil
}

// capture appends the payment and flips the enrollment to active in a single
// read-modify-write. The amount is always the enrollment's total fee.
func (s *PaymentService) capture(ctx context.Context, studentID, enrollmentID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.data.Update(ctx, func(doc *models.Document) error {
		var enrollment *models.Enrollment
		for i := range doc.Enrollments {
			if doc.Enrollments[i].ID == enrollmentID {
				enrollment = &doc.Enrollments[i]
				break
			}
		}
		if enrollment == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		if enrollment.StudentID != studentID {
			return appErrors.Clone(appErrors.ErrValidation, "enrollment does not belong to student")
		}
		if enrollment.Status == models.EnrollmentStatusActive {
			return appErrors.Clone(appErrors.ErrValidation, "enrollment is already active")
		}

		payment = models.Payment{
			ID:            s.ids.New("PAY"),
			StudentID:     studentID,
			EnrollmentID:  enrollmentID,
			Amount:        enrollment.TotalFee,
			Method:        DemoPaymentMethod,
			Status:        models.PaymentStatusCompleted,
			TransactionID: "TXN-" + uuid.NewString(),
			Date:          s.now(),
		}
		doc.Payments = append(doc.Payments, payment)
		enrollment.Status = models.EnrollmentStatusActive
		enrollment.PaymentID = payment.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment completed",
		zap.String("student_id", studentID),
		zap.String("enrollment_id", enrollmentID),
		zap.String("payment_id", payment.ID),
		zap.Int("amount", payment.Amount))
	return &payment, nil
}
