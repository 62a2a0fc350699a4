package models

import "time"

// StudentStatus enumerates student lifecycle states.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

// DefaultGradeLevel is assigned when no grade level has been set yet.
const DefaultGradeLevel = "Year 7"

// Student represents a learner registered with the school. Fields are
// immutable after creation except Status and GradeLevel.
type Student struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	DateOfBirth    string        `json:"dateOfBirth"`
	ParentName     string        `json:"parentName"`
	ParentEmail    string        `json:"parentEmail"`
	ParentPhone    string        `json:"parentPhone"`
	EnrollmentDate time.Time     `json:"enrollmentDate"`
	Status         StudentStatus `json:"status"`
	GradeLevel     string        `json:"gradeLevel,omitempty"`
}

// EnrollmentStatus enumerates enrollment lifecycle states.
type EnrollmentStatus string

const (
	EnrollmentStatusPendingPayment EnrollmentStatus = "pending-payment"
	EnrollmentStatusActive         EnrollmentStatus = "active"
)

// Enrollment binds a student to a program selection for one semester.
// TotalFee is always the fee-calculator output for Program, never edited
// independently.
type Enrollment struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	Program   ProgramSelection `json:"program"`
	TotalFee  int              `json:"totalFee"`
	Semester  string           `json:"semester"`
	StartDate time.Time        `json:"startDate"`
	Status    EnrollmentStatus `json:"status"`
	PaymentID string           `json:"paymentId,omitempty"`
}

// PaymentStatus enumerates payment states. Only completed exists: the
// simulated gateway cannot fail.
type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "completed"

// Payment records a completed enrollment payment.
type Payment struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"studentId"`
	EnrollmentID  string        `json:"enrollmentId"`
	Amount        int           `json:"amount"`
	Method        string        `json:"paymentMethod"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId"`
	Date          time.Time     `json:"date"`
}
