package models

import "time"

// SupportStatus enumerates complaint and enquiry states.
type SupportStatus string

const (
	SupportStatusPending  SupportStatus = "pending"
	SupportStatusResolved SupportStatus = "resolved"
)

// Complaint is a confidential student report routed to admin only. No
// tutor-facing operation ever returns complaints.
type Complaint struct {
	ID           string        `json:"id"`
	StudentID    string        `json:"studentId"`
	StudentName  string        `json:"studentName"`
	Type         string        `json:"type"`
	Subject      string        `json:"subject"`
	Description  string        `json:"description"`
	Status       SupportStatus `json:"status"`
	Confidential bool          `json:"confidential"`
	Response     string        `json:"response,omitempty"`
	Date         time.Time     `json:"date"`
}

// Enquiry is a general student question to customer service.
type Enquiry struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"studentId"`
	StudentName string        `json:"studentName"`
	Message     string        `json:"message"`
	Status      SupportStatus `json:"status"`
	Response    string        `json:"response,omitempty"`
	Date        time.Time     `json:"date"`
}
