package models

import "time"

// Assignment relates a student to their tutor. It replaces the legacy
// "first tutor in the map" resolution with an explicit relation.
type Assignment struct {
	StudentID string    `json:"studentId"`
	TutorID   string    `json:"tutorId"`
	Date      time.Time `json:"date"`
}

// Document is the single persisted record set. Every mutation is a
// read-modify-write of the whole document; concurrent writers race with
// last-writer-wins semantics on the full blob.
type Document struct {
	Students    []Student         `json:"students"`
	Enrollments []Enrollment      `json:"enrollments"`
	Payments    []Payment         `json:"payments"`
	Tutors      map[string]*Tutor `json:"tutors"`
	Assignments []Assignment      `json:"assignments"`
	Complaints  []Complaint       `json:"complaints"`
	Enquiries   []Enquiry         `json:"enquiries"`
	Courses     []Course          `json:"courses"`
	Settings    Settings          `json:"settings"`
}

// EnsureCollections initialises nil maps so mutations can append safely.
func (d *Document) EnsureCollections() {
	if d.Tutors == nil {
		d.Tutors = make(map[string]*Tutor)
	}
}
