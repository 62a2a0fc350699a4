package models

import "time"

// TutorStatus enumerates tutor states.
type TutorStatus string

const (
	TutorStatusActive   TutorStatus = "active"
	TutorStatusInactive TutorStatus = "inactive"
)

// Tutor owns a schedule, a roster and the assessment/grade/material
// collections. Collections grow by append and shrink only by explicit
// deletion keyed by id.
type Tutor struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Subjects        []string           `json:"subjects"`
	Schedule        []ClassSlot        `json:"schedule"`
	Students        []RosterEntry      `json:"students"`
	Assessments     []Assessment       `json:"assessments"`
	Grades          []GradeRecord      `json:"grades"`
	Materials       []Material         `json:"materials"`
	SemesterResults []SemesterSnapshot `json:"semesterResults"`
	Rating          float64            `json:"rating"`
	Status          TutorStatus        `json:"status"`
}

// RosterEntry is a student assigned to a tutor.
type RosterEntry struct {
	StudentID  string `json:"studentId"`
	Name       string `json:"name"`
	GradeLevel string `json:"gradeLevel,omitempty"`
	Program    string `json:"program,omitempty"`
}

// ClassSlot is a recurring weekly teaching slot. EndTime never passes 12:00
// (morning-only scheduling policy).
type ClassSlot struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
	Subject   string `json:"subject"`
	Type      string `json:"type"`
	TutorID   string `json:"tutorId"`
}

// AssessmentType partitions assessments for category rollups.
type AssessmentType string

const (
	AssessmentAssignment AssessmentType = "assignment"
	AssessmentQuiz       AssessmentType = "quiz"
	AssessmentTest       AssessmentType = "test"
	AssessmentExam       AssessmentType = "exam"
)

// AssessmentStatus enumerates assessment states.
type AssessmentStatus string

const (
	AssessmentStatusActive         AssessmentStatus = "active"
	AssessmentStatusPendingGrading AssessmentStatus = "pending-grading"
)

// Assessment is a graded piece of work owned by a tutor.
type Assessment struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Subject      string           `json:"subject"`
	Type         AssessmentType   `json:"type"`
	TotalMarks   int              `json:"totalMarks"`
	DueDate      time.Time        `json:"dueDate"`
	Instructions string           `json:"instructions,omitempty"`
	TutorID      string           `json:"tutorId"`
	Status       AssessmentStatus `json:"status"`
	CreatedDate  time.Time        `json:"createdDate"`
}

// GradeRecord scores one student on one assessment. The
// (StudentID, AssessmentID) pair is unique within a tutor's grade set;
// recording again replaces the prior record. Score never exceeds the
// assessment's TotalMarks.
type GradeRecord struct {
	StudentID    string    `json:"studentId"`
	AssessmentID string    `json:"assessmentId"`
	Score        float64   `json:"score"`
	TutorID      string    `json:"tutorId"`
	Date         time.Time `json:"date"`
}

// MaterialType distinguishes uploaded course materials.
type MaterialType string

const (
	MaterialNotes MaterialType = "notes"
	MaterialVideo MaterialType = "video"
)

// Material is a notes or video resource shared by a tutor.
type Material struct {
	ID      string       `json:"id"`
	Subject string       `json:"subject"`
	Title   string       `json:"title"`
	Topic   string       `json:"topic"`
	URL     string       `json:"url"`
	Type    MaterialType `json:"type"`
	TutorID string       `json:"tutorId"`
	Date    time.Time    `json:"date"`
}
