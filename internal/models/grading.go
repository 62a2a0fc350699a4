package models

import "time"

// Grade is a letter grade on the European/Asian banding scale.
type Grade string

const (
	GradeAStar Grade = "A*"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// SubjectSummary is the per-subject category rollup for one student.
// Averages are percentages; a category with no qualifying assessments
// reports 0 and is excluded from OverallAvg.
type SubjectSummary struct {
	Subject       string  `json:"subject"`
	AssignmentAvg float64 `json:"assignmentAvg"`
	QuizAvg       float64 `json:"quizAvg"`
	TestAvg       float64 `json:"testAvg"`
	ExamAvg       float64 `json:"examAvg"`
	OverallAvg    float64 `json:"overallAvg"`
	LetterGrade   Grade   `json:"letterGrade"`
}

// SemesterProgress summarises a student's semester standing across all of a
// tutor's assessments.
type SemesterProgress struct {
	Average        float64 `json:"average"`
	CompletedCount int     `json:"completedCount"`
	TotalCount     int     `json:"totalCount"`
	CanAdvance     bool    `json:"canAdvance"`
}

// StudentResult is one student's row in a semester snapshot.
type StudentResult struct {
	StudentID            string  `json:"studentId"`
	StudentName          string  `json:"studentName"`
	Average              float64 `json:"average"`
	LetterGrade          Grade   `json:"letterGrade"`
	Remark               string  `json:"remark"`
	TotalAssessments     int     `json:"totalAssessments"`
	CompletedAssessments int     `json:"completedAssessments"`
	CanAdvance           bool    `json:"canAdvance"`
}

// SemesterSnapshot is an immutable, dated batch of per-student results.
// Each generation appends a new snapshot; history is never overwritten.
type SemesterSnapshot struct {
	ID       string          `json:"id"`
	Semester string          `json:"semester"`
	Date     time.Time       `json:"date"`
	Results  []StudentResult `json:"results"`
}
