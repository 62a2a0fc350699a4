package models

import "fmt"

// ProgramType identifies one of the four mutually exclusive enrollment plans.
type ProgramType string

const (
	ProgramSpecialOnly ProgramType = "special-only"
	ProgramCoreOnly    ProgramType = "core-only"
	ProgramSingleExtra ProgramType = "single-extra"
	ProgramCorePlus    ProgramType = "core-plus"
)

// ProgramSelection is the enrollment-time program choice. Exactly one variant
// applies: Category is set for special-only, Course for single-extra and
// ExtraCourses for core-plus.
type ProgramSelection struct {
	Type         ProgramType `json:"type"`
	Category     string      `json:"category,omitempty"`
	Course       string      `json:"course,omitempty"`
	ExtraCourses []string    `json:"extraCourses,omitempty"`
}

// DisplayName renders the selection for invoices and summaries.
func (p ProgramSelection) DisplayName() string {
	switch p.Type {
	case ProgramSpecialOnly:
		return fmt.Sprintf("Special Education (%s)", p.Category)
	case ProgramCoreOnly:
		return "High School Core Subjects"
	case ProgramSingleExtra:
		return fmt.Sprintf("%s (Single Course)", p.Course)
	case ProgramCorePlus:
		return fmt.Sprintf("High School Core + %d Extra Course(s)", len(p.ExtraCourses))
	default:
		return "Unknown Program"
	}
}

// FeeLine is one itemised amount in a fee breakdown.
type FeeLine struct {
	Item   string `json:"item"`
	Amount int    `json:"amount"`
}

// FeeQuote is the deterministic output of the fee calculator.
type FeeQuote struct {
	Total     int       `json:"total"`
	Breakdown []FeeLine `json:"breakdown"`
}
