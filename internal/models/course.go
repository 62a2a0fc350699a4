package models

// Course is a catalog entry. Extra courses carry IsExtra; the special
// education program carries its categories.
type Course struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Duration    string   `json:"duration"`
	Subjects    []string `json:"subjects,omitempty"`
	IsExtra     bool     `json:"isExtra,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// Settings holds the school-wide configuration stored in the document.
type Settings struct {
	SchoolName       string `json:"schoolName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	CurrentSemester  string `json:"currentSemester"`
	SemesterDuration string `json:"semesterDuration"`
}
