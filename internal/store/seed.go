package store

import "github.com/mindbridge-edu/mindbridge-core/internal/models"

// Seed builds the default document for a fresh store: the course catalog and
// school settings, with every record collection empty.
func Seed() *models.Document {
	doc := &models.Document{
		Courses: []models.Course{
			{
				ID:          "high-school",
				Name:        "High School Subjects",
				Description: "Complete high school curriculum",
				Price:       150,
				Duration:    "3 months",
				Subjects:    []string{"Mathematics", "English", "Science", "Social Studies", "History", "Geography", "Literature"},
			},
			{
				ID:          "ai",
				Name:        "Artificial Intelligence",
				Description: "Learn AI fundamentals and applications",
				Price:       150,
				Duration:    "3 months",
				IsExtra:     true,
			},
			{
				ID:          "digital-marketing",
				Name:        "Digital Marketing",
				Description: "Master modern marketing strategies",
				Price:       150,
				Duration:    "3 months",
				IsExtra:     true,
			},
			{
				ID:          "educational-coaching",
				Name:        "Educational Coaching",
				Description: "Develop effective learning strategies",
				Price:       150,
				Duration:    "3 months",
				IsExtra:     true,
			},
			{
				ID:          "special-education",
				Name:        "Special Education",
				Description: "Specialized learning programs",
				Price:       100,
				Duration:    "3 months",
				Categories: []string{
					"Learning Disabilities Support",
					"Autism Spectrum Disorder Programs",
					"ADHD/ADD Management",
					"Emotional & Behavioral Support",
				},
			},
		},
		Settings: models.Settings{
			SchoolName:       "Mindbridge Online School",
			Email:            "info@mindbridge.edu",
			Phone:            "+1 (555) 123-4567",
			CurrentSemester:  "Spring 2026",
			SemesterDuration: "3 months",
		},
	}
	doc.EnsureCollections()
	return doc
}
