package service

import "github.com/mindbridge-edu/mindbridge-core/internal/models"

// The grading engine works on one student's grade records at a time: callers
// pass the records already filtered to the student in question.

// AverageForCategory averages the percentage scores a student earned across
// the given assessments. An assessment with no grade record contributes
// nothing — it is excluded rather than scored as zero — and so, by the same
// filter, does a recorded score of exactly 0%. That conflation is the
// documented policy here: category rollups never penalise unattempted work,
// at the cost of making a literal zero indistinguishable from "ungraded".
// Returns 0 when no assessment qualifies.
func AverageForCategory(assessments []models.Assessment, grades []models.GradeRecord) float64 {
	sum := 0.0
	count := 0
	for _, a := range assessments {
		grade := findGrade(grades, a.ID)
		if grade == nil || a.TotalMarks <= 0 {
			continue
		}
		pct := grade.Score / float64(a.TotalMarks) * 100
		if pct <= 0 {
			continue
		}
		sum += pct
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// LetterGrade maps a percentage onto the European/Asian banding scale.
// Bands are inclusive of their lower threshold: 90 is already an A*.
func LetterGrade(percentage float64) models.Grade {
	switch {
	case percentage >= 90:
		return models.GradeAStar
	case percentage >= 80:
		return models.GradeA
	case percentage >= 70:
		return models.GradeB
	case percentage >= 60:
		return models.GradeC
	case percentage >= 50:
		return models.GradeD
	default:
		return models.GradeF
	}
}

// RemarkFor returns the standard remark for a letter grade.
func RemarkFor(grade models.Grade) string {
	switch grade {
	case models.GradeAStar:
		return "Outstanding"
	case models.GradeA:
		return "Excellent"
	case models.GradeB:
		return "Very Good"
	case models.GradeC:
		return "Good"
	case models.GradeD:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}

// SubjectSummary partitions a subject's assessments by type and rolls each
// category up with AverageForCategory. The overall average is the mean of
// the non-zero category averages; a category with no qualifying assessments
// is excluded, not counted as 0.
func SubjectSummary(subject string, assessments []models.Assessment, grades []models.GradeRecord) models.SubjectSummary {
	var subjectAssessments []models.Assessment
	for _, a := range assessments {
		if a.Subject == subject {
			subjectAssessments = append(subjectAssessments, a)
		}
	}

	byType := func(t models.AssessmentType) []models.Assessment {
		var out []models.Assessment
		for _, a := range subjectAssessments {
			if a.Type == t {
				out = append(out, a)
			}
		}
		return out
	}

	summary := models.SubjectSummary{
		Subject:       subject,
		AssignmentAvg: AverageForCategory(byType(models.AssessmentAssignment), grades),
		QuizAvg:       AverageForCategory(byType(models.AssessmentQuiz), grades),
		TestAvg:       AverageForCategory(byType(models.AssessmentTest), grades),
		ExamAvg:       AverageForCategory(byType(models.AssessmentExam), grades),
	}

	sum := 0.0
	count := 0
	for _, avg := range []float64{summary.AssignmentAvg, summary.QuizAvg, summary.TestAvg, summary.ExamAvg} {
		if avg > 0 {
			sum += avg
			count++
		}
	}
	if count > 0 {
		summary.OverallAvg = sum / float64(count)
	}
	summary.LetterGrade = LetterGrade(summary.OverallAvg)
	return summary
}

// SemesterProgress summarises a student's standing across every assessment.
// Unlike the category rollups, this pass walks the recorded grades directly,
// so a literal 0 score counts toward the average. A student advances with an
// average of at least 50 and at least half the assessments completed; with
// no assessments at all the answer is always false.
func SemesterProgress(assessments []models.Assessment, grades []models.GradeRecord) models.SemesterProgress {
	progress := models.SemesterProgress{
		CompletedCount: len(grades),
		TotalCount:     len(assessments),
	}

	if len(grades) > 0 {
		sum := 0.0
		for _, g := range grades {
			sum += percentageFor(assessments, g)
		}
		progress.Average = sum / float64(len(grades))
	}

	if progress.TotalCount > 0 {
		progress.CanAdvance = progress.Average >= 50 &&
			float64(progress.CompletedCount) >= float64(progress.TotalCount)/2
	}
	return progress
}

// percentageFor converts a grade record to a percentage, treating an orphan
// record whose assessment has been removed as 0.
func percentageFor(assessments []models.Assessment, grade models.GradeRecord) float64 {
	for _, a := range assessments {
		if a.ID == grade.AssessmentID && a.TotalMarks > 0 {
			return grade.Score / float64(a.TotalMarks) * 100
		}
	}
	return 0
}

func findGrade(grades []models.GradeRecord, assessmentID string) *models.GradeRecord {
	for i := range grades {
		if grades[i].AssessmentID == assessmentID {
			return &grades[i]
		}
	}
	return nil
}

// gradesForStudent filters a tutor's grade set down to one student.
func gradesForStudent(grades []models.GradeRecord, studentID string) []models.GradeRecord {
	var out []models.GradeRecord
	for _, g := range grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out
}
