package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
	"github.com/mindbridge-edu/mindbridge-core/pkg/identifier"
)

type tutorStore interface {
	Tutor(ctx context.Context, id string) (*models.Tutor, error)
	SaveTutor(ctx context.Context, tutor *models.Tutor) error
}

// CreateAssessmentRequest is the payload for a new assessment.
type CreateAssessmentRequest struct {
	TutorID      string                `json:"tutorId" validate:"required"`
	Title        string                `json:"title" validate:"required"`
	Subject      string                `json:"subject" validate:"required"`
	Type         models.AssessmentType `json:"type" validate:"required,oneof=assignment quiz test exam"`
	TotalMarks   int                   `json:"totalMarks" validate:"required,gt=0"`
	DueDate      time.Time             `json:"dueDate" validate:"required"`
	Instructions string                `json:"instructions"`
}

// RecordGradeRequest scores one student on one assessment.
type RecordGradeRequest struct {
	TutorID      string  `json:"tutorId" validate:"required"`
	StudentID    string  `json:"studentId" validate:"required"`
	AssessmentID string  `json:"assessmentId" validate:"required"`
	Score        float64 `json:"score" validate:"gte=0"`
}

// CompletedAssessment pairs an assessment with the student's result.
type CompletedAssessment struct {
	Assessment  models.Assessment `json:"assessment"`
	Score       float64           `json:"score"`
	Percentage  float64           `json:"percentage"`
	LetterGrade models.Grade      `json:"letterGrade"`
}

// GradingService owns assessment creation, grade entry and semester result
// generation for a tutor.
type GradingService struct {
	tutors    tutorStore
	ids       *identifier.Generator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGradingService constructs GradingService.
func NewGradingService(tutors tutorStore, ids *identifier.Generator, validate *validator.Validate, logger *zap.Logger) *GradingService {
	if ids == nil {
		ids = identifier.NewGenerator()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradingService{
		tutors:    tutors,
		ids:       ids,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *GradingService) WithClock(now func() time.Time) *GradingService {
	s.now = now
	return s
}

// CreateAssessment appends a new assessment to the tutor's set.
func (s *GradingService) CreateAssessment(ctx context.Context, req CreateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid assessment payload")
	}
	tutor, err := s.tutors.Tutor(ctx, req.TutorID)
	if err != nil {
		return nil, err
	}

	assessment := models.Assessment{
		ID:           s.ids.New("ASS"),
		Title:        req.Title,
		Subject:      req.Subject,
		Type:         req.Type,
		TotalMarks:   req.TotalMarks,
		DueDate:      req.DueDate,
		Instructions: req.Instructions,
		TutorID:      tutor.ID,
		Status:       models.AssessmentStatusActive,
		CreatedDate:  s.now(),
	}
	tutor.Assessments = append(tutor.Assessments, assessment)
	if err := s.tutors.SaveTutor(ctx, tutor); err != nil {
		return nil, err
	}

	s.logger.Info("assessment created",
		zap.String("tutor_id", tutor.ID),
		zap.String("assessment_id", assessment.ID),
		zap.String("subject", assessment.Subject))
	return &assessment, nil
}

// RecordGrade upserts the grade for a (student, assessment) pair. The score
// must not exceed the assessment's total marks; recording the same pair
// again replaces the prior record.
func (s *GradingService) RecordGrade(ctx context.Context, req RecordGradeRequest) (*models.GradeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid grade payload")
	}
	tutor, err := s.tutors.Tutor(ctx, req.TutorID)
	if err != nil {
		return nil, err
	}

	var assessment *models.Assessment
	for i := range tutor.Assessments {
		if tutor.Assessments[i].ID == req.AssessmentID {
			assessment = &tutor.Assessments[i]
			break
		}
	}
	if assessment == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
	}
	if req.Score > float64(assessment.TotalMarks) {
		return nil, appErrors.Clone(appErrors.ErrScoreOutOfRange,
			fmt.Sprintf("score %.1f exceeds total marks %d", req.Score, assessment.TotalMarks))
	}

	record := models.GradeRecord{
		StudentID:    req.StudentID,
		AssessmentID: req.AssessmentID,
		Score:        req.Score,
		TutorID:      tutor.ID,
		Date:         s.now(),
	}
	replaced := false
	for i := range tutor.Grades {
		if tutor.Grades[i].StudentID == req.StudentID && tutor.Grades[i].AssessmentID == req.AssessmentID {
			tutor.Grades[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		tutor.Grades = append(tutor.Grades, record)
	}
	if err := s.tutors.SaveTutor(ctx, tutor); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteAssessment removes an assessment and every grade recorded against
// it, so no orphan records linger in the rollups.
func (s *GradingService) DeleteAssessment(ctx context.Context, tutorID, assessmentID string) error {
	tutor, err := s.tutors.Tutor(ctx, tutorID)
	if err != nil {
		return err
	}
	kept := tutor.Assessments[:0]
	found := false
	for _, a := range tutor.Assessments {
		if a.ID == assessmentID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
	}
	tutor.Assessments = kept

	keptGrades := tutor.Grades[:0]
	for _, g := range tutor.Grades {
		if g.AssessmentID != assessmentID {
			keptGrades = append(keptGrades, g)
		}
	}
	tutor.Grades = keptGrades
	return s.tutors.SaveTutor(ctx, tutor)
}

// SubjectSummaries computes the per-subject category rollups for a student,
// one row per subject the tutor assesses, in order of first appearance.
func (s *GradingService) SubjectSummaries(ctx context.Context, tutorID, studentID string) ([]models.SubjectSummary, error) {
	tutor, err := s.tutors.Tutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	grades := gradesForStudent(tutor.Grades, studentID)

	seen := make(map[string]bool)
	var summaries []models.SubjectSummary
	for _, a := range tutor.Assessments {
		if seen[a.Subject] {
			continue
		}
		seen[a.Subject] = true
		summaries = append(summaries, SubjectSummary(a.Subject, tutor.Assessments, grades))
	}
	return summaries, nil
}

// Progress reports a student's semester standing.
func (s *GradingService) Progress(ctx context.Context, tutorID, studentID string) (models.SemesterProgress, error) {
	tutor, err := s.tutors.Tutor(ctx, tutorID)
	if err != nil {
		return models.SemesterProgress{}, err
	}
	return SemesterProgress(tutor.Assessments, gradesForStudent(tutor.Grades, studentID)), nil
}

// PendingAssessments lists assessments the student has no grade record for.
func (s *GradingService) PendingAssessments(ctx context.Context, tutorID, studentID string) ([]models.Assessment, error) {
	tutor, err := s.tutors.Tutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	grades := gradesForStudent(tutor.Grades, studentID)
	var pending []models.Assessment
	for _, a := range tutor.Assessments {
		if findGrade(grades, a.ID) == nil {
			pending = append(pending, a)
		}
	}
	return pending, nil
}

// CompletedAssessments lists graded assessments with percentage and letter.
func (s *GradingService) CompletedAssessments(ctx context.Context, tutorID, studentID string) ([]CompletedAssessment, error) {
	tutor, err := s.tutors.Tutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	grades := gradesForStudent(tutor.Grades, studentID)
	var completed []CompletedAssessment
	for _, a := range tutor.Assessments {
		grade := findGrade(grades, a.ID)
		if grade == nil {
			continue
		}
		pct := 0.0
		if a.TotalMarks > 0 {
			pct = grade.Score / float64(a.TotalMarks) * 100
		}
		completed = append(completed, CompletedAssessment{
			Assessment:  a,
			Score:       grade.Score,
			Percentage:  pct,
			LetterGrade: LetterGrade(pct),
		})
	}
	return completed, nil
}

// GenerateSemesterResults computes advancement results for every student on
// the tutor's roster and appends them to the semester result history as a
// new dated snapshot. Re-running on an unchanged grade set yields an equal
// results array under a fresh snapshot id and date; prior snapshots are
// never overwritten.
func (s *GradingService) GenerateSemesterResults(ctx context.Context, tutorID string) (*models.SemesterSnapshot, error) {
	tutor, err := s.tutors.Tutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if len(tutor.Grades) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no grades available to generate results")
	}

	results := make([]models.StudentResult, 0, len(tutor.Students))
	for _, entry := range tutor.Students {
		grades := gradesForStudent(tutor.Grades, entry.StudentID)
		progress := SemesterProgress(tutor.Assessments, grades)
		letter := LetterGrade(progress.Average)
		results = append(results, models.StudentResult{
			StudentID:            entry.StudentID,
			StudentName:          entry.Name,
			Average:              progress.Average,
			LetterGrade:          letter,
			Remark:               RemarkFor(letter),
			TotalAssessments:     progress.TotalCount,
			CompletedAssessments: progress.CompletedCount,
			CanAdvance:           progress.CanAdvance,
		})
	}

	snapshot := models.SemesterSnapshot{
		ID:       s.ids.New("RES"),
		Semester: semesterLabel(s.now()),
		Date:     s.now(),
		Results:  results,
	}
	tutor.SemesterResults = append(tutor.SemesterResults, snapshot)
	if err := s.tutors.SaveTutor(ctx, tutor); err != nil {
		return nil, err
	}

	s.logger.Info("semester results generated",
		zap.String("tutor_id", tutor.ID),
		zap.String("snapshot_id", snapshot.ID),
		zap.Int("students", len(results)))
	return &snapshot, nil
}

// semesterLabel derives the semester name from a point in time: January
// through June is Spring, the rest of the year Fall.
func semesterLabel(t time.Time) string {
	if t.Month() <= time.June {
		return fmt.Sprintf("Spring %d", t.Year())
	}
	return fmt.Sprintf("Fall %d", t.Year())
}
