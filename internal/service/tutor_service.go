package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
	"github.com/mindbridge-edu/mindbridge-core/pkg/identifier"
)

type tutorDataStore interface {
	Tutor(ctx context.Context, id string) (*models.Tutor, error)
	SaveTutor(ctx context.Context, tutor *models.Tutor) error
	Update(ctx context.Context, fn func(*models.Document) error) error
}

// Classes end by noon.
const morningCutoff = "12:00"

const slotTimeLayout = "15:04"

// AddClassSlotRequest is the payload for a new weekly teaching slot.
type AddClassSlotRequest struct {
	TutorID   string `json:"tutorId" validate:"required"`
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"startTime" validate:"required"`
	Duration  int    `json:"duration" validate:"required,gt=0"`
	Subject   string `json:"subject" validate:"required"`
	Type      string `json:"type" validate:"required"`
}

// AddMaterialRequest is the payload for sharing a notes or video resource.
type AddMaterialRequest struct {
	TutorID string              `json:"tutorId" validate:"required"`
	Subject string              `json:"subject" validate:"required"`
	Title   string              `json:"title" validate:"required"`
	Topic   string              `json:"topic"`
	URL     string              `json:"url" validate:"required,url"`
	Type    models.MaterialType `json:"type" validate:"required,oneof=notes video"`
}

// TutorService manages a tutor's schedule, materials and student roster.
type TutorService struct {
	data      tutorDataStore
	ids       *identifier.Generator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTutorService constructs TutorService.
func NewTutorService(data tutorDataStore, ids *identifier.Generator, validate *validator.Validate, logger *zap.Logger) *TutorService {
	if ids == nil {
		ids = identifier.NewGenerator()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TutorService{
		data:      data,
		ids:       ids,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *TutorService) WithClock(now func() time.Time) *TutorService {
	s.now = now
	return s
}

// AddClassSlot appends a weekly slot to the tutor's schedule. The end time is
// derived from start plus duration and must not pass the morning cutoff.
func (s *TutorService) AddClassSlot(ctx context.Context, req AddClassSlotRequest) (*models.ClassSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid class slot payload")
	}
	start, err := time.Parse(slotTimeLayout, req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time must be in HH:MM format")
	}
	end := start.Add(time.Duration(req.Duration) * time.Minute)
	endTime := end.Format(slotTimeLayout)
	cutoff, _ := time.Parse(slotTimeLayout, morningCutoff)
	if end.After(cutoff) || end.Day() != start.Day() {
		return nil, appErrors.Clone(appErrors.ErrScheduleWindow, appErrors.ErrScheduleWindow.Message)
	}

	tutor, err := s.data.Tutor(ctx, req.TutorID)
	if err != nil {
		return nil, err
	}
	slot := models.ClassSlot{
		ID:        s.ids.New("SCH"),
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   endTime,
		Duration:  req.Duration,
		Subject:   req.Subject,
		Type:      req.Type,
		TutorID:   tutor.ID,
	}
	tutor.Schedule = append(tutor.Schedule, slot)
	if err := s.data.SaveTutor(ctx, tutor); err != nil {
		return nil, err
	}

	s.logger.Info("class slot added",
		zap.String("tutor_id", tutor.ID),
		zap.String("slot_id", slot.ID),
		zap.String("day", slot.Day),
		zap.String("start", slot.StartTime))
	return &slot, nil
}

// DeleteClassSlot removes a slot from the tutor's schedule by id.
func (s *TutorService) DeleteClassSlot(ctx context.Context, tutorID, slotID string) error {
	tutor, err := s.data.Tutor(ctx, tutorID)
	if err != nil {
		return err
	}
	kept := tutor.Schedule[:0]
	found := false
	for _, slot := range tutor.Schedule {
		if slot.ID == slotID {
			found = true
			continue
		}
		kept = append(kept, slot)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "class slot not found")
	}
	tutor.Schedule = kept
	return s.data.SaveTutor(ctx, tutor)
}

// AddMaterial shares a notes or video resource with the tutor's students.
func (s *TutorService) AddMaterial(ctx context.Context, req AddMaterialRequest) (*models.Material, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid material payload")
	}
	tutor, err := s.data.Tutor(ctx, req.TutorID)
	if err != nil {
		return nil, err
	}

	prefix := "NOTE"
	if req.Type == models.MaterialVideo {
		prefix = "VID"
	}
	material := models.Material{
		ID:      s.ids.New(prefix),
		Subject: req.Subject,
		Title:   req.Title,
		Topic:   req.Topic,
		URL:     req.URL,
		Type:    req.Type,
		TutorID: tutor.ID,
		Date:    s.now(),
	}
	tutor.Materials = append(tutor.Materials, material)
	if err := s.data.SaveTutor(ctx, tutor); err != nil {
		return nil, err
	}
	return &material, nil
}

// DeleteMaterial removes a shared resource by id.
func (s *TutorService) DeleteMaterial(ctx context.Context, tutorID, materialID string) error {
	tutor, err := s.data.Tutor(ctx, tutorID)
	if err != nil {
		return err
	}
	kept := tutor.Materials[:0]
	found := false
	for _, m := range tutor.Materials {
		if m.ID == materialID {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "material not found")
	}
	tutor.Materials = kept
	return s.data.SaveTutor(ctx, tutor)
}

// AssignStudent links a student to a tutor. A student has at most one tutor:
// assigning again moves the student, removing them from the previous tutor's
// roster. The assignment record, both rosters and nothing else change, all in
// one document write.
func (s *TutorService) AssignStudent(ctx context.Context, tutorID, studentID string) error {
	err := s.data.Update(ctx, func(doc *models.Document) error {
		tutor, ok := doc.Tutors[tutorID]
		if !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
		}
		var student *models.Student
		for i := range doc.Students {
			if doc.Students[i].ID == studentID {
				student = &doc.Students[i]
				break
			}
		}
		if student == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}

		program := ""
		for _, e := range doc.Enrollments {
			if e.StudentID == studentID {
				program = e.Program.DisplayName()
			}
		}

		moved := false
		for i := range doc.Assignments {
			if doc.Assignments[i].StudentID == studentID {
				if prev, ok := doc.Tutors[doc.Assignments[i].TutorID]; ok && prev.ID != tutorID {
					prev.Students = removeRosterEntry(prev.Students, studentID)
				}
				doc.Assignments[i].TutorID = tutorID
				doc.Assignments[i].Date = s.now()
				moved = true
				break
			}
		}
		if !moved {
			doc.Assignments = append(doc.Assignments, models.Assignment{
				StudentID: studentID,
				TutorID:   tutorID,
				Date:      s.now(),
			})
		}

		entry := models.RosterEntry{
			StudentID:  student.ID,
			Name:       student.Name,
			GradeLevel: student.GradeLevel,
			Program:    program,
		}
		updated := false
		for i := range tutor.Students {
			if tutor.Students[i].StudentID == studentID {
				tutor.Students[i] = entry
				updated = true
				break
			}
		}
		if !updated {
			tutor.Students = append(tutor.Students, entry)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("student assigned",
		zap.String("tutor_id", tutorID),
		zap.String("student_id", studentID))
	return nil
}

// Roster returns the tutor's assigned students.
func (s *TutorService) Roster(ctx context.Context, tutorID string) ([]models.RosterEntry, error) {
	tutor, err := s.data.Tutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	return tutor.Students, nil
}

func removeRosterEntry(entries []models.RosterEntry, studentID string) []models.RosterEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.StudentID != studentID {
			kept = append(kept, e)
		}
	}
	return kept
}
