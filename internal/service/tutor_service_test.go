package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
)

func TestAddClassSlotDerivesEndTime(t *testing.T) {
	store := newDocStore()
	seedTutor(store)
	svc := NewTutorService(store, nil, nil, nil)

	slot, err := svc.AddClassSlot(context.Background(), AddClassSlotRequest{
		TutorID:   "TUT1",
		Day:       "Monday",
		StartTime: "09:30",
		Duration:  90,
		Subject:   "Mathematics",
		Type:      "group",
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00", slot.EndTime)
	assert.True(t, strings.HasPrefix(slot.ID, "SCH"))
	assert.Len(t, store.doc.Tutors["TUT1"].Schedule, 1)
}

func TestAddClassSlotMorningCutoff(t *testing.T) {
	store := newDocStore()
	seedTutor(store)
	svc := NewTutorService(store, nil, nil, nil)

	// Ending exactly at noon is allowed.
	_, err := svc.AddClassSlot(context.Background(), AddClassSlotRequest{
		TutorID: "TUT1", Day: "Tuesday", StartTime: "11:00", Duration: 60,
		Subject: "English", Type: "group",
	})
	require.NoError(t, err)

	// Running past noon is not.
	_, err = svc.AddClassSlot(context.Background(), AddClassSlotRequest{
		TutorID: "TUT1", Day: "Tuesday", StartTime: "11:30", Duration: 60,
		Subject: "English", Type: "group",
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrScheduleWindow.Code))
	assert.Len(t, store.doc.Tutors["TUT1"].Schedule, 1)
}

func TestAddClassSlotRejectsBadStartTime(t *testing.T) {
	store := newDocStore()
	seedTutor(store)
	svc := NewTutorService(store, nil, nil, nil)

	_, err := svc.AddClassSlot(context.Background(), AddClassSlotRequest{
		TutorID: "TUT1", Day: "Monday", StartTime: "9.30am", Duration: 60,
		Subject: "Mathematics", Type: "group",
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestDeleteClassSlot(t *testing.T) {
	store := newDocStore()
	tutor := seedTutor(store)
	tutor.Schedule = []models.ClassSlot{{ID: "SCH1", Day: "Monday"}, {ID: "SCH2", Day: "Friday"}}
	svc := NewTutorService(store, nil, nil, nil)

	require.NoError(t, svc.DeleteClassSlot(context.Background(), "TUT1", "SCH1"))
	require.Len(t, store.doc.Tutors["TUT1"].Schedule, 1)
	assert.Equal(t, "SCH2", store.doc.Tutors["TUT1"].Schedule[0].ID)

	err := svc.DeleteClassSlot(context.Background(), "TUT1", "SCH1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestAddMaterialPrefixes(t *testing.T) {
	store := newDocStore()
	seedTutor(store)
	svc := NewTutorService(store, nil, nil, nil)

	notes, err := svc.AddMaterial(context.Background(), AddMaterialRequest{
		TutorID: "TUT1", Subject: "Science", Title: "Cells Overview",
		URL: "https://cdn.mindbridge.edu/notes/cells.pdf", Type: models.MaterialNotes,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(notes.ID, "NOTE"))

	video, err := svc.AddMaterial(context.Background(), AddMaterialRequest{
		TutorID: "TUT1", Subject: "Science", Title: "Cells Lecture",
		URL: "https://cdn.mindbridge.edu/videos/cells.mp4", Type: models.MaterialVideo,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(video.ID, "VID"))
	assert.Len(t, store.doc.Tutors["TUT1"].Materials, 2)
}

func TestAddMaterialValidatesURL(t *testing.T) {
	store := newDocStore()
	seedTutor(store)
	svc := NewTutorService(store, nil, nil, nil)

	_, err := svc.AddMaterial(context.Background(), AddMaterialRequest{
		TutorID: "TUT1", Subject: "Science", Title: "Bad Link",
		URL: "not a url", Type: models.MaterialNotes,
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestAssignStudentMovesBetweenTutors(t *testing.T) {
	store := newDocStore()
	store.doc.Tutors["TUT1"] = &models.Tutor{ID: "TUT1", Name: "Sarah Johnson"}
	store.doc.Tutors["TUT2"] = &models.Tutor{ID: "TUT2", Name: "David Kim"}
	store.doc.Students = append(store.doc.Students, models.Student{
		ID: "MB1", Name: "Alice Chen", GradeLevel: "Year 8",
	})
	store.doc.Enrollments = append(store.doc.Enrollments, models.Enrollment{
		ID: "ENR1", StudentID: "MB1",
		Program: models.ProgramSelection{Type: models.ProgramCoreOnly},
	})
	svc := NewTutorService(store, nil, nil, nil)

	require.NoError(t, svc.AssignStudent(context.Background(), "TUT1", "MB1"))
	require.Len(t, store.doc.Assignments, 1)
	require.Len(t, store.doc.Tutors["TUT1"].Students, 1)
	entry := store.doc.Tutors["TUT1"].Students[0]
	assert.Equal(t, "Alice Chen", entry.Name)
	assert.Equal(t, "Year 8", entry.GradeLevel)
	assert.Equal(t, "High School Core Subjects", entry.Program)

	// Reassignment moves the student; one assignment record, one roster spot.
	require.NoError(t, svc.AssignStudent(context.Background(), "TUT2", "MB1"))
	require.Len(t, store.doc.Assignments, 1)
	assert.Equal(t, "TUT2", store.doc.Assignments[0].TutorID)
	assert.Empty(t, store.doc.Tutors["TUT1"].Students)
	assert.Len(t, store.doc.Tutors["TUT2"].Students, 1)
}

func TestAssignStudentUnknownIDs(t *testing.T) {
	store := newDocStore()
	seedTutor(store)
	svc := NewTutorService(store, nil, nil, nil)

	err := svc.AssignStudent(context.Background(), "TUT1", "MB999")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))

	err = svc.AssignStudent(context.Background(), "TUT999", "MB1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}
