package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
)

func validEnrollRequest() EnrollRequest {
	return EnrollRequest{
		Name:        "Alice Chen",
		Email:       "alice@example.com",
		Phone:       "+1 555 0101",
		DateOfBirth: "2010-04-02",
		ParentName:  "Mei Chen",
		ParentEmail: "mei@example.com",
		ParentPhone: "+1 555 0102",
		Program: models.ProgramSelection{
			Type:         models.ProgramCorePlus,
			ExtraCourses: []string{"ai", "digital-marketing"},
		},
	}
}

func TestEnrollCreatesPendingEnrollment(t *testing.T) {
	store := newDocStore()
	svc := NewEnrollmentService(store, nil, nil, nil)

	result, err := svc.Enroll(context.Background(), validEnrollRequest())
	require.NoError(t, err)

	assert.Equal(t, 235, result.Quote.Total)
	assert.Equal(t, 235, result.Enrollment.TotalFee)
	assert.Equal(t, models.EnrollmentStatusPendingPayment, result.Enrollment.Status)
	assert.Equal(t, "Spring 2026", result.Enrollment.Semester)
	assert.Equal(t, result.Student.ID, result.Enrollment.StudentID)
	assert.Equal(t, models.StudentStatusActive, result.Student.Status)
	assert.Equal(t, models.DefaultGradeLevel, result.Student.GradeLevel)

	require.Len(t, store.doc.Students, 1)
	require.Len(t, store.doc.Enrollments, 1)
	assert.Empty(t, store.doc.Payments, "no payment exists until the gateway completes")
}

func TestEnrollRejectsDuplicateEmail(t *testing.T) {
	store := newDocStore()
	svc := NewEnrollmentService(store, nil, nil, nil)

	_, err := svc.Enroll(context.Background(), validEnrollRequest())
	require.NoError(t, err)

	second := validEnrollRequest()
	second.Name = "Someone Else"
	second.Email = "ALICE@example.com" // case-insensitive match
	_, err = svc.Enroll(context.Background(), second)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDuplicateEmail.Code))

	assert.Len(t, store.doc.Students, 1, "rejected submission writes nothing")
	assert.Len(t, store.doc.Enrollments, 1)
}

func TestEnrollValidatesPayload(t *testing.T) {
	store := newDocStore()
	svc := NewEnrollmentService(store, nil, nil, nil)

	req := validEnrollRequest()
	req.Email = "not-an-email"
	_, err := svc.Enroll(context.Background(), req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.Empty(t, store.doc.Students)
}

func TestEnrollProgramSelectionRules(t *testing.T) {
	store := newDocStore()
	svc := NewEnrollmentService(store, nil, nil, nil)

	tests := []struct {
		name     string
		program  models.ProgramSelection
		wantCode string
	}{
		{
			name:     "core plus needs at least one extra",
			program:  models.ProgramSelection{Type: models.ProgramCorePlus},
			wantCode: appErrors.ErrValidation.Code,
		},
		{
			name: "core plus caps at two extras",
			program: models.ProgramSelection{
				Type:         models.ProgramCorePlus,
				ExtraCourses: []string{"ai", "digital-marketing", "educational-coaching"},
			},
			wantCode: appErrors.ErrOverselection.Code,
		},
		{
			name:     "special education needs a category",
			program:  models.ProgramSelection{Type: models.ProgramSpecialOnly},
			wantCode: appErrors.ErrValidation.Code,
		},
		{
			name:     "single extra needs a course",
			program:  models.ProgramSelection{Type: models.ProgramSingleExtra},
			wantCode: appErrors.ErrValidation.Code,
		},
		{
			name:     "unknown program type",
			program:  models.ProgramSelection{Type: "weekend-club"},
			wantCode: appErrors.ErrValidation.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validEnrollRequest()
			req.Program = tt.program
			_, err := svc.Enroll(context.Background(), req)
			assert.True(t, appErrors.HasCode(err, tt.wantCode))
		})
	}
	assert.Empty(t, store.doc.Students)
}
