package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	appErrors "github.com/mindbridge-edu/mindbridge-core/pkg/errors"
)

func seedSupportStudent(store *docStore) {
	store.doc.Students = append(store.doc.Students, models.Student{
		ID: "MB1", Name: "Alice Chen", Email: "alice@example.com",
	})
}

func TestSubmitComplaintIsConfidential(t *testing.T) {
	store := newDocStore()
	seedSupportStudent(store)
	svc := NewSupportService(store, nil, nil, nil)

	complaint, err := svc.SubmitComplaint(context.Background(), SubmitComplaintRequest{
		StudentID:   "MB1",
		Type:        "tutor",
		Subject:     "Scheduling issue",
		Description: "Classes keep moving without notice.",
	})
	require.NoError(t, err)

	assert.True(t, complaint.Confidential, "complaints are always confidential")
	assert.Equal(t, models.SupportStatusPending, complaint.Status)
	assert.Equal(t, "Alice Chen", complaint.StudentName)
	assert.Len(t, store.doc.Complaints, 1)
}

func TestSubmitComplaintUnknownStudent(t *testing.T) {
	store := newDocStore()
	svc := NewSupportService(store, nil, nil, nil)

	_, err := svc.SubmitComplaint(context.Background(), SubmitComplaintRequest{
		StudentID: "MB999", Type: "tutor", Subject: "x", Description: "y",
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestResolveComplaint(t *testing.T) {
	store := newDocStore()
	seedSupportStudent(store)
	svc := NewSupportService(store, nil, nil, nil)

	complaint, err := svc.SubmitComplaint(context.Background(), SubmitComplaintRequest{
		StudentID: "MB1", Type: "billing", Subject: "Invoice", Description: "Charged twice.",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResolveComplaint(context.Background(), complaint.ID, "Refund issued."))
	resolved := store.doc.Complaints[0]
	assert.Equal(t, models.SupportStatusResolved, resolved.Status)
	assert.Equal(t, "Refund issued.", resolved.Response)

	err = svc.ResolveComplaint(context.Background(), "COMP999", "nope")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestSubmitAndResolveEnquiry(t *testing.T) {
	store := newDocStore()
	seedSupportStudent(store)
	svc := NewSupportService(store, nil, nil, nil)

	enquiry, err := svc.SubmitEnquiry(context.Background(), SubmitEnquiryRequest{
		StudentID: "MB1", Message: "When does the semester end?",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SupportStatusPending, enquiry.Status)

	require.NoError(t, svc.ResolveEnquiry(context.Background(), enquiry.ID, "June 30."))
	assert.Equal(t, models.SupportStatusResolved, store.doc.Enquiries[0].Status)
}

func TestHistoryForStudentMergedNewestFirst(t *testing.T) {
	store := newDocStore()
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	store.doc.Complaints = []models.Complaint{
		{ID: "COMP1", StudentID: "MB1", Subject: "Old complaint", Date: base},
		{ID: "COMP2", StudentID: "MB2", Subject: "Someone else", Date: base.Add(time.Hour)},
	}
	store.doc.Enquiries = []models.Enquiry{
		{ID: "ENQ1", StudentID: "MB1", Message: "Newer enquiry", Date: base.Add(48 * time.Hour)},
	}
	svc := NewSupportService(store, nil, nil, nil)

	history, err := svc.HistoryForStudent(context.Background(), "MB1")
	require.NoError(t, err)
	require.Len(t, history, 2, "other students' items are excluded")
	assert.Equal(t, "ENQ1", history[0].ID)
	assert.Equal(t, "enquiry", history[0].Kind)
	assert.Equal(t, "COMP1", history[1].ID)
	assert.Equal(t, "complaint", history[1].Kind)
}

func TestPendingQueues(t *testing.T) {
	store := newDocStore()
	store.doc.Complaints = []models.Complaint{
		{ID: "COMP1", Status: models.SupportStatusPending},
		{ID: "COMP2", Status: models.SupportStatusResolved},
	}
	store.doc.Enquiries = []models.Enquiry{
		{ID: "ENQ1", Status: models.SupportStatusResolved},
	}
	svc := NewSupportService(store, nil, nil, nil)

	complaints, err := svc.PendingComplaints(context.Background())
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "COMP1", complaints[0].ID)

	enquiries, err := svc.PendingEnquiries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, enquiries)
}
