package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetAppendAlignsToHeaders(t *testing.T) {
	data := Dataset{Headers: []string{"Name", "Amount", "Status"}}
	data.Append(map[string]string{"Amount": "$235", "Name": "Alice Chen"})

	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"Alice Chen", "$235", ""}, data.Rows[0])
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$235", Money(235))
	assert.Equal(t, "$0", Money(0))
}

func TestCSVRender(t *testing.T) {
	data := Dataset{Headers: []string{"Name", "Amount"}}
	data.Append(map[string]string{"Name": "Alice Chen", "Amount": Money(235)})
	data.Append(map[string]string{"Name": "Ben Osei", "Amount": Money(100)})

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Name,Amount\nAlice Chen,$235\nBen Osei,$100\n", string(out))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVRenderRejectsMisalignedRow(t *testing.T) {
	data := Dataset{
		Headers: []string{"Name", "Amount"},
		Rows:    [][]string{{"only one field"}},
	}
	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	data := Dataset{Headers: []string{"Student", "Grade"}}
	data.Append(map[string]string{"Student": "Alice Chen", "Grade": "A"})

	out, err := NewPDFExporter().Render(data, "Spring 2026 Results")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "empty")
	assert.Error(t, err)
}

func TestRenderInvoice(t *testing.T) {
	inv := Invoice{
		Title: "Enrollment Invoice",
		Fields: []Field{
			{Label: "Invoice For", Value: "Alice Chen"},
			{Label: "Program", Value: "High School Core + 2 Extra Course(s)"},
		},
		Lines: []Line{
			{Item: "High School Core", Amount: 150},
			{Item: "2 Extra Courses", Amount: 85},
		},
		Total: 235,
	}

	out, err := NewPDFExporter().RenderInvoice(inv)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderInvoiceRequiresLines(t *testing.T) {
	_, err := NewPDFExporter().RenderInvoice(Invoice{Title: "empty"})
	assert.Error(t, err)
}
