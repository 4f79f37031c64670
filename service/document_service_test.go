package service

import (
	"context"
	"testing"
	"time"

	"nyayasetu-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClockService() *DocumentService {
	svc := NewDocumentService()
	svc.now = func() time.Time {
		return time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestDocTypeValid(t *testing.T) {
	tests := []struct {
		docType DocType
		want    bool
	}{
		{DocTypeFIR, true},
		{DocTypeRTI, true},
		{DocTypeNotice, true},
		{DocTypeComplaint, true},
		{DocType("affidavit"), false},
		{DocType(""), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.docType.Valid(), "type %q", tt.docType)
	}
}

func TestRenderDispatch(t *testing.T) {
	svc := fixedClockService()

	tests := []struct {
		docType DocType
		heading string
	}{
		{DocTypeFIR, "Subject: First Information Report"},
		{DocTypeRTI, "Right to Information Act, 2005"},
		{DocTypeNotice, "LEGAL NOTICE"},
		{DocTypeComplaint, "CONSUMER COMPLAINT"},
	}

	for _, tt := range tests {
		content, err := svc.Render(tt.docType, DocumentData{})
		require.NoError(t, err, "type %s", tt.docType)
		assert.Contains(t, content, tt.heading)
	}
}

func TestRenderUnknownType(t *testing.T) {
	svc := fixedClockService()

	_, err := svc.Render(DocType("affidavit"), DocumentData{})
	assert.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestRenderFIRPlaceholders(t *testing.T) {
	svc := fixedClockService()

	content, err := svc.Render(DocTypeFIR, DocumentData{})
	require.NoError(t, err)

	assert.Contains(t, content, "[Your Name]")
	assert.Contains(t, content, "[Father's Name]")
	assert.Contains(t, content, "[Police Station Name]")
	assert.Contains(t, content, "[Describe the incident in detail]")
	assert.Contains(t, content, "Date: 15/03/2025")
}

func TestRenderFIRFilledFields(t *testing.T) {
	svc := fixedClockService()

	content, err := svc.Render(DocTypeFIR, DocumentData{
		Name:          "Ramesh Kumar",
		FatherName:    "Suresh Kumar",
		Address:       "12 MG Road, Pune",
		PoliceStation: "Shivajinagar Police Station",
		Date:          "10/03/2025",
		Location:      "Shivajinagar market",
		Description:   "My shop was vandalized during the night.",
		Phone:         "9876543210",
		Email:         "ramesh@example.com",
	})
	require.NoError(t, err)

	assert.Contains(t, content, "I, Ramesh Kumar, son/daughter of Suresh Kumar")
	assert.Contains(t, content, "Shivajinagar Police Station")
	assert.Contains(t, content, "My shop was vandalized during the night.")
	assert.NotContains(t, content, "[Your Name]")
	assert.NotContains(t, content, "[Police Station Name]")
}

func TestRenderRTI(t *testing.T) {
	svc := fixedClockService()

	content, err := svc.Render(DocTypeRTI, DocumentData{
		Name:          "Sita Devi",
		Department:    "Municipal Corporation",
		Description:   "Details of road repair contracts awarded in 2024",
		PaymentMethod: "Indian Postal Order",
	})
	require.NoError(t, err)

	assert.Contains(t, content, "The Public Information Officer")
	assert.Contains(t, content, "Municipal Corporation")
	assert.Contains(t, content, "Details of road repair contracts awarded in 2024")
	assert.Contains(t, content, "Indian Postal Order")
	assert.Contains(t, content, "Section 6(3) of the RTI Act")
	// Address was not supplied
	assert.Contains(t, content, "[Your Address]")
}

func TestRenderNotice(t *testing.T) {
	svc := fixedClockService()

	content, err := svc.Render(DocTypeNotice, DocumentData{
		Name:             "Arjun Mehta",
		RecipientName:    "ABC Builders Pvt Ltd",
		ApplicableLaw:    "Section 73 of the Indian Contract Act, 1872",
		Description:      "refund the advance amount of Rs. 2,00,000",
		RecipientAddress: "45 Link Road, Mumbai",
	})
	require.NoError(t, err)

	assert.Contains(t, content, "ABC Builders Pvt Ltd")
	assert.Contains(t, content, "Section 73 of the Indian Contract Act, 1872")
	assert.Contains(t, content, "refund the advance amount of Rs. 2,00,000")
	assert.Contains(t, content, "within 15 days from the receipt of this notice")
}

func TestRenderComplaint(t *testing.T) {
	svc := fixedClockService()

	content, err := svc.Render(DocTypeComplaint, DocumentData{
		Name:          "Priya Sharma",
		District:      "Jaipur",
		OppositeParty: "XYZ Electronics",
		Description:   "The refrigerator stopped working within a week of purchase.",
	})
	require.NoError(t, err)

	assert.Contains(t, content, "District Consumer Disputes Redressal Forum")
	assert.Contains(t, content, "Jaipur")
	assert.Contains(t, content, "XYZ Electronics")
	assert.Contains(t, content, "SECTION 35 OF THE CONSUMER PROTECTION ACT, 2019")
	assert.Contains(t, content, "The refrigerator stopped working within a week of purchase.")
	assert.Contains(t, content, "[Address of opposite party]")
}

func TestGenerateWithoutCase(t *testing.T) {
	svc := fixedClockService()

	result, err := svc.Generate(context.Background(), GenerateRequest{
		Type: DocTypeRTI,
		Data: DocumentData{Name: "Sita Devi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "rti_20250315_103000.txt", result.Document.Name)
	assert.Equal(t, models.DocumentGenerated, result.Document.Kind)
	assert.Equal(t, int64(len(result.Content)), result.Document.Size)
	assert.NotEqual(t, uuid.Nil, result.Document.ID)
	assert.Contains(t, result.Content, "Sita Devi")
}

func TestGenerateUnknownTypeFails(t *testing.T) {
	svc := fixedClockService()

	_, err := svc.Generate(context.Background(), GenerateRequest{Type: DocType("will")})
	assert.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestGenerateAttachesToCase(t *testing.T) {
	cases := newTestCaseService(t)
	docs := NewDocumentService(WithDocumentCaseService(cases))
	docs.now = func() time.Time {
		return time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	}

	created, err := cases.CreateFromAnalysis(context.Background(), CreateCaseRequest{
		UserID:   uuid.New(),
		Analysis: sampleAnalysis(),
	})
	require.NoError(t, err)

	result, err := docs.Generate(context.Background(), GenerateRequest{
		Type:   DocTypeNotice,
		CaseID: created.Case.ID,
		Data:   DocumentData{Name: "Arjun Mehta"},
	})
	require.NoError(t, err)

	record, err := cases.Get(context.Background(), created.Case.ID)
	require.NoError(t, err)
	require.Len(t, record.Documents, 1)
	assert.Equal(t, result.Document.ID, record.Documents[0].ID)
	assert.Equal(t, models.DocumentGenerated, record.Documents[0].Kind)
}
