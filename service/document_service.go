package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"nyayasetu-backend/models"
	"nyayasetu-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownDocumentType is returned when a generation request names a
// document type outside the supported set
var ErrUnknownDocumentType = errors.New("unknown document type")

// DocType enumerates the generatable legal document types
type DocType string

const (
	DocTypeFIR       DocType = "fir"
	DocTypeRTI       DocType = "rti"
	DocTypeNotice    DocType = "notice"
	DocTypeComplaint DocType = "complaint"
)

// Valid reports whether the document type is supported
func (t DocType) Valid() bool {
	switch t {
	case DocTypeFIR, DocTypeRTI, DocTypeNotice, DocTypeComplaint:
		return true
	}
	return false
}

// DocumentData carries the user-supplied fields for a document draft.
// Missing fields render as bracketed placeholders so the draft stays
// usable as a fill-in template.
type DocumentData struct {
	Name                 string `json:"name"`
	FatherName           string `json:"fatherName"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Date                 string `json:"date"`
	Location             string `json:"location"`
	Description          string `json:"description"`
	PoliceStation        string `json:"policeStation"`
	Department           string `json:"department"`
	PaymentMethod        string `json:"paymentMethod"`
	RecipientName        string `json:"recipientName"`
	RecipientAddress     string `json:"recipientAddress"`
	ApplicableLaw        string `json:"applicableLaw"`
	District             string `json:"district"`
	OppositeParty        string `json:"oppositeParty"`
	OppositePartyAddress string `json:"oppositePartyAddress"`
}

// DocumentService generates legal document drafts and stores them as case
// artifacts
type DocumentService struct {
	cases     *CaseService
	artifacts storage.ArtifactStore
	log       *zap.Logger
	now       func() time.Time
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// WithDocumentCaseService sets the case service used for attaching artifacts
func WithDocumentCaseService(cases *CaseService) DocumentServiceOption {
	return func(s *DocumentService) {
		s.cases = cases
	}
}

// WithArtifactStore sets the artifact store
func WithArtifactStore(artifacts storage.ArtifactStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.artifacts = artifacts
	}
}

// WithDocumentLogger sets the logger
func WithDocumentLogger(log *zap.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.log = log
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateRequest is the input for document generation
type GenerateRequest struct {
	Type   DocType
	CaseID uuid.UUID
	Data   DocumentData
}

// GenerateResult is the output of document generation
type GenerateResult struct {
	Document models.CaseDocument
	Content  string
}

// Generate renders a document draft, stores the artifact, and attaches it
// to the case when a case ID is given
func (s *DocumentService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	content, err := s.Render(req.Type, req.Data)
	if err != nil {
		return nil, err
	}

	docID := uuid.New()
	name := fmt.Sprintf("%s_%s.txt", req.Type, s.now().UTC().Format("20060102_150405"))

	doc := models.CaseDocument{
		ID:         docID,
		Name:       name,
		Kind:       models.DocumentGenerated,
		Size:       int64(len(content)),
		UploadedAt: s.now().UTC(),
	}

	if s.artifacts != nil {
		storagePath, err := s.artifacts.Put(ctx, docID, name, strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("failed to store document artifact: %w", err)
		}
		doc.StoragePath = storagePath
	}

	if req.CaseID != uuid.Nil && s.cases != nil {
		if _, err := s.cases.AttachDocument(ctx, req.CaseID, doc); err != nil {
			return nil, err
		}
	}

	s.log.Info("document generated",
		zap.String("type", string(req.Type)),
		zap.String("document_id", docID.String()))

	return &GenerateResult{Document: doc, Content: content}, nil
}

// Render produces the plain-text draft for a document type. The type
// switch is exhaustive over DocType.
func (s *DocumentService) Render(docType DocType, data DocumentData) (string, error) {
	switch docType {
	case DocTypeFIR:
		return s.renderFIR(data), nil
	case DocTypeRTI:
		return s.renderRTI(data), nil
	case DocTypeNotice:
		return s.renderNotice(data), nil
	case DocTypeComplaint:
		return s.renderComplaint(data), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, docType)
	}
}

// orPlaceholder substitutes a bracketed placeholder for a missing field
func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return "[" + placeholder + "]"
	}
	return value
}

func (s *DocumentService) renderFIR(data DocumentData) string {
	return fmt.Sprintf(`To,
The Officer In-Charge,
%s

Subject: First Information Report

Sir/Madam,

I, %s, son/daughter of %s,
resident of %s, would like to lodge a complaint regarding
the following incident:

Date of Incident: %s
Location: %s

Details of the Complaint:
%s

I request you to register an FIR and take necessary action as per law.

Yours sincerely,
%s
Contact: %s
Email: %s
Date: %s`,
		orPlaceholder(data.PoliceStation, "Police Station Name"),
		orPlaceholder(data.Name, "Your Name"),
		orPlaceholder(data.FatherName, "Father's Name"),
		orPlaceholder(data.Address, "Your Address"),
		orPlaceholder(data.Date, "Date"),
		orPlaceholder(data.Location, "Location of Incident"),
		orPlaceholder(data.Description, "Describe the incident in detail"),
		orPlaceholder(data.Name, "Your Name"),
		orPlaceholder(data.Phone, "Phone Number"),
		orPlaceholder(data.Email, "Email Address"),
		s.now().Format("02/01/2006"),
	)
}

func (s *DocumentService) renderRTI(data DocumentData) string {
	return fmt.Sprintf(`To,
The Public Information Officer,
%s
%s

Subject: Application under Right to Information Act, 2005

Sir/Madam,

Under the Right to Information Act, 2005, I %s,
request the following information:

1. %s

2. Please provide certified copies of relevant documents.

3. If the information sought is held by another public authority, kindly transfer
   this application under Section 6(3) of the RTI Act.

I am enclosing the application fee of Rs. 10/- by way of %s.

Contact Details:
Name: %s
Address: %s
Phone: %s
Email: %s

Date: %s

Yours sincerely,
%s`,
		orPlaceholder(data.Department, "Department Name"),
		orPlaceholder(data.Address, "Department Address"),
		orPlaceholder(data.Name, "Your Name"),
		orPlaceholder(data.Description, "Specify the information you need"),
		orPlaceholder(data.PaymentMethod, "payment method"),
		orPlaceholder(data.Name, "Your Name"),
		orPlaceholder(data.Address, "Your Address"),
		orPlaceholder(data.Phone, "Phone Number"),
		orPlaceholder(data.Email, "Email Address"),
		s.now().Format("02/01/2006"),
		orPlaceholder(data.Name, "Your Name"),
	)
}

func (s *DocumentService) renderNotice(data DocumentData) string {
	return fmt.Sprintf(`LEGAL NOTICE

TO:
%s
%s

FROM:
%s
%s

SUBJECT: Legal Notice under %s

Sir/Madam,

TAKE NOTICE that you are hereby called upon to %s
within 15 days from the receipt of this notice, failing which my client will be constrained to
initiate appropriate legal proceedings against you for the recovery of the said amount along with
interest and costs.

TAKE FURTHER NOTICE that if you fail to comply with the above, my client will be compelled to
file a suit for specific performance and/or damages which will be at your risk as to costs.

Dated: %s

%s
Contact: %s`,
		orPlaceholder(data.RecipientName, "Recipient Name"),
		orPlaceholder(data.RecipientAddress, "Recipient Address"),
		orPlaceholder(data.Name, "Your Name"),
		orPlaceholder(data.Address, "Your Address"),
		orPlaceholder(data.ApplicableLaw, "Applicable Law"),
		orPlaceholder(data.Description, "specify the demand/action required"),
		s.now().Format("02/01/2006"),
		orPlaceholder(data.Name, "Your Name"),
		orPlaceholder(data.Phone, "Phone Number"),
	)
}

func (s *DocumentService) renderComplaint(data DocumentData) string {
	return fmt.Sprintf(`CONSUMER COMPLAINT

Before the District Consumer Disputes Redressal Forum
%s

BETWEEN:

%s
Son/Daughter of %s
Resident of %s
Contact: %s
Email: %s

... COMPLAINANT

VERSUS

%s
%s

... OPPOSITE PARTY

COMPLAINT UNDER SECTION 35 OF THE CONSUMER PROTECTION ACT, 2019

FACTS OF THE CASE:

1. That the complainant purchased goods/services from the opposite party on %s.

2. %s

3. That the act of the opposite party amounts to deficiency in service/defective goods
   under the Consumer Protection Act, 2019.

RELIEFS SOUGHT:

a) Direct the opposite party to replace/repair the defective goods/service
b) Refund the amount paid
c) Compensation for mental agony and harassment
d) Cost of litigation

Date: %s

%s
(Complainant)`,
		orPlaceholder(data.District, "District Name"),
		orPlaceholder(data.Name, "Your Name"),
		orPlaceholder(data.FatherName, "Father's Name"),
		orPlaceholder(data.Address, "Your Address"),
		orPlaceholder(data.Phone, "Phone Number"),
		orPlaceholder(data.Email, "Email Address"),
		orPlaceholder(data.OppositeParty, "Name of opposite party"),
		orPlaceholder(data.OppositePartyAddress, "Address of opposite party"),
		orPlaceholder(data.Date, "Date"),
		orPlaceholder(data.Description, "Describe the deficiency in service or defect in goods"),
		s.now().Format("02/01/2006"),
		orPlaceholder(data.Name, "Your Name"),
	)
}

// Upload stores a user-provided file as a case artifact
func (s *DocumentService) Upload(ctx context.Context, caseID uuid.UUID, name string, size int64, data io.Reader) (*models.CaseDocument, error) {
	docID := uuid.New()

	doc := models.CaseDocument{
		ID:         docID,
		Name:       name,
		Kind:       models.DocumentUploaded,
		Size:       size,
		UploadedAt: s.now().UTC(),
	}

	if s.artifacts != nil {
		storagePath, err := s.artifacts.Put(ctx, docID, name, data)
		if err != nil {
			return nil, fmt.Errorf("failed to store uploaded artifact: %w", err)
		}
		doc.StoragePath = storagePath
	}

	if _, err := s.cases.AttachDocument(ctx, caseID, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
