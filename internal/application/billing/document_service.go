package billing

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Numbering sequences per document kind
const (
	InvoiceSequence = "INV"
	BillSequence    = "BIL"
)

// NumberGenerator issues sequential document numbers (e.g. INV000042)
type NumberGenerator interface {
	NextNumber(ctx context.Context, sequence string) (string, error)
}

// DocumentService handles invoice and bill operations. Paid amounts are
// never touched here; only the settlement engine credits documents.
type DocumentService struct {
	docRepo        billing.DocumentRepository
	numberGen      NumberGenerator
	eventPublisher shared.EventPublisher
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo billing.DocumentRepository, numberGen NumberGenerator) *DocumentService {
	return &DocumentService{
		docRepo:   docRepo,
		numberGen: numberGen,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *DocumentService) publishDomainEvents(ctx context.Context, doc *billing.Document) {
	if s.eventPublisher == nil {
		return
	}
	events := doc.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	doc.ClearDomainEvents()
}

func sequenceForKind(kind billing.DocumentKind) string {
	if kind == billing.DocumentKindBill {
		return BillSequence
	}
	return InvoiceSequence
}

// Create creates a new draft invoice or bill with its lines
func (s *DocumentService) Create(ctx context.Context, req CreateDocumentRequest) (*DocumentResponse, error) {
	kind := billing.DocumentKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", "Invalid document kind")
	}

	number, err := s.numberGen.NextNumber(ctx, sequenceForKind(kind))
	if err != nil {
		return nil, err
	}

	doc, err := billing.NewDocument(kind, number, req.ContactID, req.IssueDate, req.DueDate)
	if err != nil {
		return nil, err
	}
	if req.OperatorID != nil {
		doc.SetCreatedBy(*req.OperatorID)
	}
	doc.Notes = req.Notes

	for _, line := range req.Lines {
		if _, err := doc.AddLineItem(line.ProductID, line.Description, line.Quantity, line.UnitPrice, line.TaxAmount); err != nil {
			return nil, err
		}
	}
	if req.Discount.IsPositive() {
		if err := doc.SetDiscount(req.Discount); err != nil {
			return nil, err
		}
	}

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByID retrieves a document by ID, constrained to a kind
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID, kind billing.DocumentKind) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByNumber retrieves a document by its number
func (s *DocumentService) GetByNumber(ctx context.Context, number string) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// List retrieves documents of a kind with filtering and pagination
func (s *DocumentService) List(ctx context.Context, kind billing.DocumentKind, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	var (
		docs []billing.Document
		err  error
	)
	if filter.Outstanding != nil && *filter.Outstanding {
		docs, err = s.docRepo.FindOutstanding(ctx, kind, domainFilter)
	} else {
		docs, err = s.docRepo.FindByKind(ctx, kind, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.docRepo.CountByKind(ctx, kind, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDocumentResponses(docs), total, nil
}

// ListOverdue retrieves outstanding documents past their due date
func (s *DocumentService) ListOverdue(ctx context.Context, kind billing.DocumentKind, asOf time.Time, filter DocumentListFilter) ([]DocumentResponse, error) {
	docs, err := s.docRepo.FindOverdue(ctx, kind, asOf, s.buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToDocumentResponses(docs), nil
}

// Update changes the descriptive fields of an editable document
func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, kind billing.DocumentKind, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	if !doc.IsEditable() {
		return nil, shared.ErrDocumentLocked
	}

	if req.DueDate != nil {
		if req.DueDate.Before(doc.IssueDate) {
			return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before issue date")
		}
		doc.DueDate = *req.DueDate
		doc.RefreshStatus(time.Now())
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}

	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// AddLine appends a line to an editable document
func (s *DocumentService) AddLine(ctx context.Context, id uuid.UUID, kind billing.DocumentKind, req LineItemRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if _, err := doc.AddLineItem(req.ProductID, req.Description, req.Quantity, req.UnitPrice, req.TaxAmount); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// UpdateLine changes quantity, price or tax on an existing line
func (s *DocumentService) UpdateLine(ctx context.Context, id uuid.UUID, kind billing.DocumentKind, lineID uuid.UUID, req LineItemRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if err := doc.UpdateLineItem(lineID, req.Quantity, req.UnitPrice, req.TaxAmount); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// RemoveLine deletes a line from an editable document
func (s *DocumentService) RemoveLine(ctx context.Context, id uuid.UUID, kind billing.DocumentKind, lineID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if err := doc.RemoveLineItem(lineID); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// SetDiscount sets the document-level discount
func (s *DocumentService) SetDiscount(ctx context.Context, id uuid.UUID, kind billing.DocumentKind, discount decimal.Decimal) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if err := doc.SetDiscount(discount); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Approve moves a draft document into circulation
func (s *DocumentService) Approve(ctx context.Context, id uuid.UUID, kind billing.DocumentKind, approverID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if err := doc.Approve(approverID); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Cancel voids a document that carries no settlements
func (s *DocumentService) Cancel(ctx context.Context, id uuid.UUID, kind billing.DocumentKind) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDAndKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if err := doc.Cancel(); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

// RefreshOverdueStatuses re-derives Overdue on every outstanding document of
// both kinds as of the given time. Returns how many documents changed.
func (s *DocumentService) RefreshOverdueStatuses(ctx context.Context, asOf time.Time) (int, error) {
	changed := 0
	for _, kind := range []billing.DocumentKind{billing.DocumentKindInvoice, billing.DocumentKindBill} {
		filter := shared.DefaultFilter()
		filter.PageSize = 500
		docs, err := s.docRepo.FindOutstanding(ctx, kind, filter)
		if err != nil {
			return changed, err
		}
		for i := range docs {
			doc := &docs[i]
			before := doc.Status
			doc.RefreshStatus(asOf)
			if doc.Status == before {
				continue
			}
			if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
				return changed, err
			}
			changed++
		}
	}
	return changed, nil
}

func (s *DocumentService) buildFilter(filter DocumentListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.ContactID != nil {
		domainFilter.Filters["contact_id"] = *filter.ContactID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
