package partner

import (
	"context"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactService handles contact-related business operations. Balance
// adjustments are not exposed here: the running balance is owned by the
// settlement workflow and only moves when payments clear, bounce or are
// cancelled.
type ContactService struct {
	contactRepo    partner.ContactRepository
	entryRepo      partner.BalanceEntryRepository
	eventPublisher shared.EventPublisher
}

// NewContactService creates a new ContactService
func NewContactService(
	contactRepo partner.ContactRepository,
	entryRepo partner.BalanceEntryRepository,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		entryRepo:   entryRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ContactService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new contact
func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	contact, err := partner.NewContact(req.Name, partner.ContactType(req.ContactType))
	if err != nil {
		return nil, err
	}
	contact.Email = req.Email
	contact.Phone = req.Phone
	if req.OperatorID != nil {
		contact.CreatedBy = req.OperatorID
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact by its ID
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves active contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, filter ContactListFilter) ([]ContactResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	contacts, err := s.contactRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contactRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToContactResponses(contacts), total, nil
}

// Update changes a contact's descriptive fields
func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := contact.Name
	email := contact.Email
	phone := contact.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}

	if err := contact.UpdateDetails(name, email, phone); err != nil {
		return nil, err
	}

	if err := s.contactRepo.SaveWithLock(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Deactivate soft-deletes a contact. The contact keeps its balance and
// history but stops appearing in listings.
func (s *ContactService) Deactivate(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := contact.Deactivate(); err != nil {
		return err
	}

	return s.contactRepo.SaveWithLock(ctx, contact)
}

// ListBalanceHistory retrieves the balance audit trail for a contact
func (s *ContactService) ListBalanceHistory(ctx context.Context, contactID uuid.UUID, filter ContactListFilter) ([]BalanceEntryResponse, error) {
	if _, err := s.contactRepo.FindByID(ctx, contactID); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindByContact(ctx, contactID, s.buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToBalanceEntryResponses(entries), nil
}

func (s *ContactService) buildFilter(filter ContactListFilter) shared.Filter {
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
	domainFilter.Search = filter.Search
	if filter.ContactType != "" {
		domainFilter.Filters["contact_type"] = filter.ContactType
	}
	return domainFilter
}
