package customers

import (
	"context"
	"errors"
	"strings"
	"sync"

	"movieticket/internal/shared/utils/pagination"
)

var (
	ErrNoPendingToggle   = errors.New("no customer pending confirmation")
	ErrCustomerNotLoaded = errors.New("customer not found in loaded list")
)

// Service is the admin customer management view state: the loaded list, a
// client-side search term, local pagination, and the two-phase
// enable/disable toggle. The list is always re-fetched after a mutation.
type Service interface {
	Reload(ctx context.Context) error
	Customers() []Customer
	SetSearch(term string)
	Filtered() []Customer
	Page(n int) ([]Customer, int)
	PrepareToggle(id int64) (*Customer, error)
	PendingToggle() *Customer
	CancelToggle()
	ConfirmToggle(ctx context.Context) error
}

type service struct {
	mu        sync.Mutex
	client    *Client
	pageSize  int
	customers []Customer
	filtered  []Customer
	search    string
	pending   *Customer
}

func NewService(client *Client, pageSize int) Service {
	return &service{
		client:   client,
		pageSize: pageSize,
	}
}

func (s *service) Reload(ctx context.Context) error {
	customers, err := s.client.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.customers = customers
	s.applyFilter()
	s.mu.Unlock()
	return nil
}

func (s *service) Customers() []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Customer(nil), s.customers...)
}

// SetSearch filters client-side over email and name
func (s *service) SetSearch(term string) {
	s.mu.Lock()
	s.search = strings.TrimSpace(term)
	s.applyFilter()
	s.mu.Unlock()
}

func (s *service) Filtered() []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Customer(nil), s.filtered...)
}

func (s *service) Page(n int) ([]Customer, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pagination.Slice(s.filtered, n, s.pageSize), pagination.PageCount(len(s.filtered), s.pageSize)
}

func (s *service) PrepareToggle(id int64) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID == id {
			customer := s.customers[i]
			s.pending = &customer
			return &customer, nil
		}
	}
	return nil, ErrCustomerNotLoaded
}

func (s *service) PendingToggle() *Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *service) CancelToggle() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

func (s *service) ConfirmToggle(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending == nil {
		return ErrNoPendingToggle
	}

	if err := s.client.Disable(ctx, pending.ID); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// applyFilter must be called with s.mu held
func (s *service) applyFilter() {
	if s.search == "" {
		s.filtered = append([]Customer(nil), s.customers...)
		return
	}

	term := strings.ToLower(s.search)
	var filtered []Customer
	for _, c := range s.customers {
		haystack := strings.ToLower(c.Email + " " + c.FirstName + " " + c.LastName)
		if strings.Contains(haystack, term) {
			filtered = append(filtered, c)
		}
	}
	s.filtered = filtered
}
