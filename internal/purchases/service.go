package purchases

import (
	"context"
	"sort"
	"strings"
	"sync"

	"movieticket/internal/movies"
	"movieticket/internal/shared/utils/pagination"
	"movieticket/pkg/logger"
)

// Filters narrows the admin purchase view client-side
type Filters struct {
	MovieID    int64
	CustomerID int64
	Status     Status
	Search     string
}

// Service is the purchase management view state. The upstream API has no
// bulk list endpoint, so Reload aggregates one list-by-movie call per known
// movie, de-duplicates by id and sorts by purchase date descending. Known
// inefficiency, candidate for a dedicated upstream endpoint.
type Service interface {
	Reload(ctx context.Context) error
	Purchases() []TicketPurchase
	SetFilters(f Filters)
	Filtered() []TicketPurchase
	Page(n int) ([]TicketPurchase, int)

	CustomerHistory(ctx context.Context, customerID int64) ([]TicketPurchase, error)
	Cancel(ctx context.Context, id int64) error
}

type service struct {
	mu        sync.Mutex
	client    *Client
	movies    *movies.Client
	log       *logger.Logger
	pageSize  int
	purchases []TicketPurchase
	filtered  []TicketPurchase
	filters   Filters
}

func NewService(client *Client, movieClient *movies.Client, log *logger.Logger, pageSize int) Service {
	return &service{
		client:   client,
		movies:   movieClient,
		log:      log,
		pageSize: pageSize,
	}
}

func (s *service) Reload(ctx context.Context) error {
	allMovies, err := s.movies.List(ctx)
	if err != nil {
		return err
	}

	seen := make(map[int64]bool)
	var all []TicketPurchase
	for _, movie := range allMovies {
		purchases, err := s.client.ListByMovie(ctx, movie.ID)
		if err != nil {
			return err
		}
		for _, p := range purchases {
			if !seen[p.ID] {
				seen[p.ID] = true
				all = append(all, p)
			}
		}
	}

	// Purchase dates are ISO-8601, so the lexicographic order is the
	// chronological one.
	sort.Slice(all, func(i, j int) bool {
		return all[i].PurchaseDate > all[j].PurchaseDate
	})

	s.mu.Lock()
	s.purchases = all
	s.applyFilters()
	s.mu.Unlock()
	return nil
}

func (s *service) Purchases() []TicketPurchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TicketPurchase(nil), s.purchases...)
}

func (s *service) SetFilters(f Filters) {
	s.mu.Lock()
	s.filters = f
	s.applyFilters()
	s.mu.Unlock()
}

func (s *service) Filtered() []TicketPurchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TicketPurchase(nil), s.filtered...)
}

func (s *service) Page(n int) ([]TicketPurchase, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pagination.Slice(s.filtered, n, s.pageSize), pagination.PageCount(len(s.filtered), s.pageSize)
}

// CustomerHistory lists a customer's own purchases
func (s *service) CustomerHistory(ctx context.Context, customerID int64) ([]TicketPurchase, error) {
	return s.client.ListByCustomer(ctx, customerID)
}

// Cancel requests the status transition upstream; the caller re-fetches to
// see the new state.
func (s *service) Cancel(ctx context.Context, id int64) error {
	if err := s.client.Cancel(ctx, id); err != nil {
		return err
	}
	s.log.LogPurchaseCancelled(ctx, id)
	return nil
}

// applyFilters must be called with s.mu held
func (s *service) applyFilters() {
	f := s.filters
	var filtered []TicketPurchase
	for _, p := range s.purchases {
		if f.MovieID != 0 && p.MovieID != f.MovieID {
			continue
		}
		if f.CustomerID != 0 && p.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		filtered = append(filtered, p)
	}
	s.filtered = filtered
}

func matchesSearch(p TicketPurchase, term string) bool {
	term = strings.ToLower(term)
	haystack := strings.ToLower(strings.Join([]string{
		p.CustomerName,
		p.CustomerEmail,
		p.MovieTitle,
		p.ConfirmationCode,
	}, " "))
	return strings.Contains(haystack, term)
}
