package movies

import (
	"context"
	"sort"
	"sync"

	"movieticket/internal/shared/utils/pagination"
)

// Catalog is the browsing view state: the loaded movie list, the distinct
// genre set derived from it, and the active search filters.
type Catalog interface {
	Load(ctx context.Context) error
	Filter(ctx context.Context, title, genre string) error
	ClearFilters(ctx context.Context) error
	Movies() []Movie
	Genres() []string
	Page(n int) ([]Movie, int)
}

type catalog struct {
	mu       sync.Mutex
	client   *Client
	pageSize int
	movies   []Movie
	genres   []string
}

func NewCatalog(client *Client, pageSize int) Catalog {
	return &catalog{
		client:   client,
		pageSize: pageSize,
	}
}

// Load fetches the full catalog and rebuilds the genre set
func (s *catalog) Load(ctx context.Context) error {
	movies, err := s.client.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.movies = movies
	s.genres = extractGenres(movies)
	s.mu.Unlock()
	return nil
}

// Filter replaces the list with a server-side search result. The genre set
// is only rebuilt on a full Load, so the genre chips stay stable while
// filtering.
func (s *catalog) Filter(ctx context.Context, title, genre string) error {
	movies, err := s.client.Search(ctx, title, genre)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.movies = movies
	s.mu.Unlock()
	return nil
}

func (s *catalog) ClearFilters(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *catalog) Movies() []Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Movie(nil), s.movies...)
}

func (s *catalog) Genres() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.genres...)
}

// Page returns the movies of a 1-based page and the page count
func (s *catalog) Page(n int) ([]Movie, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pagination.Slice(s.movies, n, s.pageSize), pagination.PageCount(len(s.movies), s.pageSize)
}

func extractGenres(movies []Movie) []string {
	seen := make(map[string]bool)
	var genres []string
	for _, m := range movies {
		if m.Genre != "" && !seen[m.Genre] {
			seen[m.Genre] = true
			genres = append(genres, m.Genre)
		}
	}
	sort.Strings(genres)
	return genres
}
