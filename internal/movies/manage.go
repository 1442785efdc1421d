package movies

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"movieticket/internal/shared/utils/pagination"
	"movieticket/pkg/upstream"
)

var (
	ErrNoPendingToggle = errors.New("no movie pending confirmation")
	ErrMovieNotLoaded  = errors.New("movie not found in loaded list")
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Manage is the admin view state for the movie list: reload after every
// mutation, and a two-phase enable/disable toggle (prepare, then confirm
// or cancel). No optimistic updates: the list is always re-fetched so it
// reflects upstream state.
type Manage interface {
	Reload(ctx context.Context) error
	Movies() []Movie
	Page(n int) ([]Movie, int)
	Create(ctx context.Context, req CreateMovieRequest, image *multipart.FileHeader) (*Movie, error)
	Update(ctx context.Context, id int64, req CreateMovieRequest, image *multipart.FileHeader) (*Movie, error)
	PrepareToggle(id int64) (*Movie, error)
	PendingToggle() *Movie
	CancelToggle()
	ConfirmToggle(ctx context.Context) error
}

type manage struct {
	mu           sync.Mutex
	client       *Client
	pageSize     int
	maxImageSize int64
	movies       []Movie
	pending      *Movie
}

func NewManage(client *Client, pageSize int, maxImageSize int64) Manage {
	return &manage{
		client:       client,
		pageSize:     pageSize,
		maxImageSize: maxImageSize,
	}
}

func (s *manage) Reload(ctx context.Context) error {
	movies, err := s.client.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.movies = movies
	s.mu.Unlock()
	return nil
}

func (s *manage) Movies() []Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Movie(nil), s.movies...)
}

func (s *manage) Page(n int) ([]Movie, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pagination.Slice(s.movies, n, s.pageSize), pagination.PageCount(len(s.movies), s.pageSize)
}

func (s *manage) Create(ctx context.Context, req CreateMovieRequest, image *multipart.FileHeader) (*Movie, error) {
	if image == nil {
		return s.client.Create(ctx, req)
	}

	file, err := s.openImage(image)
	if err != nil {
		return nil, err
	}
	return s.client.CreateWithImage(ctx, req, file)
}

func (s *manage) Update(ctx context.Context, id int64, req CreateMovieRequest, image *multipart.FileHeader) (*Movie, error) {
	if image == nil {
		return s.client.Update(ctx, id, req)
	}

	file, err := s.openImage(image)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateWithImage(ctx, id, req, file)
}

// PrepareToggle marks a movie as the pending toggle target. The view shows
// a confirmation prompt before anything is sent upstream.
func (s *manage) PrepareToggle(id int64) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.movies {
		if s.movies[i].ID == id {
			movie := s.movies[i]
			s.pending = &movie
			return &movie, nil
		}
	}
	return nil, ErrMovieNotLoaded
}

func (s *manage) PendingToggle() *Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *manage) CancelToggle() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// ConfirmToggle disables the pending movie and re-fetches the list.
func (s *manage) ConfirmToggle(ctx context.Context) error {
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

// openImage validates the uploaded poster (size, sniffed content type) and
// wraps it for multipart forwarding.
func (s *manage) openImage(header *multipart.FileHeader) (*upstream.File, error) {
	if header.Size > s.maxImageSize {
		return nil, fmt.Errorf("file size exceeds maximum limit of %d MB", s.maxImageSize/(1024*1024))
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		src.Close()
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	mimeType := http.DetectContentType(buffer[:n])

	allowed := false
	for _, t := range allowedImageTypes {
		if mimeType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		src.Close()
		return nil, fmt.Errorf("invalid file type. Allowed types: %v", allowedImageTypes)
	}

	// The sniffed bytes are stitched back in front of the remainder
	return &upstream.File{
		Field:       "image",
		Name:        header.Filename,
		ContentType: mimeType,
		Content:     io.MultiReader(bytes.NewReader(buffer[:n]), src),
	}, nil
}
