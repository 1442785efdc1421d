package movies

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"movieticket/pkg/upstream"
)

// Client wraps the movie endpoints of the upstream API 1:1.
// No retry, caching, or transformation logic.
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.api.Get(ctx, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Search filters by title and/or genre server-side. Empty values are
// omitted, so Search("", "") behaves like List.
func (c *Client) Search(ctx context.Context, title, genre string) ([]Movie, error) {
	query := url.Values{}
	if title != "" {
		query.Set("title", title)
	}
	if genre != "" {
		query.Set("genre", genre)
	}

	var movies []Movie
	if err := c.api.Get(ctx, "/movies", query, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Movie, error) {
	var movie Movie
	if err := c.api.Get(ctx, fmt.Sprintf("/movies/%d", id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) Create(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.api.Post(ctx, "/movies", nil, req, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// CreateWithImage sends the movie fields plus the poster image as
// multipart form data.
func (c *Client) CreateWithImage(ctx context.Context, req CreateMovieRequest, image *upstream.File) (*Movie, error) {
	var movie Movie
	if err := c.api.DoMultipart(ctx, "POST", "/movies", movieFields(req), image, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) Update(ctx context.Context, id int64, req CreateMovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.api.Put(ctx, fmt.Sprintf("/movies/%d", id), nil, req, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) UpdateWithImage(ctx context.Context, id int64, req CreateMovieRequest, image *upstream.File) (*Movie, error) {
	var movie Movie
	if err := c.api.DoMultipart(ctx, "PUT", fmt.Sprintf("/movies/%d", id), movieFields(req), image, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Disable soft-disables a movie. The upstream keeps the record.
func (c *Client) Disable(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/movies/%d", id), nil)
}

func movieFields(req CreateMovieRequest) map[string]string {
	return map[string]string{
		"title":       req.Title,
		"description": req.Description,
		"imageUrl":    req.ImageURL,
		"duration":    strconv.Itoa(req.Duration),
		"genre":       req.Genre,
		"price":       strconv.FormatFloat(req.Price, 'f', -1, 64),
	}
}
