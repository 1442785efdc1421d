package movies

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movieticket/internal/shared/utils/response"
)

type Controller interface {
	BrowseCatalog(c *gin.Context)
	GetMovie(c *gin.Context)
	ListMovies(c *gin.Context)
	CreateMovie(c *gin.Context)
	UpdateMovie(c *gin.Context)
	PrepareToggle(c *gin.Context)
	ConfirmToggle(c *gin.Context)
	CancelToggle(c *gin.Context)
}

type controller struct {
	catalog Catalog
	manage  Manage
	client  *Client
}

func NewController(catalog Catalog, manage Manage, client *Client) Controller {
	return &controller{catalog: catalog, manage: manage, client: client}
}

// BrowseCatalog is the public movie browsing view: full load by default,
// server-side search when title or genre filters are present.
func (ctrl *controller) BrowseCatalog(c *gin.Context) {
	title := c.Query("title")
	genre := c.Query("genre")

	var err error
	if title != "" || genre != "" {
		err = ctrl.catalog.Filter(c.Request.Context(), title, genre)
	} else {
		err = ctrl.catalog.Load(c.Request.Context())
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	page := pageQuery(c)
	items, pageCount := ctrl.catalog.Page(page)

	response.Success(c, http.StatusOK, "Movies retrieved successfully", gin.H{
		"movies":    items,
		"genres":    ctrl.catalog.Genres(),
		"page":      page,
		"pageCount": pageCount,
		"total":     len(ctrl.catalog.Movies()),
	})
}

func (ctrl *controller) GetMovie(c *gin.Context) {
	id, err := movieID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	movie, err := ctrl.client.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Movie retrieved successfully", movie)
}

// ListMovies is the admin management list
func (ctrl *controller) ListMovies(c *gin.Context) {
	if err := ctrl.manage.Reload(c.Request.Context()); err != nil {
		response.FromError(c, err)
		return
	}

	page := pageQuery(c)
	items, pageCount := ctrl.manage.Page(page)

	response.Success(c, http.StatusOK, "Movies retrieved successfully", gin.H{
		"movies":    items,
		"page":      page,
		"pageCount": pageCount,
		"total":     len(ctrl.manage.Movies()),
	})
}

func (ctrl *controller) CreateMovie(c *gin.Context) {
	req, image, err := bindMovieRequest(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	movie, err := ctrl.manage.Create(c.Request.Context(), req, image)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Movie created successfully", movie)
}

func (ctrl *controller) UpdateMovie(c *gin.Context) {
	id, err := movieID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	req, image, err := bindMovieRequest(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	movie, err := ctrl.manage.Update(c.Request.Context(), id, req, image)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Movie updated successfully", movie)
}

// PrepareToggle marks the movie and returns the confirmation prompt payload
func (ctrl *controller) PrepareToggle(c *gin.Context) {
	id, err := movieID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	movie, err := ctrl.manage.PrepareToggle(id)
	if err != nil {
		if errors.Is(err, ErrMovieNotLoaded) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	action := "disable"
	if !movie.IsEnabled {
		action = "enable"
	}

	response.Success(c, http.StatusOK, "Confirmation required", gin.H{
		"movie":  movie,
		"action": action,
	})
}

func (ctrl *controller) ConfirmToggle(c *gin.Context) {
	id, err := movieID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	pending := ctrl.manage.PendingToggle()
	if pending == nil || pending.ID != id {
		response.Error(c, http.StatusConflict, "No matching toggle pending confirmation")
		return
	}

	if err := ctrl.manage.ConfirmToggle(c.Request.Context()); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Movie status updated successfully", gin.H{
		"movies": ctrl.manage.Movies(),
	})
}

func (ctrl *controller) CancelToggle(c *gin.Context) {
	ctrl.manage.CancelToggle()
	response.Success(c, http.StatusOK, "Toggle cancelled", nil)
}

func movieID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

// bindMovieRequest accepts JSON or multipart form data with an optional
// image file.
func bindMovieRequest(c *gin.Context) (CreateMovieRequest, *multipart.FileHeader, error) {
	var req CreateMovieRequest

	if c.ContentType() == "multipart/form-data" {
		if err := c.ShouldBind(&req); err != nil {
			return req, nil, err
		}
		image, err := c.FormFile("image")
		if err != nil {
			// The image part is optional
			return req, nil, nil
		}
		return req, image, nil
	}

	err := c.ShouldBindJSON(&req)
	return req, nil, err
}
