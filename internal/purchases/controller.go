package purchases

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"movieticket/internal/session"
	"movieticket/internal/shared/utils/response"
)

type Controller interface {
	StartPurchase(c *gin.Context)
	GetWizard(c *gin.Context)
	SubmitQuantity(c *gin.Context)
	SubmitPayment(c *gin.Context)
	GetConfirmation(c *gin.Context)

	ListMyPurchases(c *gin.Context)
	CancelMyPurchase(c *gin.Context)

	ListAllPurchases(c *gin.Context)
	GetPurchase(c *gin.Context)
}

type controller struct {
	wizard  *Wizard
	service Service
	client  *Client
	holder  *session.Holder
}

func NewController(wizard *Wizard, service Service, client *Client, holder *session.Holder) Controller {
	return &controller{wizard: wizard, service: service, client: client, holder: holder}
}

// StartPurchase enters the wizard for a movie. A missing session redirects
// to login carrying the return path; a failed movie load aborts the flow
// and redirects home.
func (ctrl *controller) StartPurchase(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	if err := ctrl.wizard.Start(c.Request.Context(), movieID); err != nil {
		if errors.Is(err, ErrLoginRequired) {
			returnURL := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/auth/login?returnUrl="+returnURL)
			return
		}
		c.Redirect(http.StatusFound, "/home")
		return
	}

	response.Success(c, http.StatusOK, "Purchase started", ctrl.wizard.State())
}

func (ctrl *controller) GetWizard(c *gin.Context) {
	state := ctrl.wizard.State()
	if state.Movie == nil {
		response.Error(c, http.StatusNotFound, "No purchase in progress")
		return
	}
	response.Success(c, http.StatusOK, "Purchase state", state)
}

func (ctrl *controller) SubmitQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ctrl.wizard.SubmitQuantity(req.Quantity); err != nil {
		ctrl.wizardError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Quantity accepted", ctrl.wizard.State())
}

func (ctrl *controller) SubmitPayment(c *gin.Context) {
	var details PaymentDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase, err := ctrl.wizard.SubmitPayment(c.Request.Context(), details)
	if err != nil {
		ctrl.wizardError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Purchase completed successfully", purchase)
}

func (ctrl *controller) GetConfirmation(c *gin.Context) {
	purchase := ctrl.wizard.Confirmation()
	if purchase == nil {
		response.Error(c, http.StatusNotFound, "No completed purchase")
		return
	}
	response.Success(c, http.StatusOK, "Purchase confirmation", purchase)
}

// ListMyPurchases shows the signed-in customer's purchase history
func (ctrl *controller) ListMyPurchases(c *gin.Context) {
	current := ctrl.holder.Current()
	if current == nil {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	purchases, err := ctrl.service.CustomerHistory(c.Request.Context(), current.CustomerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Purchases retrieved successfully", purchases)
}

// CancelMyPurchase cancels one of the customer's own purchases and returns
// the re-fetched history so the view reflects upstream state.
func (ctrl *controller) CancelMyPurchase(c *gin.Context) {
	current := ctrl.holder.Current()
	if current == nil {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid purchase ID")
		return
	}

	purchase, err := ctrl.client.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if purchase.CustomerID != current.CustomerID {
		response.Error(c, http.StatusForbidden, "Purchase belongs to another customer")
		return
	}

	if err := ctrl.service.Cancel(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	history, err := ctrl.service.CustomerHistory(c.Request.Context(), current.CustomerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Purchase cancelled successfully", history)
}

// ListAllPurchases is the admin aggregation view
func (ctrl *controller) ListAllPurchases(c *gin.Context) {
	if err := ctrl.service.Reload(c.Request.Context()); err != nil {
		response.FromError(c, err)
		return
	}

	ctrl.service.SetFilters(Filters{
		MovieID:    int64Query(c, "movieId"),
		CustomerID: int64Query(c, "customerId"),
		Status:     Status(c.Query("status")),
		Search:     c.Query("search"),
	})

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	items, pageCount := ctrl.service.Page(page)

	response.Success(c, http.StatusOK, "Purchases retrieved successfully", gin.H{
		"purchases": items,
		"page":      page,
		"pageCount": pageCount,
		"total":     len(ctrl.service.Filtered()),
	})
}

func (ctrl *controller) GetPurchase(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid purchase ID")
		return
	}

	purchase, err := ctrl.client.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Purchase retrieved successfully", purchase)
}

func (ctrl *controller) wizardError(c *gin.Context, err error) {
	var invalid *ValidationError
	switch {
	case errors.As(err, &invalid):
		response.ValidationFailed(c, "Validation failed", invalid.Fields)
	case errors.Is(err, ErrNoActiveFlow):
		response.Error(c, http.StatusNotFound, "No purchase in progress")
	case errors.Is(err, ErrWrongStep):
		response.Error(c, http.StatusConflict, "Step not reachable from current state")
	case errors.Is(err, ErrLoginRequired):
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
	default:
		response.FromError(c, err)
	}
}

func int64Query(c *gin.Context, key string) int64 {
	value, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
