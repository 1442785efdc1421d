package customers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movieticket/internal/shared/utils/response"
)

type Controller interface {
	ListCustomers(c *gin.Context)
	GetCustomer(c *gin.Context)
	PrepareToggle(c *gin.Context)
	ConfirmToggle(c *gin.Context)
	CancelToggle(c *gin.Context)
}

type controller struct {
	service Service
	client  *Client
}

func NewController(service Service, client *Client) Controller {
	return &controller{service: service, client: client}
}

func (ctrl *controller) ListCustomers(c *gin.Context) {
	if err := ctrl.service.Reload(c.Request.Context()); err != nil {
		response.FromError(c, err)
		return
	}

	ctrl.service.SetSearch(c.Query("search"))

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	items, pageCount := ctrl.service.Page(page)

	response.Success(c, http.StatusOK, "Customers retrieved successfully", gin.H{
		"customers": items,
		"page":      page,
		"pageCount": pageCount,
		"total":     len(ctrl.service.Filtered()),
	})
}

func (ctrl *controller) GetCustomer(c *gin.Context) {
	id, err := customerID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	// Detail view hits the upstream directly for fresh state
	customer, err := ctrl.client.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Customer retrieved successfully", customer)
}

func (ctrl *controller) PrepareToggle(c *gin.Context) {
	id, err := customerID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	customer, err := ctrl.service.PrepareToggle(id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotLoaded) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	action := "disable"
	if !customer.Enabled {
		action = "enable"
	}

	response.Success(c, http.StatusOK, "Confirmation required", gin.H{
		"customer": customer,
		"action":   action,
	})
}

func (ctrl *controller) ConfirmToggle(c *gin.Context) {
	id, err := customerID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	pending := ctrl.service.PendingToggle()
	if pending == nil || pending.ID != id {
		response.Error(c, http.StatusConflict, "No matching toggle pending confirmation")
		return
	}

	if err := ctrl.service.ConfirmToggle(c.Request.Context()); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Customer status updated successfully", gin.H{
		"customers": ctrl.service.Customers(),
	})
}

func (ctrl *controller) CancelToggle(c *gin.Context) {
	ctrl.service.CancelToggle()
	response.Success(c, http.StatusOK, "Toggle cancelled", nil)
}

func customerID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
