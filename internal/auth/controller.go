package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movieticket/internal/customers"
	"movieticket/internal/session"
	"movieticket/internal/shared/utils/response"
	"movieticket/pkg/logger"
	"movieticket/pkg/upstream"
)

type Controller interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	CurrentSession(c *gin.Context)
}

type controller struct {
	client *customers.Client
	holder *session.Holder
	log    *logger.Logger
}

func NewController(client *customers.Client, holder *session.Holder, log *logger.Logger) Controller {
	return &controller{client: client, holder: holder, log: log}
}

func (ctrl *controller) Register(c *gin.Context) {
	var req customers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := ctrl.client.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Customer registered successfully", customer)
}

// Login authenticates upstream and populates the session holder. The
// upstream error message travels back unchanged on failure; no retry.
func (ctrl *controller) Login(c *gin.Context) {
	var req customers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	s, err := ctrl.client.Login(c.Request.Context(), req)
	if err != nil {
		reason := err.Error()
		if apiErr, ok := upstream.AsAPIError(err); ok {
			reason = apiErr.Message
		}
		ctrl.log.LogAuthFailure(c.Request.Context(), req.Email, reason)
		response.FromError(c, err)
		return
	}

	if err := ctrl.holder.Set(c.Request.Context(), s); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to persist session")
		return
	}

	ctrl.log.LogAuthSuccess(c.Request.Context(), s.CustomerID, s.Email)

	// The login view forwards to returnUrl so an interrupted flow (e.g.
	// the purchase wizard) resumes where it left off.
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"session":   s,
		"returnUrl": c.Query("returnUrl"),
	})
}

func (ctrl *controller) Logout(c *gin.Context) {
	current := ctrl.holder.Current()

	if err := ctrl.holder.Clear(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to clear session")
		return
	}

	if current != nil {
		ctrl.log.LogSessionCleared(c.Request.Context(), current.CustomerID)
	}

	response.Success(c, http.StatusOK, "Logout successful", nil)
}

func (ctrl *controller) CurrentSession(c *gin.Context) {
	current := ctrl.holder.Current()
	if current == nil {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved successfully", gin.H{
		"session":    current,
		"isAdmin":    ctrl.holder.IsAdmin(),
		"isCustomer": ctrl.holder.IsCustomer(),
	})
}
