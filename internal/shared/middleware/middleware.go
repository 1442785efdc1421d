package middleware

import (
	"net/http"
	"net/url"
	"time"

	"movieticket/internal/session"
	"movieticket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request with a unique id for log correlation
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs every request served by the gateway
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}

// Guards are navigation-time predicates evaluated synchronously against the
// session holder. They trust the locally cached session; the upstream API
// still authorizes every mutating call server-side.

// RequireLogin denies anonymous navigation and redirects to the login view
// carrying the original path so the flow resumes after authentication.
func RequireLogin(holder *session.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if holder.IsLoggedIn() {
			c.Next()
			return
		}

		returnURL := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, "/auth/login?returnUrl="+returnURL)
		c.Abort()
	}
}

// RequireAdmin denies and redirects home unless role=ADMIN
func RequireAdmin(holder *session.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if holder.IsAdmin() {
			c.Next()
			return
		}

		c.Redirect(http.StatusFound, "/home")
		c.Abort()
	}
}

// RequireCustomer denies and redirects home unless role=CUSTOMER
func RequireCustomer(holder *session.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if holder.IsCustomer() {
			c.Next()
			return
		}

		c.Redirect(http.StatusFound, "/home")
		c.Abort()
	}
}
