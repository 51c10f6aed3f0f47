package handlers

import (
	"errors"
	"net/http"

	"foodieride-api/middleware"
	"foodieride-api/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP pages. Every dependency is passed in; nothing is
// read from package state.
type Handler struct {
	auth     *services.AuthService
	orders   *services.OrderService
	notifier *services.Notifier
	sessions *middleware.SessionManager
}

func New(auth *services.AuthService, orders *services.OrderService, notifier *services.Notifier, sessions *middleware.SessionManager) *Handler {
	return &Handler{auth: auth, orders: orders, notifier: notifier, sessions: sessions}
}

// statusFor maps service errors onto HTTP codes and the message shown to the
// caller. Store failures never expose their cause.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrStoreFailure):
		return http.StatusInternalServerError, services.ErrStoreFailure.Error()
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnsupportedOrderType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrOrderAlreadyAccepted):
		return http.StatusConflict, services.ErrOrderAlreadyAccepted.Error()
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden, err.Error()
	}
	return http.StatusInternalServerError, services.ErrStoreFailure.Error()
}

// renderError writes the page context again with the error added.
func renderError(c *gin.Context, err error, page gin.H) {
	code, msg := statusFor(err)
	if page == nil {
		page = gin.H{}
	}
	page["error"] = msg
	c.JSON(code, page)
}
