package handlers

import (
	"fmt"
	"net/http"

	"foodieride-api/logger"
	"foodieride-api/middleware"
	"foodieride-api/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Phone    string `form:"phone" json:"phone"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next"`
}

// pageRedirects lists the pages a login may continue to.
var pageRedirects = map[string]string{
	"home":    "/home",
	"ride":    "/ride",
	"captain": "/captain",
}

func redirectFor(next string) string {
	if path, ok := pageRedirects[next]; ok {
		return path
	}
	return "/index"
}

func nextPage(c *gin.Context, fallback string) string {
	if next := c.Query("next"); next != "" {
		return next
	}
	if fallback != "" {
		return fallback
	}
	return "index"
}

// Index drops any session and greets the visitor
func (h *Handler) Index(c *gin.Context) {
	if err := h.endSession(c); err != nil {
		renderError(c, err, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to FoodieRide",
		"pages": gin.H{
			"customer": middleware.LoginURL("home"),
			"rider":    middleware.LoginURL("ride"),
			"captain":  middleware.LoginURL("captain"),
		},
	})
}

// LoginPage tells the client where a login will lead
func (h *Handler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"next": nextPage(c, "")})
}

// Login authenticates an existing user or signs up a new one
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	next := nextPage(c, req.Next)

	user, created, err := h.auth.Authenticate(c.Request.Context(), services.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Next:     next,
	})
	if err != nil {
		renderError(c, err, gin.H{"next": next})
		return
	}

	token, _, err := h.sessions.Issue(user)
	if err != nil {
		logger.Get().Error().Err(err).Uint("user_id", user.ID).Msg("failed to issue session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "next": next})
		return
	}
	middleware.SetSessionCookie(c, token, h.sessions)

	status, message := http.StatusOK, "Login successful"
	if created {
		status, message = http.StatusCreated, "Account created successfully"
	}
	c.JSON(status, gin.H{
		"message": message,
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
		"redirect": redirectFor(next),
	})
}

// Logout ends the session
func (h *Handler) Logout(c *gin.Context) {
	if err := h.endSession(c); err != nil {
		renderError(c, err, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/index"})
}

// endSession revokes the caller's session and clears the cookie. The cookie
// is kept when revocation fails so the caller can retry.
func (h *Handler) endSession(c *gin.Context) error {
	if s, ok := middleware.GetSession(c); ok {
		if err := h.sessions.Revoke(c.Request.Context(), s); err != nil {
			logger.Get().Error().Err(err).Uint("user_id", s.UserID).Msg("failed to revoke session")
			return fmt.Errorf("end session: %w: %w", services.ErrStoreFailure, err)
		}
	}
	middleware.ClearSessionCookie(c)
	return nil
}
