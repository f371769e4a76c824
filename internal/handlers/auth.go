package handlers

import (
	"errors"
	"net/http"
	"strings"

	"avatar_platform/internal/metrics"
	"avatar_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// Auth event labels for the metrics counter.
const (
	eventSignup = "signup"
	eventLogin  = "login"
	eventLogout = "logout"
)

const (
	msgMissingFields   = "Please provide email and password."
	msgDuplicateEmail  = "Account already exists with that email."
	msgPasswordTooLong = "Password must be at most 72 bytes."
	msgSignedUp        = "Account created. Logged in."
	msgLoggedIn        = "Logged in successfully."
	msgBadCredentials  = "Invalid credentials."
	msgLoggedOut       = "Logged out."
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) signupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{
		"Title": "Sign up",
		"Next":  safeNext(nextParam(c)),
	})
}

func (h *Handler) signup(c *gin.Context) {
	email := normalizeEmail(c.PostForm("email"))
	name := strings.TrimSpace(c.PostForm("name"))
	password := c.PostForm("password")
	next := nextParam(c)

	if email == "" || password == "" {
		h.rejectSignup(c, msgMissingFields, next)
		return
	}

	user, err := h.services.Create(c.Request.Context(), email, name, password)
	switch {
	case errors.Is(err, service.ErrValidation):
		h.rejectSignup(c, msgMissingFields, next)
		return
	case errors.Is(err, service.ErrDuplicateEmail):
		h.rejectSignup(c, msgDuplicateEmail, next)
		return
	case errors.Is(err, service.ErrPasswordTooLong):
		h.rejectSignup(c, msgPasswordTooLong, next)
		return
	case err != nil:
		h.metrics.ObserveAuth(eventSignup, metrics.OutcomeFailure)
		h.serverError(c, "auth_signup_failed", err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		h.serverError(c, "auth_session_issue_failed", err)
		return
	}
	h.metrics.ObserveAuth(eventSignup, metrics.OutcomeSuccess)
	if h.log != nil {
		h.log.Infow("auth_signup", "user_id", user.ID)
	}
	h.flash(c, service.Flash{Category: flashSuccess, Message: msgSignedUp})
	h.redirect(c, afterLogin(next))
}

func (h *Handler) rejectSignup(c *gin.Context, message, next string) {
	h.metrics.ObserveAuth(eventSignup, metrics.OutcomeFailure)
	h.flash(c, service.Flash{Category: flashWarning, Message: message})
	h.redirect(c, signupURL(next))
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Log in",
		"Next":  safeNext(nextParam(c)),
	})
}

func (h *Handler) login(c *gin.Context) {
	email := normalizeEmail(c.PostForm("email"))
	password := c.PostForm("password")
	next := nextParam(c)

	user, err := h.services.Authenticate(c.Request.Context(), email, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.metrics.ObserveAuth(eventLogin, metrics.OutcomeFailure)
		if h.log != nil {
			h.log.Infow("auth_login_failed", "reason", "invalid_credentials")
		}
		h.flash(c, service.Flash{Category: flashDanger, Message: msgBadCredentials})
		h.redirect(c, loginURL(next))
		return
	}
	if err != nil {
		h.metrics.ObserveAuth(eventLogin, metrics.OutcomeFailure)
		h.serverError(c, "auth_login_error", err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		h.serverError(c, "auth_session_issue_failed", err)
		return
	}
	h.metrics.ObserveAuth(eventLogin, metrics.OutcomeSuccess)
	h.flash(c, service.Flash{Category: flashSuccess, Message: msgLoggedIn})
	h.redirect(c, afterLogin(next))
}

func (h *Handler) logout(c *gin.Context) {
	h.endSession(c)
	h.metrics.ObserveAuth(eventLogout, metrics.OutcomeSuccess)
	h.flash(c, service.Flash{Category: flashInfo, Message: msgLoggedOut})
	h.redirect(c, "/")
}
