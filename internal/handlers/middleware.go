package handlers

import (
	"context"
	"net/http"
	"time"

	"avatar_platform/internal/models"
	"avatar_platform/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey    = "currentUser"
	ctxSessionKey = "session"
)

const loginRequiredMessage = "Please log in to access this page."

func (h *Handler) metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
}

func (h *Handler) accessLogMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Debugw("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"elapsed", time.Since(start),
	)
}

// bootstrapMiddleware prepares the store before the first request is handled.
// Failures are logged by the guard and surface later in handlers.
func (h *Handler) bootstrapMiddleware(c *gin.Context) {
	if h.services.Bootstrap != nil {
		h.services.Bootstrap.Ensure(context.WithoutCancel(c.Request.Context()))
	}
	c.Next()
}

// sessionMiddleware verifies the session cookie without touching the store;
// currentUser loads the user on demand. Bad cookies are cleared and the
// request proceeds anonymously.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(h.cfg.SessionCookie)
	if err != nil || token == "" {
		c.Next()
		return
	}

	sess, err := h.services.Sessions.Parse(token)
	if err != nil {
		h.clearCookie(c, h.cfg.SessionCookie)
		c.Next()
		return
	}

	c.Set(ctxSessionKey, sess)
	c.Next()
}

// requireAuth sends anonymous visitors to the login page, remembering where they were headed.
func (h *Handler) requireAuth(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		h.serverError(c, "session_user_lookup_failed", err)
		c.Abort()
		return
	}
	if user != nil {
		c.Next()
		return
	}
	h.flash(c, service.Flash{Category: flashInfo, Message: loginRequiredMessage})
	h.redirect(c, loginURL(c.Request.URL.RequestURI()))
	c.Abort()
}

// currentUser resolves the session into a user once per request.
// It returns nil, nil for anonymous requests and for sessions whose user is gone.
func (h *Handler) currentUser(c *gin.Context) (*models.User, error) {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*models.User); ok && u != nil {
			return u, nil
		}
	}
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil, nil
	}
	sess, ok := v.(service.Session)
	if !ok {
		return nil, nil
	}

	user, err := h.services.FindByID(c.Request.Context(), sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		h.endSession(c)
		return nil, nil
	}
	c.Set(ctxUserKey, user)
	return user, nil
}

// startSession issues a session for user and sets the session cookie.
func (h *Handler) startSession(c *gin.Context, user *models.User) error {
	token, sess, err := h.services.Sessions.Issue(user.ID)
	if err != nil {
		return err
	}
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	h.setCookie(c, h.cfg.SessionCookie, token, maxAge)
	c.Set(ctxUserKey, user)
	c.Set(ctxSessionKey, sess)
	return nil
}

func (h *Handler) endSession(c *gin.Context) {
	h.clearCookie(c, h.cfg.SessionCookie)
	delete(c.Keys, ctxUserKey)
	delete(c.Keys, ctxSessionKey)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cfg.SecureCookies, true)
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}
