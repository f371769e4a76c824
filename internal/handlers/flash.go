package handlers

import (
	"net/http"

	"avatar_platform/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie    = "flash"
	ctxFlashesKey  = "pendingFlashes"
	flashCookieAge = 300
)

// Flash categories understood by the templates.
const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashDanger  = "danger"
)

// flash queues a notice for the next rendered page.
func (h *Handler) flash(c *gin.Context, f service.Flash) {
	c.Set(ctxFlashesKey, append(pendingFlashes(c), f))
}

func pendingFlashes(c *gin.Context) []service.Flash {
	v, ok := c.Get(ctxFlashesKey)
	if !ok {
		return nil
	}
	flashes, _ := v.([]service.Flash)
	return flashes
}

// redirect stores queued flashes in a signed cookie and sends a 302.
func (h *Handler) redirect(c *gin.Context, location string) {
	if flashes := pendingFlashes(c); len(flashes) > 0 {
		sealed, err := h.services.Sessions.SealFlashes(flashes)
		if err != nil {
			h.logError("flash_seal_failed", err)
		} else {
			h.setCookie(c, flashCookie, sealed, flashCookieAge)
		}
	}
	c.Redirect(http.StatusFound, location)
}

// takeFlashes returns the notices carried by the request cookie plus any queued
// during this request, and clears the cookie.
func (h *Handler) takeFlashes(c *gin.Context) []service.Flash {
	var flashes []service.Flash
	if token, err := c.Cookie(flashCookie); err == nil && token != "" {
		carried, err := h.services.Sessions.OpenFlashes(token)
		if err == nil {
			flashes = append(flashes, carried...)
		}
		h.clearCookie(c, flashCookie)
	}
	return append(flashes, pendingFlashes(c)...)
}
