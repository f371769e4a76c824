package handlers

import (
	"errors"
	"net/http"

	"avatar_platform/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) index(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": "Home"})
}

func (h *Handler) products(c *gin.Context) {
	products, err := h.services.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "catalog_list_failed", err)
		return
	}
	h.render(c, http.StatusOK, "products.html", gin.H{
		"Title":    "Products",
		"Products": products,
	})
}

func (h *Handler) product(c *gin.Context) {
	slug := c.Param("slug")
	p, err := h.services.Get(c.Request.Context(), slug)
	if errors.Is(err, service.ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.serverError(c, "catalog_get_failed", err)
		return
	}
	h.render(c, http.StatusOK, "product.html", gin.H{
		"Title":   p.Title,
		"Product": p,
	})
}

func (h *Handler) dashboard(c *gin.Context) {
	user, _ := h.currentUser(c)
	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title": "Dashboard",
		"User":  user,
	})
}

// render executes a page template with the shared layout data.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	user, err := h.currentUser(c)
	if err != nil {
		// rendered as anonymous
		h.logError("session_user_lookup_failed", err)
	}
	data["CurrentUser"] = user
	data["Flashes"] = h.takeFlashes(c)
	c.HTML(status, name, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not found",
		"Status":  http.StatusNotFound,
		"Message": "The page you are looking for does not exist.",
	})
}

func (h *Handler) serverError(c *gin.Context, event string, err error) {
	h.logError(event, err)
	h.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Error",
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong. Please try again later.",
	})
}

func (h *Handler) logError(event string, err error) {
	if h.log != nil {
		h.log.Errorw(event, "err", err)
	}
}
