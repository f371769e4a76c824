package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"avatar_platform/internal/logger"
	"avatar_platform/internal/metrics"
	"avatar_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/*.html
var templatesFS embed.FS

const defaultSessionCookie = "session"

// Config holds the HTTP-facing knobs of the handler.
type Config struct {
	SessionCookie  string
	SecureCookies  bool
	AllowedOrigins []string
}

// Handler wires HTTP layer to services, metrics and logging.
type Handler struct {
	services *service.Service
	cfg      Config
	metrics  *metrics.Metrics
	log      *logger.Logger
	tmpl     *template.Template
}

// NewHandler constructs a new HTTP handler with dependencies.
// m and log may be nil.
func NewHandler(services *service.Service, cfg Config, m *metrics.Metrics, log *logger.Logger) *Handler {
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = defaultSessionCookie
	}
	return &Handler{
		services: services,
		cfg:      cfg,
		metrics:  m,
		log:      log,
		tmpl:     template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")),
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(h.tmpl)
	router.Use(gin.Recovery(), h.metricsMiddleware, h.accessLogMiddleware)

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// everything below touches the store
	site := router.Group("/", h.bootstrapMiddleware, h.sessionMiddleware)
	h.registerPageRoutes(site)
	h.registerAuthRoutes(site)
	h.registerAPIRoutes(site)

	router.NoRoute(h.bootstrapMiddleware, h.sessionMiddleware, h.notFound)

	return router
}

// HTTPHandler returns the router, wrapped with CORS when origins are configured.
func (h *Handler) HTTPHandler() http.Handler {
	router := h.InitRoutes()
	if len(h.cfg.AllowedOrigins) == 0 {
		return router
	}
	return cors.New(cors.Options{
		AllowedOrigins: h.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(router)
}

func (h *Handler) registerPageRoutes(r *gin.RouterGroup) {
	r.GET("/", h.index)
	r.GET("/products", h.products)
	r.GET("/product/:slug", h.requireAuth, h.product)
	r.GET("/dashboard", h.requireAuth, h.dashboard)
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	r.GET("/signup", h.signupForm)
	r.POST("/signup", h.signup)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/logout", h.requireAuth, h.logout)
}

func (h *Handler) registerAPIRoutes(r *gin.RouterGroup) {
	api := r.Group("/api/v1")
	{
		api.GET("/products", h.listProducts)
	}
}
