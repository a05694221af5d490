package api

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veggiedefender/simple-sharples/app/cache"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// errorPage returns the fixed fallback page served on any pipeline failure.
func errorPage() []byte {
	page, err := templateFS.ReadFile("templates/error.html")
	if err != nil {
		panic(err)
	}
	return page
}

// NewServer creates the HTTP server with the middleware chain configured:
// error boundary outermost, then cache-aside, then the menu handler.
func NewServer(handler *Handler, pages cache.PageCache, cacheTTL time.Duration) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	// Replaces gin.Recovery: panics end up as the fixed error page too
	r.Use(ErrorBoundary(errorPage()))

	setupRoutes(r, handler, pages, cacheTTL)

	return r
}

// setupRoutes configures all the application routes. The menu page answers
// "/" and every unmatched path uniformly; only health and favicon are routed
// separately.
func setupRoutes(r *gin.Engine, handler *Handler, pages cache.PageCache, cacheTTL time.Duration) {
	menuChain := []gin.HandlerFunc{CacheAside(pages, cacheTTL), handler.GetMenu}

	r.GET("/", menuChain...)
	r.NoRoute(menuChain...)

	r.GET("/health", handler.GetHealth)

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
