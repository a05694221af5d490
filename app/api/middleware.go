package api

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veggiedefender/simple-sharples/app/cache"
)

const htmlContentType = "text/html; charset=utf-8"

// storeTimeout bounds the fire-and-forget cache store so an unresponsive
// cache cannot leak goroutines.
const storeTimeout = 5 * time.Second

// ErrorBoundary is the outermost wrapper of the request pipeline: any panic
// or accumulated handler error becomes the fixed fallback page with a 500.
// Diagnostic detail is logged, never rendered.
func ErrorBoundary(errorPage []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic in request pipeline", "panic", r, "path", c.Request.URL.Path)
				c.Data(http.StatusInternalServerError, htmlContentType, errorPage)
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			slog.Error("Request failed", "path", c.Request.URL.Path, "errors", c.Errors.String())
			c.Data(http.StatusInternalServerError, htmlContentType, errorPage)
		}
	}
}

// CacheAside serves cached pages when fresh and otherwise invokes the inner
// handler, storing successful responses asynchronously. A cache failure is
// never fatal: lookups degrade to a recompute, stores are logged and dropped.
func CacheAside(pages cache.PageCache, ttl time.Duration) gin.HandlerFunc {
	freshness := fmt.Sprintf("public, max-age=%d", int(ttl.Seconds()))

	return func(c *gin.Context) {
		key := cache.PageKey(normalizeRequestURL(c.Request))

		page, hit, err := pages.GetPage(c.Request.Context(), key)
		if err != nil {
			slog.Warn("Cache lookup failed", "key", key, "error", err)
		}
		if hit {
			c.Header("Cache-Control", freshness)
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		if len(c.Errors) > 0 {
			return
		}

		status := writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		stored := &cache.Page{
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        append([]byte(nil), writer.body.Bytes()...),
			CachedAt:    time.Now().Unix(),
		}

		// Decoupled from the response path: completion never delays the
		// caller and failure never surfaces.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			if err := pages.SetPage(ctx, key, stored, ttl); err != nil {
				slog.Warn("Cache store failed", "key", key, "error", err)
			}
		}()
	}
}

// bodyCaptureWriter tees the response body so a successful render can be
// cloned into the cache after it has been sent.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// normalizeRequestURL reduces a request URL to a canonical path and sorted
// query string. Method, headers and body are deliberately ignored: the
// surface is GET-only.
func normalizeRequestURL(r *http.Request) string {
	u := *r.URL

	u.Path = path.Clean(u.Path)
	if u.Path == "." || u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = u.Query().Encode()

	return u.RequestURI()
}
