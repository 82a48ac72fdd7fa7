package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"checkout-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the checkout API and the SPA fallback.
func RegisterRoutes(r *gin.Engine, pc *controllers.PaymentController, staticDir string) {
	api := r.Group("/api")
	api.GET("/health", pc.Health)

	payments := api.Group("/payments")
	payments.GET("/config", pc.GetConfig)
	payments.POST("/order", pc.CreateOrder)
	payments.POST("/verify", pc.VerifyPayment)

	r.NoRoute(spaFallback(staticDir))
}

// spaFallback serves the static bundle for non-API paths, falling back to
// the app shell so client-side routes resolve. Unmatched API paths get a
// JSON 404 instead of HTML.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}

		file := filepath.Join(staticDir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		c.File(filepath.Join(staticDir, "index.html"))
	}
}
