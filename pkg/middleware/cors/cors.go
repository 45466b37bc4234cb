package cors

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New returns CORS middleware that honors a list of allowed origins. An
// empty list allows every origin without credentials.
func New(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		origins := make([]string, 0, len(allowedOrigins))
		for _, origin := range allowedOrigins {
			origins = append(origins, strings.TrimRight(origin, "/"))
		}
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID", "Retry-After", "Content-Disposition"}
	cfg.MaxAge = 10 * time.Minute
	return cors.New(cfg)
}
