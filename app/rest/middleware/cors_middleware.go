package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"auth-api/app/config"
)

// CORS builds the CORS middleware from configuration.
func CORS(cfg *config.Config) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: splitAndTrim(cfg.CORSOrigin),
		AllowMethods: splitAndTrim(cfg.CORSMethods),
		AllowHeaders: splitAndTrim(cfg.CORSAllowedHeaders),
	})
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
