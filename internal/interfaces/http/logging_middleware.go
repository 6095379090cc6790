package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factura-express/pkg/logger"
)

// RequestLogger registra cada petición con zerolog: método, ruta, estado y
// latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
