package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

// LocalRequestID key de c.Locals con el identificador de la petición.
const LocalRequestID = "request_id"

// RequestLogger asigna un request id (X-Request-ID entrante o un UUID nuevo),
// lo devuelve en la respuesta y registra método, ruta, status y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(fiber.HeaderXRequestID, reqID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return err
	}
}

// GetRequestID devuelve el request id del contexto (después de RequestLogger).
func GetRequestID(c *fiber.Ctx) string {
	v := c.Locals(LocalRequestID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
