package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/infrastructure/cache"
)

// RateLimit ventana fija por IP sobre un contador en cache. Si el backend de
// cache falla se deja pasar la petición: el limitador protege, no bloquea el API.
func RateLimit(client cache.Client, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "rate-limit:" + c.IP()

		count, err := client.Incr(c.Context(), key)
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(c.Context(), key, window); err != nil {
				// Un contador sin TTL jamás expiraría y bloquearía a esa IP de
				// forma permanente: se descarta la clave y se deja pasar.
				_ = client.Del(c.Context(), key)
				return c.Next()
			}
		}
		if count > int64(limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente más tarde",
			})
		}
		remaining := int64(limit) - count
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		return c.Next()
	}
}
