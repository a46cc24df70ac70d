package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/application/identity"
	"github.com/smontiel/sellerhub-api/internal/domain"
)

// actualSeller resuelve el seller efectivo del usuario autenticado. Si falla,
// escribe la respuesta de error y devuelve respErr != nil para cortar el handler.
func actualSeller(c *fiber.Ctx, resolver *identity.Resolver) (userID, sellerID string, respErr error) {
	userID = GetUserID(c)
	if userID == "" {
		return "", "", c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sellerID, err := resolver.ActualSellerID(userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return "", "", c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return "", "", c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta sin seller efectivo"})
		}
		return "", "", c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return userID, sellerID, nil
}
