package utils

import (
	"errors"

	"fwp/internal/models"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrClaimsMissing = errors.New("claims not found in context")
	ErrClaimsInvalid = errors.New("invalid claims type")
)

// GetUserClaims extracts the authenticated user's claims from the Fiber
// context. The auth middleware stores them under the "claims" local.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	v := c.Locals("claims")
	if v == nil {
		return nil, ErrClaimsMissing
	}

	claims, ok := v.(*models.UserClaims)
	if !ok {
		return nil, ErrClaimsInvalid
	}
	return claims, nil
}
