package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/auth"
)

const claimsKey = "claims"

// TokenRevoker reports whether a token JTI has been revoked (logout denylist).
type TokenRevoker interface {
	IsRevoked(ctx context.Context, jti string) bool
}

// GetClaims returns the authenticated user's claims, or nil when the request
// is unauthenticated.
func GetClaims(c fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}

func bearerToken(c fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(tokens *auth.TokenService, revoker TokenRevoker) fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed Authorization header")
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		}

		if revoker != nil && revoker.IsRevoked(c.Context(), claims.ID) {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Token has been revoked")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through (used on public reads that personalize output).
func OptionalAuth(tokens *auth.TokenService, revoker TokenRevoker) fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr != "" {
			if claims, err := tokens.Verify(tokenStr); err == nil {
				if revoker == nil || !revoker.IsRevoked(c.Context(), claims.ID) {
					c.Locals(claimsKey, claims)
				}
			}
		}
		return c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose token lacks the admin
// role. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		}
		if !claims.IsAdmin {
			return ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Admin role required")
		}
		return c.Next()
	}
}
