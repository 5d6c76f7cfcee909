package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(ctx *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, NewUnauthorized("Missing or invalid authorization header")
	}
	tokenStr := authHeader[7:]

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, NewUnauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewUnauthorized("Invalid token claims")
	}
	return claims, nil
}

// JwtMiddleware authenticates any logged-in user and stores identity in
// ctx.Locals("user_id") / ctx.Locals("role").
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseToken(ctx)
	if err != nil {
		httpErr := err.(*HTTPError)
		return ctx.Status(httpErr.Status).JSON(ErrorResponse(httpErr.Status, httpErr.Message))
	}

	ctx.Locals("user_id", claims["user_id"])
	if role, ok := claims["role"]; ok {
		ctx.Locals("role", role)
	}
	return ctx.Next()
}

// RequireRole builds a middleware that additionally enforces a role claim.
// JWT claims carry "role": customer | seller | admin.
func RequireRole(role string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims, err := parseToken(ctx)
		if err != nil {
			httpErr := err.(*HTTPError)
			return ctx.Status(httpErr.Status).JSON(ErrorResponse(httpErr.Status, httpErr.Message))
		}

		claimRole, ok := claims["role"].(string)
		if !ok {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Access denied: Role missing"))
		}
		if claimRole != role {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Access denied: "+role+" only"))
		}

		ctx.Locals("user_id", claims["user_id"])
		ctx.Locals("role", claimRole)
		return ctx.Next()
	}
}
