package serverutils

import (
	"os"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	ctx.Locals("user_id", claims["user_id"])
	ctx.Locals("role", claims["role"])
	return ctx.Next()
}

// PrincipalFromCtx rebuilds the authenticated principal the middleware
// stashed in Locals. Missing or malformed claims come back as a 401.
func PrincipalFromCtx(ctx *fiber.Ctx) (entity.Principal, error) {
	idStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return entity.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Missing user claim")
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return entity.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user claim")
	}

	roleStr, _ := ctx.Locals("role").(string)
	role := entity.Role(roleStr)
	if role == "" {
		role = entity.RoleUser
	}

	return entity.Principal{UserID: userID, Role: role}, nil
}

// RequireAdmin rejects any request whose token does not carry the admin role.
func RequireAdmin(ctx *fiber.Ctx) error {
	p, err := PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		body := ErrorResponse(fiber.StatusForbidden, "Admin access required")
		body.Kind = string(apperr.KindForbidden)
		return ctx.Status(fiber.StatusForbidden).JSON(body)
	}
	return ctx.Next()
}
