package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Roles carried in the token.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Context is the verified identity extracted from a bearer token. Handlers
// receive it once per request instead of re-decoding claims ad hoc.
type Context struct {
	UserID int
	Email  string
	Role   string
}

func (a Context) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IssueToken signs a 72h token for the given identity.
func IssueToken(secret string, userID int, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// FromCtx extracts the verified identity placed in locals by the JWT
// middleware.
func FromCtx(c *fiber.Ctx) (Context, error) {
	u := c.Locals("user")
	if u == nil {
		return Context{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Context{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Context{}, fiber.ErrUnauthorized
	}

	id, err := intClaim(claims, "user_id")
	if err != nil {
		return Context{}, err
	}

	out := Context{UserID: id}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	} else {
		out.Role = RoleCustomer
	}
	return out, nil
}

func intClaim(claims jwt.MapClaims, key string) (int, error) {
	raw, ok := claims[key]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}
