package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func appWithClaims(claims jwt.MapClaims, probe func(c *fiber.Ctx) error) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	app.Get("/probe", probe)
	return app
}

func TestFromCtx_FullClaims(t *testing.T) {
	var got Context
	app := appWithClaims(jwt.MapClaims{"user_id": float64(7), "email": "a@b.c", "role": "admin"}, func(c *fiber.Ctx) error {
		var err error
		got, err = FromCtx(c)
		if err != nil {
			return err
		}
		return c.SendString("ok")
	})

	res, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if got.UserID != 7 || got.Email != "a@b.c" || !got.IsAdmin() {
		t.Fatalf("unexpected context: %+v", got)
	}
}

func TestFromCtx_DefaultsRoleToCustomer(t *testing.T) {
	var got Context
	app := appWithClaims(jwt.MapClaims{"user_id": "15"}, func(c *fiber.Ctx) error {
		var err error
		got, err = FromCtx(c)
		if err != nil {
			return err
		}
		return c.SendString("ok")
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/probe", nil)); err != nil {
		t.Fatal(err)
	}
	if got.UserID != 15 {
		t.Fatalf("expected user 15, got %d", got.UserID)
	}
	if got.Role != RoleCustomer {
		t.Fatalf("expected customer role, got %q", got.Role)
	}
	if got.IsAdmin() {
		t.Fatal("customer must not be admin")
	}
}

func TestFromCtx_MissingToken(t *testing.T) {
	app := appWithClaims(nil, func(c *fiber.Ctx) error {
		if _, err := FromCtx(c); err == nil {
			t.Error("expected error for missing token")
		}
		return c.SendString("ok")
	})
	if _, err := app.Test(httptest.NewRequest("GET", "/probe", nil)); err != nil {
		t.Fatal(err)
	}
}

func TestIssueToken_RoundTrip(t *testing.T) {
	signed, err := IssueToken("sekrit", 3, "x@y.z", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	tok, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("sekrit"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["role"] != RoleAdmin {
		t.Fatalf("expected admin role claim, got %v", claims["role"])
	}
}
