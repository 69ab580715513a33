package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		role   interface{}
		status int
	}{
		{name: "admin", role: "admin", status: fiber.StatusOK},
		{name: "case insensitive", role: " Admin ", status: fiber.StatusOK},
		{name: "other role", role: "coach", status: fiber.StatusForbidden},
		{name: "guest", role: nil, status: fiber.StatusUnauthorized},
		{name: "blank", role: "  ", status: fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/api/v1/court/:key/consume", func(c *fiber.Ctx) error {
				if tc.role != nil {
					c.Locals(LocalRole, tc.role)
				}
				return c.Next()
			}, RequireRole("admin"), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/court/s-1/consume", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
