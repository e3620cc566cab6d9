package http_test

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/domain/entity"
	apihttp "github.com/stratera/pos-api/internal/interfaces/http"
	"github.com/stratera/pos-api/pkg/jwt"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

func buildTestApp() *fiber.App {
	app := fiber.New()
	auth := app.Group("/", apihttp.AuthMiddleware(testSecret))
	auth.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId":   apihttp.GetUserID(c),
			"username": apihttp.GetUsername(c),
			"role":     apihttp.GetRole(c),
		})
	})
	auth.Get("/manager", apihttp.RequireRole(entity.RoleManager), okHandler)
	auth.Get("/admin", apihttp.RequireRole(), okHandler)
	return app
}

func okHandler(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "u-1", "kwame", role, "pos-api", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *nethttp.Response {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(nethttp.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", "not.a.jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("some-other-secret-32-bytes-long!!!!!", "u-1", "kwame", entity.RoleAdmin, "pos-api", 15)
	require.NoError(t, err)
	resp := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u-1", "kwame", entity.RoleAdmin, "pos-api", -1)
	require.NoError(t, err)
	resp := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ClaimsExposedInLocals(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", tokenForRole(t, entity.RoleCashier))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-1", body["userId"])
	assert.Equal(t, "kwame", body["username"])
	assert.Equal(t, entity.RoleCashier, body["role"])
}

func TestRequireRole(t *testing.T) {
	app := buildTestApp()

	cases := []struct {
		name string
		role string
		path string
		want int
	}{
		{"cashier blocked from manager route", entity.RoleCashier, "/manager", fiber.StatusForbidden},
		{"manager passes manager route", entity.RoleManager, "/manager", fiber.StatusOK},
		{"admin passes manager route", entity.RoleAdmin, "/manager", fiber.StatusOK},
		{"manager blocked from admin route", entity.RoleManager, "/admin", fiber.StatusForbidden},
		{"cashier blocked from admin route", entity.RoleCashier, "/admin", fiber.StatusForbidden},
		{"admin passes admin route", entity.RoleAdmin, "/admin", fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, tc.path, tokenForRole(t, tc.role))
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
