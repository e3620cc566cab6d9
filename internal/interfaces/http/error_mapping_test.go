package http

import (
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/domain"
)

func TestCrudErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.ErrInvalidInput, fiber.StatusBadRequest},
		{"not found", domain.ErrNotFound, fiber.StatusNotFound},
		{"duplicate", domain.ErrDuplicate, fiber.StatusConflict},
		{"conflict", domain.ErrConflict, fiber.StatusConflict},
		{"wrapped conflict", fmt.Errorf("%w: category still has products assigned", domain.ErrConflict), fiber.StatusConflict},
		{"unknown", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				return crudError(c, tc.err)
			})
			resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/x", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
